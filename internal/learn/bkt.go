// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package learn

import "fmt"

// BKTParams holds the four Bayesian Knowledge Tracing probabilities.
// All are fixed for the lifetime of a BKT instance.
type BKTParams struct {
	// PInit is the prior mastery probability for unseen topics.
	// Default: 0.0.
	PInit float64 `json:"p_init" koanf:"p_init"`

	// PLearn is the probability of transitioning to mastery on any
	// interaction, given the topic is not yet mastered.
	// Default: 0.3.
	PLearn float64 `json:"p_learn" koanf:"p_learn"`

	// PSlip is the probability of an incorrect response despite mastery.
	// Default: 0.1.
	PSlip float64 `json:"p_slip" koanf:"p_slip"`

	// PGuess is the probability of a correct response despite non-mastery.
	// Default: 0.2.
	PGuess float64 `json:"p_guess" koanf:"p_guess"`
}

// DefaultBKTParams returns the standard parameterization.
func DefaultBKTParams() BKTParams {
	return BKTParams{
		PInit:  0.0,
		PLearn: 0.3,
		PSlip:  0.1,
		PGuess: 0.2,
	}
}

// Validate checks that every parameter is a probability.
func (p BKTParams) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("bkt: %w: %s must be in [0, 1], got %f", ErrValidation, name, v)
		}
		return nil
	}
	if err := check("p_init", p.PInit); err != nil {
		return err
	}
	if err := check("p_learn", p.PLearn); err != nil {
		return err
	}
	if err := check("p_slip", p.PSlip); err != nil {
		return err
	}
	return check("p_guess", p.PGuess)
}

// BKT estimates latent topic mastery from sequences of correct/incorrect
// observations using standard Bayesian Knowledge Tracing. All methods are
// pure functions of their inputs; a BKT instance is safe for concurrent use.
type BKT struct {
	params BKTParams
}

// NewBKT creates a mastery estimator with the given parameters.
func NewBKT(params BKTParams) (*BKT, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &BKT{params: params}, nil
}

// Params returns the estimator's fixed parameters.
func (b *BKT) Params() BKTParams { return b.params }

// InitialMastery returns the prior mastery for a topic with no history.
func (b *BKT) InitialMastery() float64 { return b.params.PInit }

// UpdateMastery revises a topic's mastery probability from one observation.
//
// The update is a Bayesian belief revision from the evidence, followed by a
// fixed-rate learning transition applied to the not-yet-mastered mass:
//
//	correct:   post = (1-slip)·m / ((1-slip)·m + guess·(1-m))
//	incorrect: post = slip·m / (slip·m + (1-guess)·(1-m))
//	result    = post + (1-post)·learn, clamped to [0, 1]
//
// A zero denominator (numerically degenerate input) passes the current
// mastery through unchanged before the learning transition.
func (b *BKT) UpdateMastery(currentMastery float64, correct bool) float64 {
	var posterior float64
	if correct {
		numerator := (1 - b.params.PSlip) * currentMastery
		denominator := numerator + b.params.PGuess*(1-currentMastery)
		if denominator > 0 {
			posterior = numerator / denominator
		} else {
			posterior = currentMastery
		}
	} else {
		numerator := b.params.PSlip * currentMastery
		denominator := numerator + (1-b.params.PGuess)*(1-currentMastery)
		if denominator > 0 {
			posterior = numerator / denominator
		} else {
			posterior = currentMastery
		}
	}

	updated := posterior + (1-posterior)*b.params.PLearn
	return clamp(updated, 0, 1)
}

// EstimateKnowledgeLevel aggregates per-topic masteries into one overall
// knowledge level: the importance-weighted mean over the topics in weights.
// Topics present in weights but absent from masteries contribute 0.
// Returns 0 for an empty mastery map or zero total weight.
func (b *BKT) EstimateKnowledgeLevel(topicMasteries, topicWeights map[string]float64) float64 {
	if len(topicMasteries) == 0 {
		return 0
	}

	var weightedSum, totalWeight float64
	for topicID, weight := range topicWeights {
		weightedSum += topicMasteries[topicID] * weight
		totalWeight += weight
	}
	if totalWeight <= 0 {
		return 0
	}
	return weightedSum / totalWeight
}
