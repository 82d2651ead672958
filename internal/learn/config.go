// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package learn

import (
	"fmt"
	"math"
)

// Weights defines the relative contribution of the five weighted scoring
// components. Unlike a normalized blend, these must already sum to 1.0
// within ±0.01 — the exploration bonus rides on top unweighted, so silent
// renormalization would shift the explore/exploit balance.
type Weights struct {
	// LearningStyle is the weight for learning-style match.
	LearningStyle float64 `json:"learning_style" koanf:"learning_style"`

	// Difficulty is the weight for ZPD difficulty appropriateness.
	Difficulty float64 `json:"difficulty" koanf:"difficulty"`

	// CognitiveLoad is the weight for cognitive-load fit.
	CognitiveLoad float64 `json:"cognitive_load" koanf:"cognitive_load"`

	// KnowledgeGap is the weight for knowledge-gap targeting.
	KnowledgeGap float64 `json:"knowledge_gap" koanf:"knowledge_gap"`

	// Engagement is the weight for predicted engagement.
	Engagement float64 `json:"engagement" koanf:"engagement"`
}

// DefaultWeights returns the production default component weights.
func DefaultWeights() Weights {
	return Weights{
		LearningStyle: 0.15,
		Difficulty:    0.25,
		CognitiveLoad: 0.20,
		KnowledgeGap:  0.25,
		Engagement:    0.15,
	}
}

// Sum returns the total of all component weights.
func (w Weights) Sum() float64 {
	return w.LearningStyle + w.Difficulty + w.CognitiveLoad + w.KnowledgeGap + w.Engagement
}

// Validate rejects weight sets whose sum deviates from 1.0 by more than
// the tolerance.
func (w Weights) Validate() error {
	if sum := w.Sum(); math.Abs(sum-1.0) > distributionTolerance {
		return fmt.Errorf("weights: %w: must sum to 1.0 (±%g), got %f",
			ErrValidation, distributionTolerance, sum)
	}
	return nil
}

// ToMap returns the weights as a string-keyed map using the component
// names that appear in score breakdowns.
func (w Weights) ToMap() map[string]float64 {
	return map[string]float64{
		ComponentLearningStyle: w.LearningStyle,
		ComponentDifficulty:    w.Difficulty,
		ComponentCognitiveLoad: w.CognitiveLoad,
		ComponentKnowledgeGap:  w.KnowledgeGap,
		ComponentEngagement:    w.Engagement,
	}
}

// Config contains all tuning parameters for the selection engine.
type Config struct {
	// Weights are the five component weights of the selection objective.
	Weights Weights `json:"weights" koanf:"weights"`

	// ZPDDelta is the Zone-of-Proximal-Development offset: the target
	// difficulty sits this far above the student's knowledge level.
	// Default: 0.2.
	ZPDDelta float64 `json:"zpd_delta" koanf:"zpd_delta"`

	// ZPDSigma is the width of the Gaussian difficulty bump.
	// Default: 0.15.
	ZPDSigma float64 `json:"zpd_sigma" koanf:"zpd_sigma"`

	// CLOptimal is the cognitive load level the engine steers toward.
	// Default: 0.7.
	CLOptimal float64 `json:"cl_optimal" koanf:"cl_optimal"`

	// CLMax is the hard projected-load ceiling for eligibility.
	// Default: 0.9.
	CLMax float64 `json:"cl_max" koanf:"cl_max"`

	// Beta0 is the initial exploration incentive.
	// Default: 1.0.
	Beta0 float64 `json:"beta_0" koanf:"beta_0"`

	// MasteryThreshold is the minimum prerequisite mastery for content
	// eligibility.
	// Default: 0.7.
	MasteryThreshold float64 `json:"mastery_threshold" koanf:"mastery_threshold"`

	// BKT parameterizes the mastery estimator.
	BKT BKTParams `json:"bkt" koanf:"bkt"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights:          DefaultWeights(),
		ZPDDelta:         0.2,
		ZPDSigma:         0.15,
		CLOptimal:        0.7,
		CLMax:            0.9,
		Beta0:            1.0,
		MasteryThreshold: 0.7,
		BKT:              DefaultBKTParams(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.ZPDDelta < 0 || c.ZPDDelta > 1 {
		return fmt.Errorf("config: %w: zpd_delta must be in [0, 1], got %f", ErrValidation, c.ZPDDelta)
	}
	if c.ZPDSigma <= 0 {
		return fmt.Errorf("config: %w: zpd_sigma must be positive, got %f", ErrValidation, c.ZPDSigma)
	}
	if c.CLOptimal <= 0 || c.CLOptimal > 1 {
		return fmt.Errorf("config: %w: cl_optimal must be in (0, 1], got %f", ErrValidation, c.CLOptimal)
	}
	if c.CLMax <= 0 || c.CLMax > 1 {
		return fmt.Errorf("config: %w: cl_max must be in (0, 1], got %f", ErrValidation, c.CLMax)
	}
	if c.Beta0 < 0 {
		return fmt.Errorf("config: %w: beta_0 must be non-negative, got %f", ErrValidation, c.Beta0)
	}
	if c.MasteryThreshold < 0 || c.MasteryThreshold > 1 {
		return fmt.Errorf("config: %w: mastery_threshold must be in [0, 1], got %f",
			ErrValidation, c.MasteryThreshold)
	}
	return c.BKT.Validate()
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	clone := *c
	return &clone
}
