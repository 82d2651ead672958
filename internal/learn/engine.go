// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package learn

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Component names used as keys in score breakdowns.
const (
	ComponentLearningStyle = "learning_style"
	ComponentDifficulty    = "difficulty"
	ComponentCognitiveLoad = "cognitive_load"
	ComponentKnowledgeGap  = "knowledge_gap"
	ComponentEngagement    = "engagement"
	ComponentExploration   = "exploration"
	ComponentTotal         = "total"
)

// zpdMargin widens the eligibility band around the ZPD on both sides.
const zpdMargin = 0.1

// Selection is the result of one Select call.
type Selection struct {
	// Content is the winning candidate.
	Content *Content

	// Scores breaks the objective down by component, keyed by the
	// Component* constants plus "total". Empty in the fallback case.
	Scores map[string]float64

	// Fallback indicates no candidate satisfied the pedagogical
	// constraints and the least-difficult item was returned instead.
	// Advisory, not an error.
	Fallback bool

	// Eligible is how many candidates survived the constraint filter.
	Eligible int
}

// Engine selects the next learning content for a student and applies
// state transitions from observed interactions.
//
// The objective it maximizes over eligible candidates is
//
//	S(c) = Σ wi·fi(c) + E(c)
//
// with the five weighted component scores from Scorer and the unweighted
// exploration bonus E, subject to prerequisite, ZPD, and cognitive-load
// constraints.
//
// A mutex guards the engine's own mutable state (time step and weights),
// so one Engine may be shared across goroutines. StudentState carries no
// locking of its own: concurrent Select/Apply calls for the SAME student
// must be serialized by the caller (e.g. per-student locks in the serving
// layer) or bounded histories and counters can lose updates.
type Engine struct {
	mu       sync.Mutex
	config   *Config
	weights  Weights
	timeStep int

	scorer *Scorer
	bkt    *BKT
	logger zerolog.Logger
}

// NewEngine creates a selection engine. A nil config uses defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	bkt, err := NewBKT(cfg.BKT)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:  cfg.Clone(),
		weights: cfg.Weights,
		scorer:  NewScorer(),
		bkt:     bkt,
		logger:  logger.With().Str("component", "learn").Logger(),
	}, nil
}

// Estimator returns the engine's mastery estimator.
func (e *Engine) Estimator() *BKT { return e.bkt }

// TimeStep returns the number of Select calls served so far.
func (e *Engine) TimeStep() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeStep
}

// Weights returns the current component weights.
func (e *Engine) Weights() Weights {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.weights
}

// SetWeights replaces the component weights wholesale, for A/B
// experimentation across requests. Rejects sets not summing to 1.0 ±0.01.
func (e *Engine) SetWeights(w Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	e.weights = w
	e.mu.Unlock()

	e.logger.Info().
		Float64(ComponentLearningStyle, w.LearningStyle).
		Float64(ComponentDifficulty, w.Difficulty).
		Float64(ComponentCognitiveLoad, w.CognitiveLoad).
		Float64(ComponentKnowledgeGap, w.KnowledgeGap).
		Float64(ComponentEngagement, w.Engagement).
		Msg("updated selection weights")
	return nil
}

// Select picks the candidate content maximizing the selection objective
// under pedagogical constraints.
//
// Candidates are first filtered for eligibility: topic prerequisites
// mastered at or above the mastery threshold, difficulty within the
// student's ZPD band for that topic, and projected cognitive load at or
// below the ceiling. If nothing survives, the globally least-difficult
// candidate is returned with Fallback set and an empty score map — a
// guaranteed non-nil result for any non-empty candidate list.
//
// Ties resolve to the first-encountered candidate in slice order. The
// engine's time step advances by one on every call, fallback included.
func (e *Engine) Select(student *StudentState, candidates []*Content, topics map[string]*Topic) (*Selection, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	weights := e.weights
	timeStep := e.timeStep
	e.timeStep++

	eligible := e.filterEligible(student, candidates, topics)
	if len(eligible) == 0 {
		easiest := candidates[0]
		for _, c := range candidates[1:] {
			if c.Difficulty < easiest.Difficulty {
				easiest = c
			}
		}
		e.logger.Warn().
			Str("student_id", student.StudentID).
			Str("content_id", easiest.ID).
			Int("candidates", len(candidates)).
			Msg("no eligible content, falling back to least difficult")
		return &Selection{
			Content:  easiest,
			Scores:   map[string]float64{},
			Fallback: true,
			Eligible: 0,
		}, nil
	}

	// Aggregate knowledge level over topics the student has history for.
	topicWeights := make(map[string]float64, len(student.KnowledgeState))
	for topicID := range student.KnowledgeState {
		if topic, ok := topics[topicID]; ok {
			topicWeights[topicID] = topic.ImportanceWeight
		}
	}
	knowledgeLevel := e.bkt.EstimateKnowledgeLevel(student.KnowledgeState, topicWeights)

	var best *Content
	bestScore := math.Inf(-1)
	var bestComponents map[string]float64

	for _, c := range eligible {
		total, components := e.score(c, student, knowledgeLevel, weights, timeStep)
		if total > bestScore {
			bestScore = total
			best = c
			bestComponents = components
		}
	}

	e.logger.Info().
		Str("student_id", student.StudentID).
		Str("content_id", best.ID).
		Float64("score", bestScore).
		Int("eligible", len(eligible)).
		Msg("selected content")
	e.logger.Debug().
		Fields(map[string]interface{}{"components": bestComponents}).
		Msg("component scores")

	return &Selection{Content: best, Scores: bestComponents, Eligible: len(eligible)}, nil
}

// score computes the weighted objective and its component breakdown for
// one candidate.
func (e *Engine) score(content *Content, student *StudentState, knowledgeLevel float64, weights Weights, timeStep int) (float64, map[string]float64) {
	lsScore := e.scorer.LearningStyleMatch(content, student)
	dScore := e.scorer.DifficultyAppropriateness(content, knowledgeLevel, e.config.ZPDDelta, e.config.ZPDSigma)
	clScore := e.scorer.CognitiveLoadOptimization(content, student, e.config.CLOptimal)
	kgScore := e.scorer.KnowledgeGapTargeting(content, student, false)
	engScore := e.scorer.EngagementPrediction(content, student, nil)
	eBonus := e.scorer.ExplorationBonus(content, student.TotalInteractions, e.config.Beta0, timeStep)

	total := weights.LearningStyle*lsScore +
		weights.Difficulty*dScore +
		weights.CognitiveLoad*clScore +
		weights.KnowledgeGap*kgScore +
		weights.Engagement*engScore +
		eBonus

	return total, map[string]float64{
		ComponentLearningStyle: lsScore,
		ComponentDifficulty:    dScore,
		ComponentCognitiveLoad: clScore,
		ComponentKnowledgeGap:  kgScore,
		ComponentEngagement:    engScore,
		ComponentExploration:   eBonus,
		ComponentTotal:         total,
	}
}

// filterEligible applies the three pedagogical constraints.
func (e *Engine) filterEligible(student *StudentState, candidates []*Content, topics map[string]*Topic) []*Content {
	eligible := make([]*Content, 0, len(candidates))

	for _, c := range candidates {
		// Constraint 1: topic prerequisites mastered. Content on topics
		// missing from the map passes (no prerequisite information).
		if topic, ok := topics[c.TopicID]; ok && !e.prerequisitesMet(topic, student) {
			continue
		}

		// Constraint 2: difficulty within the per-topic ZPD band.
		if !e.inZPD(c.Difficulty, student.Mastery(c.TopicID)) {
			continue
		}

		// Constraint 3: projected cognitive load under the ceiling.
		if e.scorer.ProjectedLoad(c, student) > e.config.CLMax {
			continue
		}

		eligible = append(eligible, c)
	}
	return eligible
}

// prerequisitesMet reports whether every prerequisite topic is mastered
// at or above the threshold.
func (e *Engine) prerequisitesMet(topic *Topic, student *StudentState) bool {
	for _, prereqID := range topic.Prerequisites {
		if student.Mastery(prereqID) < e.config.MasteryThreshold {
			return false
		}
	}
	return true
}

// inZPD reports whether a difficulty lies within the student's Zone of
// Proximal Development band [mastery − margin, mastery + δ + margin].
func (e *Engine) inZPD(difficulty, topicMastery float64) bool {
	lower := topicMastery - zpdMargin
	upper := topicMastery + e.config.ZPDDelta + zpdMargin
	return difficulty >= lower && difficulty <= upper
}

// Apply mutates the student state from one observed interaction and
// returns the same pointer. The transition updates, in order: the topic's
// BKT mastery, the mastered-topic set, the bounded performance history,
// the decayed cognitive load, the bounded engagement history, and the
// interaction counter.
func (e *Engine) Apply(student *StudentState, obs *Observation, content *Content) *StudentState {
	currentMastery := student.Mastery(obs.TopicID)
	newMastery := e.bkt.UpdateMastery(currentMastery, obs.Correct)
	if student.KnowledgeState == nil {
		student.KnowledgeState = make(map[string]float64)
	}
	student.KnowledgeState[obs.TopicID] = newMastery

	if newMastery >= masteredThreshold && !student.HasMastered(obs.TopicID) {
		student.MasteredTopics = append(student.MasteredTopics, obs.TopicID)
		e.logger.Info().
			Str("student_id", student.StudentID).
			Str("topic_id", obs.TopicID).
			Float64("mastery", newMastery).
			Msg("topic mastered")
	}

	performance := 0.0
	if obs.Correct {
		performance = 1.0
	}
	student.RecentPerformance = pushBounded(student.RecentPerformance, performance, historyLimit)

	// Exponential decay toward the content's intrinsic load.
	student.CurrentCognitiveLoad = clamp(
		student.CurrentCognitiveLoad*0.8+content.IntrinsicLoad*0.2, 0, 1)

	student.EngagementHistory = pushBounded(student.EngagementHistory, obs.EngagementScore, historyLimit)
	student.TotalInteractions++
	student.UpdatedAt = time.Now().UTC()

	e.logger.Debug().
		Str("student_id", student.StudentID).
		Str("topic_id", obs.TopicID).
		Float64("mastery", newMastery).
		Int("total_interactions", student.TotalInteractions).
		Msg("applied observation")

	return student
}
