// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package learn

import "math"

// styleAffinity is the fixed content-type × learning-style affinity table.
// Values are authoring constants, not learned. The table is total over
// ContentTypes × LearningStyles; a test asserts exhaustive coverage.
var styleAffinity = map[ContentType]map[LearningStyle]float64{
	ContentVideo: {
		StyleVisual:         1.0,
		StyleAuditory:       0.8,
		StyleKinesthetic:    0.3,
		StyleReadingWriting: 0.4,
	},
	ContentText: {
		StyleVisual:         0.5,
		StyleAuditory:       0.3,
		StyleKinesthetic:    0.2,
		StyleReadingWriting: 1.0,
	},
	ContentInteractive: {
		StyleVisual:         0.7,
		StyleAuditory:       0.5,
		StyleKinesthetic:    1.0,
		StyleReadingWriting: 0.6,
	},
	ContentQuiz: {
		StyleVisual:         0.6,
		StyleAuditory:       0.4,
		StyleKinesthetic:    0.7,
		StyleReadingWriting: 0.9,
	},
	ContentCaseStudy: {
		StyleVisual:         0.8,
		StyleAuditory:       0.6,
		StyleKinesthetic:    0.9,
		StyleReadingWriting: 0.8,
	},
}

// engagementFeatureWeights is the fixed linear model used by
// EngagementPrediction. A placeholder for a trained model; training is an
// explicit non-goal.
var engagementFeatureWeights = map[string]float64{
	"style_match":        0.3,
	"difficulty_match":   0.25,
	"recent_performance": 0.2,
	"content_variety":    0.15,
	"time_of_day":        0.1,
}

// Scorer implements the six independent scoring components of the
// selection objective. Every method is a pure function of its inputs;
// a Scorer holds no mutable state and is safe for concurrent use.
type Scorer struct{}

// NewScorer creates a Scorer.
func NewScorer() *Scorer { return &Scorer{} }

// LearningStyleMatch scores how well the content's delivery format fits
// the student's style-preference distribution: the affinity-weighted sum
// over preferences, normalized by the distribution's total mass (defensive
// against slightly-off-1.0 sums). Returns 0.5 for students with no
// recorded preferences.
func (sc *Scorer) LearningStyleMatch(content *Content, student *StudentState) float64 {
	if len(student.StylePreferences) == 0 {
		return 0.5
	}

	affinity := styleAffinity[content.Type]

	var score, totalProb float64
	for style, prob := range student.StylePreferences {
		a, ok := affinity[style]
		if !ok {
			a = 0.5
		}
		score += a * prob
		totalProb += prob
	}
	if totalProb <= 0 {
		return 0.5
	}
	return score / totalProb
}

// DifficultyAppropriateness scores content difficulty against the Zone of
// Proximal Development: a Gaussian bump centered at knowledgeLevel+delta
// with width sigma. Peaks at exactly 1.0 when the content difficulty hits
// the ZPD target and falls off symmetrically.
func (sc *Scorer) DifficultyAppropriateness(content *Content, knowledgeLevel, delta, sigma float64) float64 {
	target := knowledgeLevel + delta
	diff := content.Difficulty - target
	return math.Exp(-(diff * diff) / (2 * sigma * sigma))
}

// ProjectedLoad estimates the cognitive load the content would place on
// the student: the difficulty-weighted intrinsic load plus a fatigue term
// capped at 0.3, clamped to [0, 1].
func (sc *Scorer) ProjectedLoad(content *Content, student *StudentState) float64 {
	baseLoad := content.IntrinsicLoad * content.Difficulty
	fatigue := math.Min(student.CurrentCognitiveLoad*0.3, 0.3)
	return clamp(baseLoad+fatigue, 0, 1)
}

// CognitiveLoadOptimization scores how close the projected load lands to
// the optimal load level: 1 at the optimum, decaying linearly with
// relative distance, clamped to [0, 1].
func (sc *Scorer) CognitiveLoadOptimization(content *Content, student *StudentState, lOptimal float64) float64 {
	projected := sc.ProjectedLoad(content, student)
	return clamp(1-math.Abs(projected-lOptimal)/lOptimal, 0, 1)
}

// KnowledgeGapTargeting rewards content on weakly-mastered topics with
// 1 − mastery. Brand-new topics (no mastery history) score a neutral 0.5.
func (sc *Scorer) KnowledgeGapTargeting(content *Content, student *StudentState, isNewTopic bool) float64 {
	if isNewTopic {
		return 0.5
	}
	return 1 - student.Mastery(content.TopicID)
}

// EngagementPrediction predicts the student's engagement with the content
// using a fixed linear model over derived features, squashed through a
// sigmoid. Pass nil features to derive them from the content and student;
// a non-nil map overrides derivation (missing keys default to 0.5).
func (sc *Scorer) EngagementPrediction(content *Content, student *StudentState, features map[string]float64) float64 {
	if features == nil {
		features = sc.engagementFeatures(content, student)
	}

	var score float64
	for key, weight := range engagementFeatureWeights {
		v, ok := features[key]
		if !ok {
			v = 0.5
		}
		score += v * weight
	}
	return sigmoid(score)
}

// engagementFeatures derives the feature vector for engagement prediction.
// content_variety and time_of_day are fixed placeholders pending signals
// the core does not observe.
func (sc *Scorer) engagementFeatures(content *Content, student *StudentState) map[string]float64 {
	recentPerf := 0.5
	if n := len(student.RecentPerformance); n > 0 {
		window := student.RecentPerformance
		if n > 5 {
			window = window[n-5:]
		}
		var sum float64
		for _, v := range window {
			sum += v
		}
		recentPerf = sum / float64(len(window))
	}

	return map[string]float64{
		"style_match":        sc.LearningStyleMatch(content, student),
		"difficulty_match":   1 - math.Abs(content.Difficulty-0.5),
		"recent_performance": recentPerf,
		"content_variety":    0.5,
		"time_of_day":        0.7,
	}
}

// ExplorationBonus computes a UCB-style bonus favoring under-served
// content, with the incentive decaying over the engine's lifetime:
//
//	βt = β0 / (1 + ln(t+1))
//	bonus = βt · √(ln(N+1) / (n+1))
//
// where N is the student's total interactions and n the content's serve
// count. Never-served content gets the unnormalized βt·√(ln(N+1)) — the
// cold branch deliberately omits the (n+1) divisor, matching the original
// model even though the general branch would divide by 1 there.
func (sc *Scorer) ExplorationBonus(content *Content, totalInteractions int, beta0 float64, timeStep int) float64 {
	betaT := beta0 / (1 + math.Log(float64(timeStep)+1))

	logN := math.Log(float64(totalInteractions) + 1)
	if content.InteractionCount == 0 {
		return betaT * math.Sqrt(logN)
	}
	return betaT * math.Sqrt(logN/float64(content.InteractionCount+1))
}

// sigmoid is the logistic squashing function with the input clamped to
// ±500 to avoid overflow in Exp.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-clamp(x, -500, 500)))
}
