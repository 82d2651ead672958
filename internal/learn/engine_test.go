// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package learn

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func testTopics(t *testing.T, ids ...string) map[string]*Topic {
	t.Helper()
	topics := make(map[string]*Topic, len(ids))
	for _, id := range ids {
		topic, err := NewTopic(id, "Topic "+id)
		if err != nil {
			t.Fatalf("NewTopic(%q) error = %v", id, err)
		}
		topics[id] = topic
	}
	return topics
}

func namedContent(t *testing.T, id, topicID string, difficulty float64) *Content {
	t.Helper()
	c, err := NewContent(id, topicID, ContentText, difficulty, "Content "+id, 10)
	if err != nil {
		t.Fatalf("NewContent(%q) error = %v", id, err)
	}
	return c
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name: "nil config uses defaults",
			cfg:  nil,
		},
		{
			name: "default config",
			cfg:  DefaultConfig(),
		},
		{
			name: "weights not summing to one rejected",
			cfg: func() *Config {
				cfg := DefaultConfig()
				cfg.Weights.Engagement = 0.5
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "zero zpd sigma rejected",
			cfg: func() *Config {
				cfg := DefaultConfig()
				cfg.ZPDSigma = 0
				return cfg
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.cfg, zerolog.Nop())
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewEngine() error = nil, want validation error")
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("NewEngine() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			if e == nil {
				t.Fatal("NewEngine() returned nil engine")
			}
		})
	}
}

func TestEngine_Select_EmptyCandidates(t *testing.T) {
	e := testEngine(t)
	student := testStudent(t)

	_, err := e.Select(student, nil, testTopics(t, "t1"))
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Select() error = %v, want ErrNoCandidates", err)
	}
}

func TestEngine_Select_FallbackWhenNothingEligible(t *testing.T) {
	e := testEngine(t)
	student := testStudent(t) // zero mastery: ZPD band is [-0.1, 0.3]

	candidates := []*Content{
		namedContent(t, "hard", "t1", 0.9),
		namedContent(t, "harder", "t1", 0.95),
		namedContent(t, "hardest", "t1", 1.0),
	}

	sel, err := e.Select(student, candidates, testTopics(t, "t1"))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if !sel.Fallback {
		t.Error("Fallback = false, want true")
	}
	if sel.Content.ID != "hard" {
		t.Errorf("fallback content = %q, want least difficult %q", sel.Content.ID, "hard")
	}
	if len(sel.Scores) != 0 {
		t.Errorf("fallback scores = %v, want empty", sel.Scores)
	}
}

func TestEngine_Select_PicksEligibleMaximizer(t *testing.T) {
	e := testEngine(t)
	student := testStudent(t)
	student.KnowledgeState = map[string]float64{"t1": 0.5}

	// Band for t1 at mastery 0.5: [0.4, 0.8]. ZPD target for scoring sits
	// at knowledge level 0.5 + 0.2 = 0.7.
	candidates := []*Content{
		namedContent(t, "low", "t1", 0.45),
		namedContent(t, "target", "t1", 0.7),
		namedContent(t, "outside", "t1", 0.95),
	}

	sel, err := e.Select(student, candidates, testTopics(t, "t1"))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Fallback {
		t.Fatal("Fallback = true, want constraint-passing selection")
	}
	if sel.Content.ID != "target" {
		t.Errorf("selected %q, want %q", sel.Content.ID, "target")
	}

	for _, key := range []string{
		ComponentLearningStyle, ComponentDifficulty, ComponentCognitiveLoad,
		ComponentKnowledgeGap, ComponentEngagement, ComponentExploration, ComponentTotal,
	} {
		if _, ok := sel.Scores[key]; !ok {
			t.Errorf("Scores missing component %q", key)
		}
	}
}

func TestEngine_Select_TieBreaksOnFirstEncounter(t *testing.T) {
	e := testEngine(t)
	student := testStudent(t)
	student.KnowledgeState = map[string]float64{"t1": 0.5}

	// Identical items score identically; the first must win.
	first := namedContent(t, "first", "t1", 0.7)
	second := namedContent(t, "second", "t1", 0.7)

	sel, err := e.Select(student, []*Content{first, second}, testTopics(t, "t1"))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Content.ID != "first" {
		t.Errorf("selected %q, want stable first-encounter winner %q", sel.Content.ID, "first")
	}
}

func TestEngine_Select_PrerequisiteConstraint(t *testing.T) {
	e := testEngine(t)
	topics := testTopics(t, "basics", "advanced")
	topics["advanced"].Prerequisites = []string{"basics"}

	student := testStudent(t)
	student.KnowledgeState = map[string]float64{
		"basics":   0.5, // below the 0.7 mastery threshold
		"advanced": 0.5,
	}

	gated := namedContent(t, "gated", "advanced", 0.6)
	open := namedContent(t, "open", "basics", 0.6)

	sel, err := e.Select(student, []*Content{gated, open}, topics)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Fallback {
		t.Fatal("Fallback = true, want eligible selection")
	}
	if sel.Content.ID != "open" {
		t.Errorf("selected %q, want %q (prerequisite gate)", sel.Content.ID, "open")
	}

	// Mastering the prerequisite opens the gate.
	student.KnowledgeState["basics"] = 0.9
	sel, err = e.Select(student, []*Content{gated}, topics)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Fallback || sel.Content.ID != "gated" {
		t.Errorf("selected %q (fallback=%t), want %q eligible", sel.Content.ID, sel.Fallback, "gated")
	}
}

func TestEngine_Select_CognitiveLoadConstraint(t *testing.T) {
	e := testEngine(t)
	student := testStudent(t)
	student.KnowledgeState = map[string]float64{"t1": 0.85}
	student.CurrentCognitiveLoad = 1.0 // fatigue term at its 0.3 cap

	// Projected load 1.0*0.95 + 0.3 clamps to 1.0 > CLMax 0.9.
	heavy := namedContent(t, "heavy", "t1", 0.95)
	heavy.IntrinsicLoad = 1.0
	// Projected load 0.2*0.85 + 0.3 = 0.47.
	light := namedContent(t, "light", "t1", 0.85)
	light.IntrinsicLoad = 0.2

	sel, err := e.Select(student, []*Content{heavy, light}, testTopics(t, "t1"))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Fallback {
		t.Fatal("Fallback = true, want eligible selection")
	}
	if sel.Content.ID != "light" {
		t.Errorf("selected %q, want %q (load ceiling)", sel.Content.ID, "light")
	}
}

func TestEngine_Select_AdvancesTimeStep(t *testing.T) {
	e := testEngine(t)
	student := testStudent(t)
	student.KnowledgeState = map[string]float64{"t1": 0.5}
	topics := testTopics(t, "t1")

	if e.TimeStep() != 0 {
		t.Fatalf("initial TimeStep() = %d, want 0", e.TimeStep())
	}

	// Normal selection advances the step.
	if _, err := e.Select(student, []*Content{namedContent(t, "c1", "t1", 0.6)}, topics); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if e.TimeStep() != 1 {
		t.Errorf("TimeStep() after selection = %d, want 1", e.TimeStep())
	}

	// Fallback selection advances it too.
	if _, err := e.Select(student, []*Content{namedContent(t, "c2", "t1", 1.0)}, topics); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if e.TimeStep() != 2 {
		t.Errorf("TimeStep() after fallback = %d, want 2", e.TimeStep())
	}
}

func TestEngine_SetWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{
			name:    "exact sum accepted",
			weights: Weights{LearningStyle: 0.2, Difficulty: 0.2, CognitiveLoad: 0.2, KnowledgeGap: 0.2, Engagement: 0.2},
		},
		{
			name:    "within tolerance accepted",
			weights: Weights{LearningStyle: 0.2, Difficulty: 0.2, CognitiveLoad: 0.2, KnowledgeGap: 0.2, Engagement: 0.205},
		},
		{
			name:    "beyond tolerance rejected",
			weights: Weights{LearningStyle: 0.2, Difficulty: 0.2, CognitiveLoad: 0.2, KnowledgeGap: 0.2, Engagement: 0.25},
			wantErr: true,
		},
		{
			name:    "zero weights rejected",
			weights: Weights{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEngine(t)
			err := e.SetWeights(tt.weights)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("SetWeights() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetWeights() error = %v", err)
			}
			if got := e.Weights(); got != tt.weights {
				t.Errorf("Weights() = %+v, want %+v", got, tt.weights)
			}
		})
	}
}

func TestEngine_Apply(t *testing.T) {
	e := testEngine(t)
	student := testStudent(t)
	content := namedContent(t, "c1", "t1", 0.5)
	content.IntrinsicLoad = 0.6

	obs, err := NewObservation("c1", "t1", true, 120, 0.8)
	if err != nil {
		t.Fatalf("NewObservation() error = %v", err)
	}

	got := e.Apply(student, obs, content)
	if got != student {
		t.Error("Apply() returned a different pointer; want in-place mutation")
	}

	if mastery := student.Mastery("t1"); !almostEqual(mastery, 0.3, epsilon) {
		// From zero prior: posterior 0, then learning transition 0.3.
		t.Errorf("mastery after first correct = %f, want 0.3", mastery)
	}
	if len(student.RecentPerformance) != 1 || student.RecentPerformance[0] != 1.0 {
		t.Errorf("RecentPerformance = %v, want [1.0]", student.RecentPerformance)
	}
	if len(student.EngagementHistory) != 1 || student.EngagementHistory[0] != 0.8 {
		t.Errorf("EngagementHistory = %v, want [0.8]", student.EngagementHistory)
	}
	if !almostEqual(student.CurrentCognitiveLoad, 0.12, epsilon) {
		// 0.8*0.0 + 0.2*0.6
		t.Errorf("CurrentCognitiveLoad = %f, want 0.12", student.CurrentCognitiveLoad)
	}
	if student.TotalInteractions != 1 {
		t.Errorf("TotalInteractions = %d, want 1", student.TotalInteractions)
	}
}

func TestEngine_Apply_MasteredTopicsAppendOnce(t *testing.T) {
	e := testEngine(t)
	student := testStudent(t)
	content := namedContent(t, "c1", "t1", 0.5)

	obs, err := NewObservation("c1", "t1", true, 60, 0.9)
	if err != nil {
		t.Fatalf("NewObservation() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		e.Apply(student, obs, content)
	}

	if student.Mastery("t1") < masteredThreshold {
		t.Fatalf("mastery after 10 correct = %f, want >= %f", student.Mastery("t1"), masteredThreshold)
	}
	count := 0
	for _, id := range student.MasteredTopics {
		if id == "t1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("t1 appears %d times in MasteredTopics, want exactly once", count)
	}
}

func TestEngine_Apply_BoundedHistories(t *testing.T) {
	e := testEngine(t)
	student := testStudent(t)
	content := namedContent(t, "c1", "t1", 0.5)
	content.IntrinsicLoad = 1.0

	for i := 0; i < 25; i++ {
		correct := i%2 == 0
		obs, err := NewObservation("c1", "t1", correct, 60, 0.5)
		if err != nil {
			t.Fatalf("NewObservation() error = %v", err)
		}
		e.Apply(student, obs, content)

		if load := student.CurrentCognitiveLoad; load < 0 || load > 1 {
			t.Fatalf("apply %d: CurrentCognitiveLoad = %f, outside [0, 1]", i, load)
		}
	}

	if len(student.RecentPerformance) != historyLimit {
		t.Errorf("RecentPerformance length = %d, want %d", len(student.RecentPerformance), historyLimit)
	}
	if len(student.EngagementHistory) != historyLimit {
		t.Errorf("EngagementHistory length = %d, want %d", len(student.EngagementHistory), historyLimit)
	}
	if student.TotalInteractions != 25 {
		t.Errorf("TotalInteractions = %d, want 25", student.TotalInteractions)
	}

	// The oldest entries slid out: with alternating outcomes starting
	// correct, entry 5 (index 0 after truncation) is odd -> incorrect.
	if student.RecentPerformance[0] != 0 {
		t.Errorf("RecentPerformance[0] = %f, want 0 (oldest dropped)", student.RecentPerformance[0])
	}
}
