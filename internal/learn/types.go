// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package learn

import (
	"fmt"
	"time"
)

// ContentType classifies learning content by delivery format.
// Each type has a different affinity with learning styles (see scoring.go).
type ContentType string

const (
	// ContentVideo is video-based content.
	ContentVideo ContentType = "video"
	// ContentText is text/article content.
	ContentText ContentType = "text"
	// ContentInteractive is hands-on interactive content.
	ContentInteractive ContentType = "interactive"
	// ContentQuiz is assessment content.
	ContentQuiz ContentType = "quiz"
	// ContentCaseStudy is scenario-based content.
	ContentCaseStudy ContentType = "case_study"
)

// ContentTypes lists every valid content type.
// The style affinity table must cover all of these (asserted in tests).
var ContentTypes = []ContentType{
	ContentVideo,
	ContentText,
	ContentInteractive,
	ContentQuiz,
	ContentCaseStudy,
}

// Valid reports whether the content type is a member of the closed enumeration.
func (t ContentType) Valid() bool {
	switch t {
	case ContentVideo, ContentText, ContentInteractive, ContentQuiz, ContentCaseStudy:
		return true
	default:
		return false
	}
}

// String returns the wire name of the content type.
func (t ContentType) String() string { return string(t) }

// LearningStyle identifies a VARK learning style preference.
type LearningStyle string

const (
	// StyleVisual prefers diagrams, video, and spatial material.
	StyleVisual LearningStyle = "visual"
	// StyleAuditory prefers spoken and heard material.
	StyleAuditory LearningStyle = "auditory"
	// StyleKinesthetic prefers hands-on practice.
	StyleKinesthetic LearningStyle = "kinesthetic"
	// StyleReadingWriting prefers written material.
	StyleReadingWriting LearningStyle = "reading_writing"
)

// LearningStyles lists every valid learning style.
var LearningStyles = []LearningStyle{
	StyleVisual,
	StyleAuditory,
	StyleKinesthetic,
	StyleReadingWriting,
}

// Valid reports whether the style is a member of the closed enumeration.
func (s LearningStyle) Valid() bool {
	switch s {
	case StyleVisual, StyleAuditory, StyleKinesthetic, StyleReadingWriting:
		return true
	default:
		return false
	}
}

// String returns the wire name of the learning style.
func (s LearningStyle) String() string { return string(s) }

// historyLimit bounds the sliding performance and engagement histories.
const historyLimit = 20

// masteredThreshold is the mastery probability at which a topic is
// considered mastered and appended to StudentState.MasteredTopics.
const masteredThreshold = 0.8

// distributionTolerance is the allowed deviation from 1.0 for probability
// distributions (style preferences, selection weights).
const distributionTolerance = 0.01

// Topic represents a node in the curriculum graph.
// Topics are immutable after creation.
type Topic struct {
	// ID is the unique topic identifier.
	ID string `json:"id"`

	// Name is the human-readable topic name.
	Name string `json:"name"`

	// Prerequisites lists topic IDs that must be mastered before content
	// on this topic becomes eligible for selection.
	Prerequisites []string `json:"prerequisites,omitempty"`

	// ImportanceWeight scales this topic's contribution to the aggregate
	// knowledge level. Must be positive. Default: 1.0.
	ImportanceWeight float64 `json:"importance_weight"`

	// Difficulty is the inherent topic difficulty in [0, 1].
	Difficulty float64 `json:"difficulty"`

	// CreatedAt is when the topic was authored.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// NewTopic creates a validated Topic with default importance weight 1.0
// and difficulty 0.5.
func NewTopic(id, name string) (*Topic, error) {
	t := &Topic{
		ID:               id,
		Name:             name,
		ImportanceWeight: 1.0,
		Difficulty:       0.5,
		CreatedAt:        time.Now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks topic invariants. Used at construction and after
// deserialization.
func (t *Topic) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("topic: %w: id must not be empty", ErrValidation)
	}
	if t.ImportanceWeight <= 0 {
		return fmt.Errorf("topic %q: %w: importance_weight must be positive, got %f",
			t.ID, ErrValidation, t.ImportanceWeight)
	}
	if t.Difficulty < 0 || t.Difficulty > 1 {
		return fmt.Errorf("topic %q: %w: difficulty must be in [0, 1], got %f",
			t.ID, ErrValidation, t.Difficulty)
	}
	return nil
}

// QuizPayload carries quiz-specific fields for ContentQuiz items.
type QuizPayload struct {
	// QuestionCount is the number of questions in the quiz.
	QuestionCount int `json:"question_count"`

	// PassingScore is the fraction of questions that must be answered
	// correctly to pass, in [0, 1].
	PassingScore float64 `json:"passing_score"`

	// TimeLimitSeconds is the quiz time limit. Zero means untimed.
	TimeLimitSeconds int `json:"time_limit_seconds,omitempty"`
}

// Validate checks quiz payload invariants.
func (q *QuizPayload) Validate() error {
	if q.QuestionCount < 1 {
		return fmt.Errorf("quiz: %w: question_count must be positive, got %d",
			ErrValidation, q.QuestionCount)
	}
	if q.PassingScore < 0 || q.PassingScore > 1 {
		return fmt.Errorf("quiz: %w: passing_score must be in [0, 1], got %f",
			ErrValidation, q.PassingScore)
	}
	if q.TimeLimitSeconds < 0 {
		return fmt.Errorf("quiz: %w: time_limit_seconds must be non-negative, got %d",
			ErrValidation, q.TimeLimitSeconds)
	}
	return nil
}

// CaseStudyPayload carries scenario fields for ContentCaseStudy items.
type CaseStudyPayload struct {
	// Scenario is the case description presented to the student.
	Scenario string `json:"scenario"`

	// DiscussionPrompts are follow-up questions for the case.
	DiscussionPrompts []string `json:"discussion_prompts,omitempty"`

	// Industry tags the case's domain (e.g. "healthcare").
	Industry string `json:"industry,omitempty"`
}

// Validate checks case study payload invariants.
func (cs *CaseStudyPayload) Validate() error {
	if cs.Scenario == "" {
		return fmt.Errorf("case study: %w: scenario must not be empty", ErrValidation)
	}
	return nil
}

// Content represents a single piece of learning material.
//
// Quiz and case-study content are tagged variants of the same record: the
// Type field discriminates, and the optional Quiz/CaseStudy payloads carry
// kind-specific data. All scoring reads only the shared fields, so the
// payloads never influence selection.
type Content struct {
	// ID is the unique content identifier.
	ID string `json:"id"`

	// TopicID references the Topic this content teaches.
	TopicID string `json:"topic_id"`

	// Type is the content delivery format.
	Type ContentType `json:"content_type"`

	// Difficulty is the content difficulty in [0, 1].
	Difficulty float64 `json:"difficulty"`

	// Title is the display title.
	Title string `json:"title"`

	// Description summarizes the content.
	Description string `json:"description,omitempty"`

	// DurationMinutes is the estimated completion time. Must be positive.
	DurationMinutes int `json:"duration_minutes"`

	// IntrinsicLoad is the inherent cognitive load of the material in
	// [0, 1], independent of the student. Default: 0.5.
	IntrinsicLoad float64 `json:"intrinsic_load"`

	// InteractionCount is how many times this content has been served.
	// Incremented by the serving layer, never by the selection engine.
	InteractionCount int `json:"interaction_count"`

	// Prerequisites lists content IDs recommended before this item.
	// Authoring metadata only; constraint checking uses topic-level
	// prerequisites.
	Prerequisites []string `json:"prerequisites,omitempty"`

	// LearningObjectives describe what the student should take away.
	LearningObjectives []string `json:"learning_objectives,omitempty"`

	// Tags are free-form authoring labels.
	Tags []string `json:"tags,omitempty"`

	// Quiz holds quiz-specific fields. Non-nil only when Type is quiz.
	Quiz *QuizPayload `json:"quiz,omitempty"`

	// CaseStudy holds case-specific fields. Non-nil only when Type is
	// case_study.
	CaseStudy *CaseStudyPayload `json:"case_study,omitempty"`

	// CreatedAt is when the content was authored.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// NewContent creates a validated Content with default intrinsic load 0.5.
func NewContent(id, topicID string, contentType ContentType, difficulty float64, title string, durationMinutes int) (*Content, error) {
	c := &Content{
		ID:              id,
		TopicID:         topicID,
		Type:            contentType,
		Difficulty:      difficulty,
		Title:           title,
		DurationMinutes: durationMinutes,
		IntrinsicLoad:   0.5,
		CreatedAt:       time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewQuizContent creates a validated quiz content item with its payload.
func NewQuizContent(id, topicID string, difficulty float64, title string, durationMinutes int, payload QuizPayload) (*Content, error) {
	c, err := NewContent(id, topicID, ContentQuiz, difficulty, title, durationMinutes)
	if err != nil {
		return nil, err
	}
	c.Quiz = &payload
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewCaseStudyContent creates a validated case-study content item with its payload.
func NewCaseStudyContent(id, topicID string, difficulty float64, title string, durationMinutes int, payload CaseStudyPayload) (*Content, error) {
	c, err := NewContent(id, topicID, ContentCaseStudy, difficulty, title, durationMinutes)
	if err != nil {
		return nil, err
	}
	c.CaseStudy = &payload
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks content invariants, including the variant tagging rules.
func (c *Content) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("content: %w: id must not be empty", ErrValidation)
	}
	if c.TopicID == "" {
		return fmt.Errorf("content %q: %w: topic_id must not be empty", c.ID, ErrValidation)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("content %q: %w: unknown content type %q", c.ID, ErrValidation, c.Type)
	}
	if c.Difficulty < 0 || c.Difficulty > 1 {
		return fmt.Errorf("content %q: %w: difficulty must be in [0, 1], got %f",
			c.ID, ErrValidation, c.Difficulty)
	}
	if c.IntrinsicLoad < 0 || c.IntrinsicLoad > 1 {
		return fmt.Errorf("content %q: %w: intrinsic_load must be in [0, 1], got %f",
			c.ID, ErrValidation, c.IntrinsicLoad)
	}
	if c.DurationMinutes <= 0 {
		return fmt.Errorf("content %q: %w: duration_minutes must be positive, got %d",
			c.ID, ErrValidation, c.DurationMinutes)
	}
	if c.InteractionCount < 0 {
		return fmt.Errorf("content %q: %w: interaction_count must be non-negative, got %d",
			c.ID, ErrValidation, c.InteractionCount)
	}
	if c.Quiz != nil {
		if c.Type != ContentQuiz {
			return fmt.Errorf("content %q: %w: quiz payload on %q content", c.ID, ErrValidation, c.Type)
		}
		if err := c.Quiz.Validate(); err != nil {
			return fmt.Errorf("content %q: %w", c.ID, err)
		}
	}
	if c.CaseStudy != nil {
		if c.Type != ContentCaseStudy {
			return fmt.Errorf("content %q: %w: case study payload on %q content", c.ID, ErrValidation, c.Type)
		}
		if err := c.CaseStudy.Validate(); err != nil {
			return fmt.Errorf("content %q: %w", c.ID, err)
		}
	}
	return nil
}

// DifficultyLabel returns a human-readable difficulty band for display.
func (c *Content) DifficultyLabel() string {
	switch {
	case c.Difficulty < 0.3:
		return "Easy"
	case c.Difficulty < 0.6:
		return "Moderate"
	case c.Difficulty < 0.8:
		return "Advanced"
	default:
		return "Expert"
	}
}

// StudentState is the learner model: the one long-lived mutable record in
// the engine. It is owned by the caller; Engine.Apply mutates it in place
// and returns the same pointer, which the caller must treat as the sole
// live copy from then on.
type StudentState struct {
	// StudentID is the unique student identifier.
	StudentID string `json:"student_id"`

	// KnowledgeState maps topic ID to estimated mastery probability.
	KnowledgeState map[string]float64 `json:"knowledge_state"`

	// StylePreferences is the probability distribution over learning
	// styles. Values must sum to 1.0 within tolerance.
	StylePreferences map[LearningStyle]float64 `json:"learning_style_preferences"`

	// CurrentCognitiveLoad is the student's current mental-effort burden
	// in [0, 1].
	CurrentCognitiveLoad float64 `json:"current_cognitive_load"`

	// RecentPerformance holds the last 20 correctness outcomes (1.0/0.0),
	// oldest dropped on overflow.
	RecentPerformance []float64 `json:"recent_performance"`

	// MasteredTopics lists topics whose mastery reached 0.8. Append-only,
	// no duplicates.
	MasteredTopics []string `json:"mastered_topics"`

	// TotalInteractions counts every applied observation.
	TotalInteractions int `json:"total_interactions"`

	// EngagementHistory holds the last 20 engagement scores.
	EngagementHistory []float64 `json:"engagement_history"`

	// CreatedAt is when the student record was created.
	CreatedAt time.Time `json:"created_at,omitempty"`

	// UpdatedAt is when the student state last changed.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewStudentState creates a student with empty knowledge and a uniform
// style-preference distribution (0.25 each).
func NewStudentState(studentID string) (*StudentState, error) {
	now := time.Now().UTC()
	s := &StudentState{
		StudentID:      studentID,
		KnowledgeState: make(map[string]float64),
		StylePreferences: map[LearningStyle]float64{
			StyleVisual:         0.25,
			StyleAuditory:       0.25,
			StyleKinesthetic:    0.25,
			StyleReadingWriting: 0.25,
		},
		RecentPerformance: make([]float64, 0, historyLimit),
		MasteredTopics:    make([]string, 0),
		EngagementHistory: make([]float64, 0, historyLimit),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks student invariants. Used at construction and after
// deserialization.
func (s *StudentState) Validate() error {
	if s.StudentID == "" {
		return fmt.Errorf("student: %w: student_id must not be empty", ErrValidation)
	}
	for topicID, mastery := range s.KnowledgeState {
		if mastery < 0 || mastery > 1 {
			return fmt.Errorf("student %q: %w: mastery for topic %q must be in [0, 1], got %f",
				s.StudentID, ErrValidation, topicID, mastery)
		}
	}
	if len(s.StylePreferences) > 0 {
		var sum float64
		for style, p := range s.StylePreferences {
			if !style.Valid() {
				return fmt.Errorf("student %q: %w: unknown learning style %q",
					s.StudentID, ErrValidation, style)
			}
			if p < 0 || p > 1 {
				return fmt.Errorf("student %q: %w: preference for style %q must be in [0, 1], got %f",
					s.StudentID, ErrValidation, style, p)
			}
			sum += p
		}
		if sum < 1.0-distributionTolerance || sum > 1.0+distributionTolerance {
			return fmt.Errorf("student %q: %w: style preferences must sum to 1.0 (±%g), got %f",
				s.StudentID, ErrValidation, distributionTolerance, sum)
		}
	}
	if s.CurrentCognitiveLoad < 0 || s.CurrentCognitiveLoad > 1 {
		return fmt.Errorf("student %q: %w: cognitive load must be in [0, 1], got %f",
			s.StudentID, ErrValidation, s.CurrentCognitiveLoad)
	}
	if s.TotalInteractions < 0 {
		return fmt.Errorf("student %q: %w: total_interactions must be non-negative, got %d",
			s.StudentID, ErrValidation, s.TotalInteractions)
	}
	for i, v := range s.RecentPerformance {
		if v != 0 && v != 1 {
			return fmt.Errorf("student %q: %w: recent_performance[%d] must be 0 or 1, got %f",
				s.StudentID, ErrValidation, i, v)
		}
	}
	for i, v := range s.EngagementHistory {
		if v < 0 || v > 1 {
			return fmt.Errorf("student %q: %w: engagement_history[%d] must be in [0, 1], got %f",
				s.StudentID, ErrValidation, i, v)
		}
	}
	return nil
}

// Mastery returns the student's mastery probability for a topic, or 0.0
// for topics with no history.
func (s *StudentState) Mastery(topicID string) float64 {
	return s.KnowledgeState[topicID]
}

// HasMastered reports whether a topic is in the mastered set.
func (s *StudentState) HasMastered(topicID string) bool {
	for _, id := range s.MasteredTopics {
		if id == topicID {
			return true
		}
	}
	return false
}

// Observation records the outcome of one student-content interaction.
// Immutable after construction.
type Observation struct {
	// ContentID is the content the student interacted with.
	ContentID string `json:"content_id"`

	// TopicID is the topic the content covers.
	TopicID string `json:"topic_id"`

	// Correct indicates whether the student answered correctly.
	Correct bool `json:"correct"`

	// TimeSpentSeconds is how long the interaction lasted.
	TimeSpentSeconds int `json:"time_spent"`

	// EngagementScore is the measured engagement in [0, 1].
	EngagementScore float64 `json:"engagement_score"`

	// Timestamp is when the interaction occurred.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// NewObservation creates a validated Observation stamped with the current time.
func NewObservation(contentID, topicID string, correct bool, timeSpentSeconds int, engagementScore float64) (*Observation, error) {
	o := &Observation{
		ContentID:        contentID,
		TopicID:          topicID,
		Correct:          correct,
		TimeSpentSeconds: timeSpentSeconds,
		EngagementScore:  engagementScore,
		Timestamp:        time.Now().UTC(),
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks observation invariants.
func (o *Observation) Validate() error {
	if o.ContentID == "" {
		return fmt.Errorf("observation: %w: content_id must not be empty", ErrValidation)
	}
	if o.TopicID == "" {
		return fmt.Errorf("observation: %w: topic_id must not be empty", ErrValidation)
	}
	if o.TimeSpentSeconds < 0 {
		return fmt.Errorf("observation: %w: time_spent must be non-negative, got %d",
			ErrValidation, o.TimeSpentSeconds)
	}
	if o.EngagementScore < 0 || o.EngagementScore > 1 {
		return fmt.Errorf("observation: %w: engagement_score must be in [0, 1], got %f",
			ErrValidation, o.EngagementScore)
	}
	return nil
}

// Recommendation is the serving-layer record of a selection decision.
type Recommendation struct {
	// StudentID is the student the recommendation was made for.
	StudentID string `json:"student_id"`

	// ContentID is the selected content.
	ContentID string `json:"content_id"`

	// Score is the combined selection objective value.
	Score float64 `json:"score"`

	// ComponentScores breaks the objective down by scoring component.
	// Empty when the selection fell back past the constraint filter.
	ComponentScores map[string]float64 `json:"component_scores"`

	// Fallback indicates no candidate satisfied the pedagogical
	// constraints and the least-difficult item was returned instead.
	Fallback bool `json:"fallback"`

	// Timestamp is when the recommendation was produced.
	Timestamp time.Time `json:"timestamp"`
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pushBounded appends v and drops the oldest entries beyond limit.
func pushBounded(history []float64, v float64, limit int) []float64 {
	history = append(history, v)
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}
