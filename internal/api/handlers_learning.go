// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/logging"
	"github.com/tomtom215/learnpath/internal/metrics"
	"github.com/tomtom215/learnpath/internal/store"
	"github.com/tomtom215/learnpath/internal/validation"
)

// Recommend selects the next content item for a student.
//
// The full cycle: load student state, topic graph, and content catalog;
// run the selection engine; bump the winner's interaction counter;
// persist the recommendation record; return it.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := h.lockStudent(id)
	defer unlock()

	student, err := h.store.GetStudent(r.Context(), id)
	if errors.Is(err, store.ErrStudentNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "student not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load student", err)
		return
	}

	topics, err := h.store.ListTopics(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load topics", err)
		return
	}
	candidates, err := h.store.ListContent(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load content", err)
		return
	}

	start := time.Now()
	selection, err := h.engine.Select(student, candidates, topics)
	if errors.Is(err, learn.ErrNoCandidates) {
		metrics.RecordSelection(time.Since(start), 0, 0, false, err)
		respondError(w, http.StatusUnprocessableEntity, CodeNoCandidates, "no content available", nil)
		return
	}
	if err != nil {
		metrics.RecordSelection(time.Since(start), len(candidates), 0, false, err)
		respondError(w, http.StatusInternalServerError, CodeInternal, "selection failed", err)
		return
	}
	metrics.RecordSelection(time.Since(start), len(candidates), selection.Eligible, selection.Fallback, nil)

	// Interaction count feeds the exploration bonus, so it is bumped
	// here at serving time, not inside the engine.
	if err := h.store.IncrementInteraction(r.Context(), selection.Content.ID); err != nil {
		logger := logging.Ctx(r.Context())
		logger.Warn().Err(err).
			Str("content_id", selection.Content.ID).
			Msg("failed to bump interaction count")
	}

	rec := &learn.Recommendation{
		StudentID:       id,
		ContentID:       selection.Content.ID,
		Score:           selection.Scores[learn.ComponentTotal],
		ComponentScores: selection.Scores,
		Fallback:        selection.Fallback,
		Timestamp:       time.Now().UTC(),
	}
	if err := h.store.PutRecommendation(r.Context(), rec); err != nil {
		logger := logging.Ctx(r.Context())
		logger.Warn().Err(err).Msg("failed to persist recommendation")
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"recommendation": rec,
		"content":        selection.Content,
	})
}

// ObservationRequest is the payload for POST observations.
type ObservationRequest struct {
	ContentID        string  `json:"content_id" validate:"required"`
	Correct          bool    `json:"correct"`
	TimeSpentSeconds int     `json:"time_spent" validate:"gt=0"`
	EngagementScore  float64 `json:"engagement_score" validate:"gte=0,lte=1"`
}

// SubmitObservation applies an interaction outcome to the student state:
// BKT mastery update, mastery-threshold bookkeeping, cognitive-load decay,
// and history pushes.
func (h *Handler) SubmitObservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ObservationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadJSON, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidationError(w, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	unlock := h.lockStudent(id)
	defer unlock()

	student, err := h.store.GetStudent(r.Context(), id)
	if errors.Is(err, store.ErrStudentNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "student not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load student", err)
		return
	}

	content, err := h.store.GetContent(r.Context(), req.ContentID)
	if errors.Is(err, store.ErrContentNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "content not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load content", err)
		return
	}

	obs, err := learn.NewObservation(req.ContentID, content.TopicID, req.Correct, req.TimeSpentSeconds, req.EngagementScore)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	masteryBefore := student.Mastery(content.TopicID)
	masteredBefore := len(student.MasteredTopics)

	student = h.engine.Apply(student, obs, content)

	masteryAfter := student.Mastery(content.TopicID)
	metrics.RecordObservation(req.Correct, masteryBefore, masteryAfter,
		len(student.MasteredTopics) > masteredBefore)

	if err := h.store.PutStudent(r.Context(), student); err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to store student", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"student":        student,
		"topic_id":       content.TopicID,
		"mastery_before": masteryBefore,
		"mastery_after":  masteryAfter,
	})
}
