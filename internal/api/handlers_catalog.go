// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/store"
	"github.com/tomtom215/learnpath/internal/validation"
)

// CreateTopicRequest is the payload for POST /api/v1/topics.
type CreateTopicRequest struct {
	ID               string   `json:"id" validate:"required,min=1,max=128"`
	Name             string   `json:"name" validate:"required,min=1,max=256"`
	Prerequisites    []string `json:"prerequisites"`
	ImportanceWeight float64  `json:"importance_weight" validate:"gte=0"`
	Difficulty       float64  `json:"difficulty" validate:"gte=0,lte=1"`
}

// CreateTopic authors a new curriculum topic.
func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req CreateTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadJSON, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidationError(w, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	topic, err := learn.NewTopic(req.ID, req.Name)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	topic.Prerequisites = req.Prerequisites
	if req.ImportanceWeight > 0 {
		topic.ImportanceWeight = req.ImportanceWeight
	}
	topic.Difficulty = req.Difficulty
	if err := topic.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	if err := h.store.PutTopic(r.Context(), topic); err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to store topic", err)
		return
	}

	respondSuccess(w, http.StatusCreated, topic)
}

// GetTopic returns a single topic.
func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	topic, err := h.store.GetTopic(r.Context(), id)
	if errors.Is(err, store.ErrTopicNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "topic not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load topic", err)
		return
	}

	respondSuccess(w, http.StatusOK, topic)
}

// ListTopics returns all topics.
func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.store.ListTopics(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to list topics", err)
		return
	}

	respondSuccess(w, http.StatusOK, topics)
}

// DeleteTopic removes a topic.
func (h *Handler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteTopic(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to delete topic", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"deleted": id})
}

// CreateContentRequest is the payload for POST /api/v1/content.
type CreateContentRequest struct {
	ID                 string                  `json:"id" validate:"required,min=1,max=128"`
	TopicID            string                  `json:"topic_id" validate:"required"`
	Type               string                  `json:"content_type" validate:"required,content_type"`
	Difficulty         float64                 `json:"difficulty" validate:"gte=0,lte=1"`
	Title              string                  `json:"title" validate:"required,min=1,max=512"`
	Description        string                  `json:"description"`
	DurationMinutes    int                     `json:"duration_minutes" validate:"gt=0"`
	IntrinsicLoad      float64                 `json:"intrinsic_load" validate:"gte=0,lte=1"`
	Prerequisites      []string                `json:"prerequisites"`
	LearningObjectives []string                `json:"learning_objectives"`
	Tags               []string                `json:"tags"`
	Quiz               *learn.QuizPayload      `json:"quiz"`
	CaseStudy          *learn.CaseStudyPayload `json:"case_study"`
}

// CreateContent authors a new content item. The referenced topic must
// exist, and quiz/case-study payloads must match the content type.
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadJSON, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidationError(w, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	if _, err := h.store.GetTopic(r.Context(), req.TopicID); errors.Is(err, store.ErrTopicNotFound) {
		respondError(w, http.StatusBadRequest, CodeValidation, "topic does not exist: "+req.TopicID, nil)
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to check topic", err)
		return
	}

	content, err := learn.NewContent(req.ID, req.TopicID, learn.ContentType(req.Type), req.Difficulty, req.Title, req.DurationMinutes)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	content.Description = req.Description
	if req.IntrinsicLoad > 0 {
		content.IntrinsicLoad = req.IntrinsicLoad
	}
	content.Prerequisites = req.Prerequisites
	content.LearningObjectives = req.LearningObjectives
	content.Tags = req.Tags
	content.Quiz = req.Quiz
	content.CaseStudy = req.CaseStudy
	if err := content.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	if err := h.store.PutContent(r.Context(), content); err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to store content", err)
		return
	}

	respondSuccess(w, http.StatusCreated, content)
}

// GetContent returns a single content item.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	content, err := h.store.GetContent(r.Context(), id)
	if errors.Is(err, store.ErrContentNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "content not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load content", err)
		return
	}

	respondSuccess(w, http.StatusOK, content)
}

// ListContent returns the content catalog, optionally filtered by a
// ?topic_id= query parameter.
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	var (
		items []*learn.Content
		err   error
	)
	if topicID := r.URL.Query().Get("topic_id"); topicID != "" {
		items, err = h.store.ListContentByTopic(r.Context(), topicID)
	} else {
		items, err = h.store.ListContent(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to list content", err)
		return
	}

	respondSuccess(w, http.StatusOK, items)
}

// DeleteContent removes a content item.
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteContent(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to delete content", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"deleted": id})
}
