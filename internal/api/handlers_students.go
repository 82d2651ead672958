// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/store"
	"github.com/tomtom215/learnpath/internal/validation"
)

// CreateStudentRequest is the payload for POST /api/v1/students.
type CreateStudentRequest struct {
	StudentID string `json:"student_id" validate:"required,min=1,max=128"`
}

// CreateStudent registers a new student with a uniform style-preference
// distribution and empty knowledge state.
func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadJSON, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidationError(w, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	if _, err := h.store.GetStudent(r.Context(), req.StudentID); err == nil {
		respondError(w, http.StatusConflict, CodeConflict, "student already exists", nil)
		return
	} else if !errors.Is(err, store.ErrStudentNotFound) {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to check student", err)
		return
	}

	student, err := learn.NewStudentState(req.StudentID)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	if err := h.store.PutStudent(r.Context(), student); err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to store student", err)
		return
	}

	respondSuccess(w, http.StatusCreated, student)
}

// GetStudent returns the full student state.
func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	student, err := h.store.GetStudent(r.Context(), id)
	if errors.Is(err, store.ErrStudentNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "student not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load student", err)
		return
	}

	respondSuccess(w, http.StatusOK, student)
}

// DeleteStudent removes a student and their recommendation history.
func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteStudent(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to delete student", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"deleted": id})
}

// UpdatePreferencesRequest is the payload for PUT preferences.
type UpdatePreferencesRequest struct {
	Preferences map[string]float64 `json:"preferences" validate:"required"`
}

// UpdatePreferences replaces a student's learning-style preference
// distribution. The new distribution must cover valid styles and sum
// to 1.0 within tolerance.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePreferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadJSON, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidationError(w, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	prefs := make(map[learn.LearningStyle]float64, len(req.Preferences))
	for name, weight := range req.Preferences {
		style := learn.LearningStyle(name)
		if !style.Valid() {
			respondError(w, http.StatusBadRequest, CodeValidation, "unknown learning style: "+name, nil)
			return
		}
		prefs[style] = weight
	}

	student, err := h.store.GetStudent(r.Context(), id)
	if errors.Is(err, store.ErrStudentNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "student not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load student", err)
		return
	}

	student.StylePreferences = prefs
	if err := student.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	if err := h.store.PutStudent(r.Context(), student); err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to store student", err)
		return
	}

	respondSuccess(w, http.StatusOK, student)
}

// RecommendationHistory returns the student's most recent recommendations,
// newest first. Supports a ?limit= query parameter (default 20, max 200).
func (h *Handler) RecommendationHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			respondError(w, http.StatusBadRequest, CodeValidation, "limit must be an integer in [1, 200]", nil)
			return
		}
		limit = parsed
	}

	if _, err := h.store.GetStudent(r.Context(), id); errors.Is(err, store.ErrStudentNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "student not found", nil)
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load student", err)
		return
	}

	recs, err := h.store.ListRecommendations(r.Context(), id, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeStore, "failed to load history", err)
		return
	}

	respondSuccess(w, http.StatusOK, recs)
}
