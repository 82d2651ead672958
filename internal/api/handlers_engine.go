// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/validation"
)

// EngineConfig is the response body for GET /api/v1/engine/config.
// Weights reflect the live values, which may have been changed at
// runtime via PUT /api/v1/engine/weights.
type EngineConfig struct {
	Weights          learn.Weights   `json:"weights"`
	ZPDDelta         float64         `json:"zpd_delta"`
	ZPDSigma         float64         `json:"zpd_sigma"`
	CLOptimal        float64         `json:"cl_optimal"`
	CLMax            float64         `json:"cl_max"`
	Beta0            float64         `json:"beta_0"`
	MasteryThreshold float64         `json:"mastery_threshold"`
	BKT              learn.BKTParams `json:"bkt"`
	TimeStep         int             `json:"time_step"`
}

// GetEngineConfig returns the engine's effective parameters.
func (h *Handler) GetEngineConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.config.Engine

	respondSuccess(w, http.StatusOK, &EngineConfig{
		Weights:          h.engine.Weights(),
		ZPDDelta:         cfg.ZPDDelta,
		ZPDSigma:         cfg.ZPDSigma,
		CLOptimal:        cfg.CLOptimal,
		CLMax:            cfg.CLMax,
		Beta0:            cfg.Beta0,
		MasteryThreshold: cfg.MasteryThreshold,
		BKT:              cfg.BKT,
		TimeStep:         h.engine.TimeStep(),
	})
}

// UpdateWeightsRequest is the payload for PUT /api/v1/engine/weights.
// All five components must be present; they must sum to 1.0.
type UpdateWeightsRequest struct {
	LearningStyle float64 `json:"learning_style" validate:"gte=0,lte=1"`
	Difficulty    float64 `json:"difficulty" validate:"gte=0,lte=1"`
	CognitiveLoad float64 `json:"cognitive_load" validate:"gte=0,lte=1"`
	KnowledgeGap  float64 `json:"knowledge_gap" validate:"gte=0,lte=1"`
	Engagement    float64 `json:"engagement" validate:"gte=0,lte=1"`
}

// UpdateWeights swaps the engine's scoring weights at runtime.
func (h *Handler) UpdateWeights(w http.ResponseWriter, r *http.Request) {
	var req UpdateWeightsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadJSON, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondValidationError(w, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	weights := learn.Weights{
		LearningStyle: req.LearningStyle,
		Difficulty:    req.Difficulty,
		CognitiveLoad: req.CognitiveLoad,
		KnowledgeGap:  req.KnowledgeGap,
		Engagement:    req.Engagement,
	}
	if err := h.engine.SetWeights(weights); err != nil {
		if errors.Is(err, learn.ErrValidation) {
			respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, CodeInternal, "failed to update weights", err)
		return
	}

	respondSuccess(w, http.StatusOK, weights)
}
