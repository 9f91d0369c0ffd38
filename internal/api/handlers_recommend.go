// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/hybridrec/internal/logging"
	"github.com/tomtom215/hybridrec/internal/models"
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// RecommendationsRequest is the validated form of a recommendation query.
type RecommendationsRequest struct {
	UserID  int      `validate:"gt=0"`
	TopN    int      `validate:"gte=0"`
	Seasons []string `validate:"lte=16,dive,season"`
}

// Recommendations handles GET /api/v1/recommendations/{userID}.
//
// seasons is a comma separated label list; when absent the configured
// default seasons apply and when empty no season is active. top_n of zero or
// absent uses the engine default.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	query := r.URL.Query()
	req := RecommendationsRequest{UserID: userID, Seasons: h.config.DefaultSeasons}
	if query.Has("seasons") {
		req.Seasons = parseCommaSeparated(query.Get("seasons"))
	}
	if raw := query.Get("top_n"); raw != "" {
		if req.TopN, err = strconv.Atoi(raw); err != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "top_n must be an integer", nil)
			return
		}
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}
	if req.TopN > h.config.MaxTopN {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation,
			"top_n must be less than or equal to "+strconv.Itoa(h.config.MaxTopN), nil)
		return
	}

	model := h.models.Current()
	if model == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Model is not built yet", nil)
		return
	}

	resp, err := model.Engine.Recommend(r.Context(), recommend.Request{
		UserID:    req.UserID,
		Seasons:   req.Seasons,
		TopN:      req.TopN,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), err)
		return
	}

	data := models.RecommendationsData{
		UserID:          req.UserID,
		Seasons:         resp.Metadata.Seasons,
		TopN:            resp.Metadata.TopN,
		Outcome:         string(resp.Metadata.Outcome),
		Recommendations: make([]models.RecommendedProduct, 0, len(resp.Recommendations)),
	}
	if user, ok := model.Dataset.User(req.UserID); ok {
		data.UserName = user.Name
	}
	for _, s := range resp.Metadata.Signals {
		data.Signals = append(data.Signals, s.String())
	}
	for _, rec := range resp.Recommendations {
		item := models.RecommendedProduct{ProductID: rec.ProductID, Explanation: rec.Explanation}
		if p, ok := model.Dataset.Product(rec.ProductID); ok {
			item.Name = p.Name
			item.Category = p.Category
		}
		data.Recommendations = append(data.Recommendations, item)
	}

	respondSuccess(w, r, http.StatusOK, data, models.Metadata{
		QueryTimeMS: resp.Metadata.LatencyMS,
		Cached:      resp.Metadata.CacheHit,
	})
}

// ClearUserCache handles DELETE /api/v1/recommendations/{userID}/cache.
// With an invalidator the clear is queued and answered with 202; otherwise
// it runs inline.
func (h *Handler) ClearUserCache(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil || userID <= 0 {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "user id must be a positive integer", nil)
		return
	}

	if h.invalidator != nil {
		eventID, err := h.invalidator.PublishUserInvalidation(r.Context(), userID)
		if err != nil {
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Invalidation could not be queued", err)
			return
		}
		respondSuccess(w, r, http.StatusAccepted, models.CacheClearData{
			UserID:   userID,
			Accepted: true,
			EventID:  eventID,
		}, models.Metadata{})
		return
	}

	removed, err := h.models.ClearUserCache(r.Context(), userID)
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Cache could not be cleared", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, models.CacheClearData{
		UserID:   userID,
		Accepted: true,
		Removed:  removed,
	}, models.Metadata{})
}
