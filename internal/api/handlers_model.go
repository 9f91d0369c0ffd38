// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/hybridrec/internal/models"
)

// RefreshModel handles POST /api/v1/model/refresh. purge=true deletes every
// derived cache entry before rebuilding.
func (h *Handler) RefreshModel(w http.ResponseWriter, r *http.Request) {
	purge := false
	if raw := r.URL.Query().Get("purge"); raw != "" {
		var err error
		if purge, err = strconv.ParseBool(raw); err != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "purge must be a boolean", nil)
			return
		}
	}

	m, err := h.models.Refresh(r.Context(), purge)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Model refresh failed", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.RefreshData{
		BuiltAt:    m.Stats.BuiltAt,
		DurationMS: m.Stats.Duration.Milliseconds(),
		Users:      m.Stats.Users,
		Products:   m.Stats.Products,
		Vectorized: m.Stats.Vectorized,
		Rank:       m.Stats.Rank,
		Purged:     purge,
	}, models.Metadata{QueryTimeMS: m.Stats.Duration.Milliseconds()})
}
