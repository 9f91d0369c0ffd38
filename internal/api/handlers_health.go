// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package api

import (
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/hybridrec/internal/models"
)

// Health handles GET /healthz.
//
// "healthy": model built and cache breaker closed. "degraded": model built
// but the cache is bypassed. "starting": no model yet, answered with 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	data := models.HealthData{
		Status: "healthy",
		Cache:  "none",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	}

	if h.cache != nil {
		data.Cache = h.cache.Name()
		state := h.cache.State()
		data.Breaker = state.String()
		if state != gobreaker.StateClosed {
			data.Status = "degraded"
		}
	}

	status := http.StatusOK
	if m := h.models.Current(); m != nil {
		data.ModelReady = true
		data.ModelBuilt = m.Stats.BuiltAt
	} else {
		data.Status = "starting"
		status = http.StatusServiceUnavailable
	}

	respondSuccess(w, r, status, data, models.Metadata{})
}
