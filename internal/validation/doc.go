// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide (it caches struct
// metadata) and carries the custom tags the engine's records need:
//
//   - weekday: an English day name, case-insensitive ("Friday", "monday")
//   - timestamp: a "2006-01-02 15:04:05" local timestamp
//   - season: a non-blank season label without commas, since labels are
//     comma-joined into cache keys
//
// Failures are returned as *RequestValidationError, which the API layer
// converts into a VALIDATION_ERROR response:
//
//	if err := validation.ValidateStruct(&q); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
