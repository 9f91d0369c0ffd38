// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package services adapts server components to suture.Service: the HTTP
// server, the scheduled model refresh and the invalidation event consumer.
package services
