// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package events carries cache invalidation and model refresh requests from
// the HTTP surface to the background services over an in-process watermill
// GoChannel.
//
// Delivery is best effort: events published while nobody is subscribed are
// dropped, and a handler failure is logged and acknowledged rather than
// redelivered.
package events
