// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package features derives fixed-length numeric representations of products
// and users.
//
// A product vector is a one-hot tag segment followed by a one-hot category
// segment over vocabularies collected from the whole catalog. A user
// profile is the element-wise mean of the vectors of every product the user
// browsed or purchased, or the zero vector without history.
//
// Both are memoized in the cache under product_feature:{id} and
// user_profile:{id}. A cached vector of the wrong length is ignored.
package features
