// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package dataset holds the read-only catalog the engine learns from: users,
// products, browsing and purchase events, and per-category context signals.
//
// Entities are kept in enumeration order. That order is significant: it
// defines row and column positions in the user-item matrix, the order
// signals traverse the catalog, and therefore every tie-break downstream.
//
// A Dataset is built from a File (the on-disk JSON or YAML shape) by New,
// which validates every record and checks that events reference known
// users and products. Sample returns the built-in demonstration catalog.
package dataset
