// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// PopularSignal serves the global popularity ranking.
type PopularSignal struct {
	baseSignal
	catalog Catalog
	ranking []int
}

// NewPopularSignal creates the popular signal from a ComputePopularity result.
func NewPopularSignal(ranking []Scored, c Catalog) *PopularSignal {
	ids := make([]int, len(ranking))
	for i, r := range ranking {
		ids[i] = r.ProductID
	}
	return &PopularSignal{
		baseSignal: baseSignal{source: recommend.SourcePopular},
		catalog:    c,
		ranking:    ids,
	}
}

// Recommend implements recommend.Signal.
func (s *PopularSignal) Recommend(q recommend.Query) []int {
	return unpurchased(s.catalog, q.UserID, s.ranking, max(q.TopN, 0))
}
