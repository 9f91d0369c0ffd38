// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// ContextSignal recommends products in categories that peak on the current
// weekday during one of the active seasons.
type ContextSignal struct {
	baseSignal
	catalog Catalog
}

// NewContextSignal creates the time_based signal.
func NewContextSignal(c Catalog) *ContextSignal {
	return &ContextSignal{
		baseSignal: baseSignal{source: recommend.SourceTime},
		catalog:    c,
	}
}

// Recommend implements recommend.Signal. Results are neither filtered by
// purchase history nor truncated.
func (s *ContextSignal) Recommend(q recommend.Query) []int {
	day := q.Now.Weekday()
	active := make(map[string]bool)
	for _, c := range s.catalog.Contexts() {
		if c.PeaksOn(day) && q.HasSeason(c.Season) {
			active[c.Category] = true
		}
	}
	if len(active) == 0 {
		return nil
	}

	var ids []int
	for _, p := range s.catalog.Products() {
		if active[p.Category] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
