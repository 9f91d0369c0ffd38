// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"sort"

	"github.com/tomtom215/hybridrec/internal/recommend"
)

// ContentSignal recommends the nearest products to the user's profile by
// cosine distance.
type ContentSignal struct {
	baseSignal
	catalog  Catalog
	ids      []int
	vectors  [][]float64
	profiles map[int][]float64
}

// NewContentSignal creates the cbf signal over the products that have a
// feature vector, in catalog order.
func NewContentSignal(vectors, profiles map[int][]float64, c Catalog) *ContentSignal {
	s := &ContentSignal{
		baseSignal: baseSignal{source: recommend.SourceCBF},
		catalog:    c,
		profiles:   profiles,
	}
	for _, p := range c.Products() {
		if v, ok := vectors[p.ID]; ok {
			s.ids = append(s.ids, p.ID)
			s.vectors = append(s.vectors, v)
		}
	}
	return s
}

// Recommend implements recommend.Signal. The min(TopN, catalog) nearest
// products are retrieved first and purchases removed afterwards.
func (s *ContentSignal) Recommend(q recommend.Query) []int {
	profile, ok := s.profiles[q.UserID]
	if !ok || len(s.ids) == 0 || q.TopN <= 0 {
		return nil
	}

	type neighbour struct {
		id   int
		dist float64
	}
	all := make([]neighbour, len(s.ids))
	for i, id := range s.ids {
		all[i] = neighbour{id: id, dist: cosineDistance(profile, s.vectors[i])}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].dist < all[j].dist
	})

	n := min(q.TopN, len(all))
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		ids[i] = all[i].id
	}
	return unpurchased(s.catalog, q.UserID, ids, -1)
}
