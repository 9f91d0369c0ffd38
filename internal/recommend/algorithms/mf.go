// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/hybridrec/internal/recommend"
)

// LatentSignal scores products by the dot product of item and user factors.
type LatentSignal struct {
	baseSignal
	factors *Factors
	catalog Catalog
}

// NewLatentSignal creates the mf signal. Factor rows follow catalog user
// order and item rows follow catalog product order.
func NewLatentSignal(f *Factors, c Catalog) *LatentSignal {
	return &LatentSignal{
		baseSignal: baseSignal{source: recommend.SourceMF},
		factors:    f,
		catalog:    c,
	}
}

// Recommend implements recommend.Signal.
func (s *LatentSignal) Recommend(q recommend.Query) []int {
	if s.factors == nil {
		return nil
	}
	row, ok := s.catalog.UserIndex(q.UserID)
	if !ok {
		return nil
	}
	userVec := mat.Row(nil, row, s.factors.Users)
	if isZero(userVec) {
		return nil
	}

	products := s.catalog.Products()
	itemRows, _ := s.factors.Items.Dims()
	items := make([]scored, 0, len(products))
	itemVec := make([]float64, len(userVec))
	for j := range products {
		if j >= itemRows {
			break
		}
		mat.Row(itemVec, j, s.factors.Items)
		items = append(items, scored{id: products[j].ID, score: floats.Dot(itemVec, userVec)})
	}
	rankDescending(items)

	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.id
	}
	return unpurchased(s.catalog, q.UserID, ids, q.TopN)
}
