// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"github.com/tomtom215/hybridrec/internal/dataset"
)

// PopularityWeights blend a product's rating with its purchase count.
type PopularityWeights struct {
	Rating    float64 `json:"rating"`
	Purchases float64 `json:"purchases"`
}

// DefaultPopularityWeights returns 0.7 × rating + 0.3 × purchases.
func DefaultPopularityWeights() PopularityWeights {
	return PopularityWeights{Rating: 0.7, Purchases: 0.3}
}

// Scored is one entry of the popularity ranking.
type Scored struct {
	ProductID int     `json:"product_id"`
	Score     float64 `json:"score"`
}

// ComputePopularity ranks every purchased product by
// (w.Rating × rating + w.Purchases × purchase records) / max, highest first. Products are
// visited in the order of their first purchase and ties keep that order.
// Purchases of unknown products are ignored.
func ComputePopularity(products []dataset.Product, purchases []dataset.Purchase, w PopularityWeights) []Scored {
	rating := make(map[int]float64, len(products))
	for i := range products {
		rating[products[i].ID] = products[i].Rating
	}

	counts := make(map[int]int)
	order := make([]int, 0)
	for _, p := range purchases {
		if _, ok := rating[p.ProductID]; !ok {
			continue
		}
		if counts[p.ProductID] == 0 {
			order = append(order, p.ProductID)
		}
		counts[p.ProductID]++
	}

	items := make([]scored, len(order))
	maxScore := 0.0
	for i, id := range order {
		s := w.Rating*rating[id] + w.Purchases*float64(counts[id])
		items[i] = scored{id: id, score: s}
		if i == 0 || s > maxScore {
			maxScore = s
		}
	}
	if maxScore > 0 {
		for i := range items {
			items[i].score /= maxScore
		}
	}
	rankDescending(items)

	out := make([]Scored, len(items))
	for i, it := range items {
		out[i] = Scored{ProductID: it.id, Score: it.score}
	}
	return out
}
