// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// Catalog is the read-only view of the dataset that signals need.
type Catalog interface {
	Products() []dataset.Product
	User(id int) (dataset.User, bool)
	UserIndex(id int) (int, bool)
	HasPurchased(userID, productID int) bool
	Contexts() []dataset.ContextSignal
}

// baseSignal carries the source name shared by every signal.
type baseSignal struct {
	source recommend.Source
}

// Source implements recommend.Signal.
func (b *baseSignal) Source() recommend.Source {
	return b.source
}

// scored pairs a product with a score.
type scored struct {
	id    int
	score float64
}

// rankDescending sorts by score, highest first, keeping input order on ties.
func rankDescending(items []scored) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})
}

// unpurchased returns ids the user has not bought, preserving order, stopping
// once limit ids are collected. A negative limit means no limit.
func unpurchased(c Catalog, userID int, ids []int, limit int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if limit >= 0 && len(out) == limit {
			break
		}
		if c.HasPurchased(userID, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// cosineDistance is 1 − cos(a, b). A zero vector is maximally distant.
func cosineDistance(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - floats.Dot(a, b)/(normA*normB)
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Ensure all signals implement the interface.
var (
	_ recommend.Signal = (*LatentSignal)(nil)
	_ recommend.Signal = (*ContentSignal)(nil)
	_ recommend.Signal = (*PopularSignal)(nil)
	_ recommend.Signal = (*ContextSignal)(nil)
	_ recommend.Signal = (*DeviceSignal)(nil)

	_ Catalog = (*dataset.Dataset)(nil)
)
