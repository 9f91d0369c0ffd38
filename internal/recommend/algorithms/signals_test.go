// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"math"
	"reflect"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// sunday and monday fall in the same week of the sample data.
var (
	sunday = time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	monday = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
)

func query(userID, topN int, now time.Time, seasons ...string) recommend.Query {
	return recommend.Query{UserID: userID, Seasons: seasons, TopN: topN, Now: now}
}

func TestComputePopularity_Sample(t *testing.T) {
	t.Parallel()
	ds := dataset.Sample()

	got := ComputePopularity(ds.Products(), ds.Purchases(), DefaultPopularityWeights())

	want := []Scored{
		{ProductID: 101, Score: 1},
		{ProductID: 103, Score: 3.59 / 3.75},
		{ProductID: 105, Score: 3.52 / 3.75},
	}
	if len(got) != len(want) {
		t.Fatalf("ComputePopularity() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].ProductID != want[i].ProductID {
			t.Errorf("rank %d = product %d, want %d", i, got[i].ProductID, want[i].ProductID)
		}
		if math.Abs(got[i].Score-want[i].Score) > 1e-9 {
			t.Errorf("product %d score = %v, want %v", got[i].ProductID, got[i].Score, want[i].Score)
		}
	}
}

func TestComputePopularity_EdgeCases(t *testing.T) {
	t.Parallel()

	products := []dataset.Product{
		{ID: 1, Rating: 0},
		{ID: 2, Rating: 0},
		{ID: 3, Rating: 5},
	}

	tests := []struct {
		name      string
		purchases []dataset.Purchase
		want      []Scored
	}{
		{name: "no purchases", purchases: nil, want: []Scored{}},
		{
			name:      "unknown product ignored",
			purchases: []dataset.Purchase{{UserID: 1, ProductID: 99}, {UserID: 1, ProductID: 3}},
			want:      []Scored{{ProductID: 3, Score: 1}},
		},
		{
			name: "ties keep first purchase order",
			purchases: []dataset.Purchase{
				{UserID: 1, ProductID: 2},
				{UserID: 2, ProductID: 1},
			},
			want: []Scored{{ProductID: 2, Score: 1}, {ProductID: 1, Score: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComputePopularity(products, tt.purchases, DefaultPopularityWeights())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputePopularity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPopularSignal(t *testing.T) {
	t.Parallel()
	ds := dataset.Sample()
	s := NewPopularSignal(ComputePopularity(ds.Products(), ds.Purchases(), DefaultPopularityWeights()), ds)

	if s.Source() != recommend.SourcePopular {
		t.Errorf("Source() = %q", s.Source())
	}

	tests := []struct {
		name string
		q    recommend.Query
		want []int
	}{
		{name: "purchases removed", q: query(1, 5, sunday), want: []int{103, 105}},
		{name: "unknown user sees full ranking", q: query(999, 5, sunday), want: []int{101, 103, 105}},
		{name: "truncated", q: query(999, 2, sunday), want: []int{101, 103}},
		{name: "zero topN", q: query(999, 0, sunday), want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Recommend(tt.q); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextSignal(t *testing.T) {
	t.Parallel()
	ds := dataset.Sample()
	s := NewContextSignal(ds)

	tests := []struct {
		name string
		q    recommend.Query
		want []int
	}{
		{name: "sunday all year", q: query(1, 5, sunday, "All Year", "Summer"), want: []int{104}},
		{name: "monday summer", q: query(1, 5, monday, "Summer"), want: []int{103}},
		{name: "season inactive", q: query(1, 5, sunday, "Summer"), want: nil},
		{name: "no seasons", q: query(1, 5, sunday), want: nil},
		{name: "not truncated and unknown user", q: query(999, 0, sunday, "All Year"), want: []int{104}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Recommend(tt.q); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeviceSignal(t *testing.T) {
	t.Parallel()
	ds := dataset.Sample()
	s := NewDeviceSignal(ds)

	tests := []struct {
		name string
		q    recommend.Query
		want []int
	}{
		{name: "mobile user", q: query(1, 5, sunday), want: []int{102, 104}},
		{name: "mobile user truncated", q: query(1, 1, sunday), want: []int{102}},
		{name: "desktop user owns the only match", q: query(2, 5, sunday), want: []int{}},
		{name: "unknown user", q: query(999, 5, sunday), want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Recommend(tt.q); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentSignal(t *testing.T) {
	t.Parallel()
	ds := dataset.Sample()

	vectors := map[int][]float64{
		101: {1, 0},
		102: {0.9, 0.1},
		103: {0, 1},
		105: {0.5, 0.5},
	}
	profiles := map[int][]float64{
		1: {1, 0},
		2: {0, 0},
	}
	s := NewContentSignal(vectors, profiles, ds)

	tests := []struct {
		name string
		q    recommend.Query
		want []int
	}{
		// 101 is among the three nearest but already purchased.
		{name: "filtered after retrieval", q: query(1, 3, sunday), want: []int{102, 105}},
		{name: "topN above catalog", q: query(1, 10, sunday), want: []int{102, 105, 103}},
		{name: "zero profile keeps catalog order", q: query(2, 2, sunday), want: []int{101, 102}},
		{name: "no profile", q: query(999, 5, sunday), want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Recommend(tt.q); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLatentSignal(t *testing.T) {
	t.Parallel()
	ds := dataset.Sample()

	// Users 1 and 3 have signal; user 2 has an all-zero row.
	f := &Factors{
		Users: mat.NewDense(5, 1, []float64{1, 0, 2, 0, 0}),
		Items: mat.NewDense(5, 1, []float64{0.1, 0.5, 0.3, 0.5, 0.2}),
		Rank:  1,
	}
	s := NewLatentSignal(f, ds)

	tests := []struct {
		name string
		q    recommend.Query
		want []int
	}{
		{name: "ties keep catalog order", q: query(1, 5, sunday), want: []int{102, 104, 103, 105}},
		{name: "truncated", q: query(1, 2, sunday), want: []int{102, 104}},
		{name: "own purchase removed", q: query(3, 3, sunday), want: []int{102, 104, 105}},
		{name: "zero user row", q: query(2, 5, sunday), want: nil},
		{name: "unknown user", q: query(999, 5, sunday), want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Recommend(tt.q); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 2}, b: []float64{2, 4}, want: 0},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 1},
		{name: "opposite", a: []float64{1, 0}, b: []float64{-1, 0}, want: 2},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 0}, want: 1},
		{name: "length mismatch", a: []float64{1}, b: []float64{1, 0}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cosineDistance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("cosineDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}
