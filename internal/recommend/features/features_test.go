// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package features

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend"
	"github.com/tomtom215/hybridrec/internal/worker"
)

func sampleProduct(t *testing.T, ds *dataset.Dataset, id int) *dataset.Product {
	t.Helper()
	p, ok := ds.Product(id)
	if !ok {
		t.Fatalf("product %d missing from sample", id)
	}
	return &p
}

func TestVocabulary_Sample(t *testing.T) {
	t.Parallel()
	ds := dataset.Sample()
	v := NewVocabulary(ds.Products())

	if len(v.Tags) != 15 || len(v.Categories) != 5 {
		t.Fatalf("vocabulary = %d tags, %d categories, want 15/5", len(v.Tags), len(v.Categories))
	}
	if v.Dim() != 20 {
		t.Fatalf("Dim() = %d, want 20", v.Dim())
	}
	if v.Tags[0] != "Bluetooth" || v.Categories[0] != "Accessories" {
		t.Errorf("vocabularies not sorted: %v / %v", v.Tags, v.Categories)
	}

	for _, p := range ds.Products() {
		vec, err := v.Vectorize(&p)
		if err != nil {
			t.Fatalf("Vectorize(%d): %v", p.ID, err)
		}
		if len(vec) != v.Dim() {
			t.Errorf("product %d vector length = %d, want %d", p.ID, len(vec), v.Dim())
		}
		var tagOnes, catOnes float64
		for i, x := range vec {
			if i < len(v.Tags) {
				tagOnes += x
			} else {
				catOnes += x
			}
		}
		if catOnes != 1 {
			t.Errorf("product %d has %v ones in category segment, want 1", p.ID, catOnes)
		}
		if int(tagOnes) != len(p.Tags) {
			t.Errorf("product %d has %v ones in tag segment, want %d", p.ID, tagOnes, len(p.Tags))
		}
	}

	vec, _ := v.Vectorize(sampleProduct(t, ds, 101))
	// Bluetooth=0, audio=1, wireless=12, Electronics=15+1
	for _, i := range []int{0, 1, 12, 16} {
		if vec[i] != 1 {
			t.Errorf("vector[101][%d] = %v, want 1", i, vec[i])
		}
	}
}

func TestVocabulary_RejectsForeignValues(t *testing.T) {
	t.Parallel()
	v := NewVocabulary(dataset.Sample().Products())

	tests := []struct {
		name  string
		p     dataset.Product
		field string
	}{
		{"unknown category", dataset.Product{ID: 106, Category: "Garden", Tags: []string{"audio"}}, "category"},
		{"unknown tag", dataset.Product{ID: 107, Category: "Fitness", Tags: []string{"yoga", "kettlebell"}}, "tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := v.Vectorize(&tt.p)
			if !errors.Is(err, recommend.ErrInvalidEntity) {
				t.Fatalf("Vectorize() error = %v, want ErrInvalidEntity", err)
			}
			var iee *recommend.InvalidEntityError
			if !errors.As(err, &iee) || iee.Field != tt.field || iee.ID != tt.p.ID {
				t.Errorf("error detail = %+v", iee)
			}
		})
	}
}

func TestVectorizer_Cache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ds := dataset.Sample()
	v := NewVocabulary(ds.Products())
	store := cache.NewMemoryStore(0)
	vz := NewVectorizer(v, store, time.Hour, zerolog.Nop())
	p := sampleProduct(t, ds, 102)

	vec, err := vz.Vector(ctx, p)
	if err != nil {
		t.Fatalf("Vector: %v", err)
	}
	raw, err := store.Get(ctx, recommend.ProductFeatureKey(102))
	if err != nil {
		t.Fatalf("vector not cached: %v", err)
	}
	var stored []float64
	if err := json.Unmarshal(raw, &stored); err != nil || len(stored) != len(vec) {
		t.Fatalf("cached payload = %s (%v)", raw, err)
	}

	// a cached vector of the right length is trusted as-is
	marker := make([]float64, v.Dim())
	marker[0] = 42
	_ = cache.SetJSON(ctx, store, recommend.ProductFeatureKey(102), marker, time.Hour)
	got, _ := vz.Vector(ctx, p)
	if got[0] != 42 {
		t.Errorf("cache hit ignored: got[0] = %v", got[0])
	}

	// a cached vector of the wrong length is recomputed
	_ = cache.SetJSON(ctx, store, recommend.ProductFeatureKey(102), []float64{1, 2}, time.Hour)
	got, _ = vz.Vector(ctx, p)
	if len(got) != v.Dim() {
		t.Errorf("wrong-length cache entry used: len = %d", len(got))
	}
}

func TestVectorizeAll_DropsInvalidProducts(t *testing.T) {
	t.Parallel()
	ds := dataset.Sample()
	v := NewVocabulary(ds.Products())
	vz := NewVectorizer(v, nil, time.Hour, zerolog.Nop())

	products := append([]dataset.Product(nil), ds.Products()...)
	products = append(products, dataset.Product{ID: 106, Name: "Hose", Category: "Garden"})

	pool, _ := worker.New(worker.Config{Mode: worker.Parallel, Workers: 3}, zerolog.Nop())
	vectors := vz.VectorizeAll(context.Background(), pool, products)

	if len(vectors) != 5 {
		t.Fatalf("VectorizeAll returned %d vectors, want 5", len(vectors))
	}
	if _, ok := vectors[106]; ok {
		t.Error("invalid product 106 present in result")
	}
}

func TestProfiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ds := dataset.Sample()
	v := NewVocabulary(ds.Products())
	vectors := NewVectorizer(v, nil, time.Hour, zerolog.Nop()).VectorizeAll(ctx, worker.NewSequential(), ds.Products())

	store := cache.NewMemoryStore(0)
	b := NewProfileBuilder(v.Dim(), store, time.Hour, zerolog.Nop())
	profiles := b.BuildAll(ctx, worker.NewSequential(), ds.UserIDs(), ds, vectors)

	if len(profiles) != 5 {
		t.Fatalf("BuildAll returned %d profiles", len(profiles))
	}

	// user 1 browsed 101 and 103: every set component is 0.5
	p1 := profiles[1]
	want := Mean(v.Dim(), []int{101, 103}, vectors)
	for i := range p1 {
		if p1[i] != want[i] {
			t.Fatalf("profile[1][%d] = %v, want %v", i, p1[i], want[i])
		}
		if p1[i] != 0 && p1[i] != 0.5 {
			t.Errorf("profile[1][%d] = %v, want 0 or 0.5", i, p1[i])
		}
	}

	for _, uid := range []int{5, 999} {
		prof := b.Profile(ctx, uid, ds, vectors)
		if len(prof) != v.Dim() {
			t.Fatalf("profile[%d] length = %d", uid, len(prof))
		}
		for i, x := range prof {
			if x != 0 {
				t.Errorf("profile[%d][%d] = %v, want zero vector", uid, i, x)
			}
		}
	}

	if _, err := store.Get(ctx, recommend.UserProfileKey(3)); err != nil {
		t.Errorf("profile for user 3 not cached: %v", err)
	}
}

func TestMean_SkipsMissingVectors(t *testing.T) {
	t.Parallel()
	vectors := map[int][]float64{1: {1, 0}, 2: {0, 1}}
	got := Mean(2, []int{1, 2, 3}, vectors)
	if got[0] != 0.5 || got[1] != 0.5 {
		t.Errorf("Mean() = %v, want [0.5 0.5]", got)
	}
}
