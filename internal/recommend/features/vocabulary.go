// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package features

import (
	"sort"

	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// Vocabulary fixes the layout of feature vectors.
type Vocabulary struct {
	Tags       []string
	Categories []string

	tagPos      map[string]int
	categoryPos map[string]int
}

// NewVocabulary collects the distinct tags and categories of a catalog,
// sorted so vectors are identical across runs.
func NewVocabulary(products []dataset.Product) *Vocabulary {
	tagSet := make(map[string]struct{})
	categorySet := make(map[string]struct{})
	for i := range products {
		for _, tag := range products[i].Tags {
			tagSet[tag] = struct{}{}
		}
		categorySet[products[i].Category] = struct{}{}
	}
	return newVocabulary(keys(tagSet), keys(categorySet))
}

func newVocabulary(tags, categories []string) *Vocabulary {
	v := &Vocabulary{
		Tags:        tags,
		Categories:  categories,
		tagPos:      make(map[string]int, len(tags)),
		categoryPos: make(map[string]int, len(categories)),
	}
	for i, t := range tags {
		v.tagPos[t] = i
	}
	for i, c := range categories {
		v.categoryPos[c] = i
	}
	return v
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Dim is the length of every feature vector.
func (v *Vocabulary) Dim() int {
	return len(v.Tags) + len(v.Categories)
}

// Vectorize builds the feature vector of p. A tag or category outside the
// vocabulary fails with *recommend.InvalidEntityError.
func (v *Vocabulary) Vectorize(p *dataset.Product) ([]float64, error) {
	vec := make([]float64, v.Dim())

	for _, tag := range p.Tags {
		i, ok := v.tagPos[tag]
		if !ok {
			return nil, &recommend.InvalidEntityError{Kind: "product", ID: p.ID, Field: "tag", Value: tag}
		}
		vec[i] = 1
	}

	c, ok := v.categoryPos[p.Category]
	if !ok {
		return nil, &recommend.InvalidEntityError{Kind: "product", ID: p.ID, Field: "category", Value: p.Category}
	}
	vec[len(v.Tags)+c] = 1

	return vec, nil
}
