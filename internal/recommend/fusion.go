// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"sort"
	"strings"
)

type fusedItem struct {
	productID int
	score     float64
	sources   []Source
}

// Fuse merges ranked lists into one explained ranking.
//
// Lists are visited in FusionOrder. The i-th of L entries adds
// weight × (1 − i/L) to its product. Products for which exclude returns
// true are skipped without shifting the positions of the others. Equal
// scores keep first-seen order.
func Fuse(lists map[Source][]int, w SignalWeights, topN int, exclude func(productID int) bool) []Recommendation {
	var items []*fusedItem
	index := make(map[int]*fusedItem)

	for _, s := range FusionOrder {
		ids := lists[s]
		if len(ids) == 0 {
			continue
		}
		weight := w.For(s)
		l := float64(len(ids))

		for i, id := range ids {
			if exclude != nil && exclude(id) {
				continue
			}
			item, ok := index[id]
			if !ok {
				item = &fusedItem{productID: id}
				index[id] = item
				items = append(items, item)
			}
			item.score += weight * (1 - float64(i)/l)
			if n := len(item.sources); n == 0 || item.sources[n-1] != s {
				item.sources = append(item.sources, s)
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})
	if len(items) > topN {
		items = items[:topN]
	}

	recs := make([]Recommendation, len(items))
	for i, item := range items {
		reasons := make([]string, len(item.sources))
		for j, s := range item.sources {
			reasons[j] = s.Explanation()
		}
		recs[i] = Recommendation{ProductID: item.productID, Explanation: strings.Join(reasons, ", ")}
	}
	return recs
}
