// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"reflect"
	"testing"
)

func ids(recs []Recommendation) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.ProductID
	}
	return out
}

func TestFuse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lists   map[Source][]int
		weights SignalWeights
		topN    int
		exclude map[int]bool
		want    []int
	}{
		{
			name: "positional decay accumulates across signals",
			lists: map[Source][]int{
				SourceMF:      {1, 2},
				SourcePopular: {2, 3},
			},
			weights: SignalWeights{MF: 0.5, Popular: 0.3},
			topN:    5,
			// 1: 0.5, 2: 0.25+0.3=0.55, 3: 0.15
			want: []int{2, 1, 3},
		},
		{
			name: "equal scores keep first-seen order",
			lists: map[Source][]int{
				SourceDevice: {7},
				SourceMF:     {4},
			},
			weights: SignalWeights{MF: 0.2, Device: 0.2},
			topN:    5,
			want:    []int{4, 7},
		},
		{
			name: "excluded products keep the positions of the rest",
			lists: map[Source][]int{
				SourceTime: {9, 1, 2},
				SourceMF:   {2},
			},
			weights: SignalWeights{MF: 0.5, Time: 0.9},
			topN:    5,
			exclude: map[int]bool{9: true},
			// 1: 0.9*(2/3)=0.6, 2: 0.5+0.9*(1/3)=0.8
			want: []int{2, 1},
		},
		{
			name: "truncates to topN",
			lists: map[Source][]int{
				SourcePopular: {1, 2, 3, 4},
			},
			weights: SignalWeights{Popular: 1},
			topN:    2,
			want:    []int{1, 2},
		},
		{
			name:    "no lists",
			lists:   map[Source][]int{},
			weights: SignalWeights{Popular: 1},
			topN:    5,
			want:    []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Fuse(tt.lists, tt.weights, tt.topN, func(id int) bool { return tt.exclude[id] })
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Fuse() ids = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestFuse_Explanations(t *testing.T) {
	t.Parallel()

	lists := map[Source][]int{
		SourceDevice:  {102},
		SourcePopular: {102},
		SourceCBF:     {104},
	}
	got := Fuse(lists, DefaultConfig().Weights.Returning, 5, nil)

	want := []Recommendation{
		{ProductID: 102, Explanation: SourcePopular.Explanation() + ", " + SourceDevice.Explanation()},
		{ProductID: 104, Explanation: "Recommended because it matches your interests."},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fuse() = %+v, want %+v", got, want)
	}
}

func TestSourceExplanation(t *testing.T) {
	t.Parallel()
	want := map[Source]string{
		SourceMF:      "Recommended because users similar to you purchased this.",
		SourceCBF:     "Recommended because it matches your interests.",
		SourcePopular: "Recommended because it's popular among other users.",
		SourceTime:    "Recommended because it's trending this season.",
		SourceDevice:  "Recommended because it's suitable for your device.",
	}
	for s, text := range want {
		if got := s.Explanation(); got != text {
			t.Errorf("%s.Explanation() = %q, want %q", s, got, text)
		}
	}
}
