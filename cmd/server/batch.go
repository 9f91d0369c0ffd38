// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend"
	"github.com/tomtom215/hybridrec/internal/recommend/pipeline"
)

// runBatch builds the model once and prints every user's list to w.
func runBatch(ctx context.Context, a *app, w io.Writer) error {
	m, err := a.buildFunc()(ctx)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	return printAll(ctx, m, a.cfg.Batch.Seasons, a.cfg.Recommend.TopN, w)
}

// printAll generates lists for every user in catalog order. Users whose
// generation failed are skipped; the worker pool already logged them.
func printAll(ctx context.Context, m *pipeline.Model, seasons []string, topN int, w io.Writer) error {
	userIDs := m.Dataset.UserIDs()
	res := m.Engine.GenerateAll(ctx, userIDs, seasons, topN)

	bw := bufio.NewWriter(w)
	for _, id := range userIDs {
		recs, ok := res.Values[id]
		if !ok {
			continue
		}
		writeUser(bw, m.Dataset, id, recs)
	}
	return bw.Flush()
}

func writeUser(w io.Writer, ds *dataset.Dataset, userID int, recs []recommend.Recommendation) {
	u, _ := ds.User(userID)
	fmt.Fprintf(w, "Recommendations for User %d (%s):\n", userID, u.Name)
	for _, r := range recs {
		p, ok := ds.Product(r.ProductID)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  - %s (Category: %s)\n", p.Name, p.Category)
		fmt.Fprintf(w, "    Explanation: %s\n", r.Explanation)
	}
	fmt.Fprintln(w)
}
