// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/config"
	"github.com/tomtom215/hybridrec/internal/worker"
)

func sunday() time.Time {
	return time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
}

func testApp(t *testing.T) *app {
	t.Helper()
	cfg := config.Defaults()
	cfg.Worker.Mode = string(worker.Sequential)

	a, err := newApp(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	a.opts.Clock = sunday
	t.Cleanup(a.Close)
	return a
}

func TestNewApp(t *testing.T) {
	a := testApp(t)
	if a.store.Name() != "memory" {
		t.Errorf("cache backend = %q, want memory", a.store.Name())
	}
	if a.pool.Mode() != worker.Sequential {
		t.Errorf("pool mode = %q, want sequential", a.pool.Mode())
	}
	if a.opts.Rank != 2 || a.opts.Engine.TopN != 5 {
		t.Errorf("options = rank %d / top_n %d, want 2 / 5", a.opts.Rank, a.opts.Engine.TopN)
	}

	ds, err := a.loadDataset()
	if err != nil {
		t.Fatalf("loadDataset() error = %v", err)
	}
	if users, products := ds.Len(); users != 5 || products != 5 {
		t.Errorf("sample = %d users / %d products, want 5 / 5", users, products)
	}
}

func TestNewApp_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown cache backend", func(c *config.Config) { c.Cache.Backend = "memcached" }},
		{"unknown worker mode", func(c *config.Config) { c.Worker.Mode = "threads" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(cfg)
			if _, err := newApp(context.Background(), cfg, zerolog.Nop()); err == nil {
				t.Error("newApp() error = nil, want error")
			}
		})
	}
}

func TestLoadDataset_MissingFile(t *testing.T) {
	a := testApp(t)
	a.cfg.Dataset.Path = t.TempDir() + "/missing.yaml"
	if _, err := a.loadDataset(); err == nil {
		t.Error("loadDataset() error = nil, want error for missing file")
	}
}

func TestRunBatch_Output(t *testing.T) {
	a := testApp(t)

	var out bytes.Buffer
	if err := runBatch(context.Background(), a, &out); err != nil {
		t.Fatalf("runBatch() error = %v", err)
	}
	text := out.String()

	headers := []string{
		"Recommendations for User 1 (Alice):",
		"Recommendations for User 2 (Bob):",
		"Recommendations for User 3 (Charlie):",
		"Recommendations for User 4 (Diana):",
		"Recommendations for User 5 (Mary):",
	}
	last := -1
	for _, h := range headers {
		i := strings.Index(text, h)
		if i < 0 {
			t.Fatalf("output missing %q:\n%s", h, text)
		}
		if i < last {
			t.Errorf("%q printed out of order", h)
		}
		last = i
	}

	blocks := strings.Split(strings.TrimRight(text, "\n"), "\n\n")
	if len(blocks) != len(headers) {
		t.Fatalf("got %d user blocks, want %d:\n%s", len(blocks), len(headers), text)
	}

	alice := blocks[0]
	if strings.Contains(alice, "Wireless Earbuds") {
		t.Error("Alice was recommended a product she already bought")
	}
	if !strings.Contains(alice, "  - Smartphone Case (Category: Accessories)") {
		t.Errorf("Alice block missing Smartphone Case:\n%s", alice)
	}

	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		entries := lines[1:]
		if len(entries)%2 != 0 {
			t.Fatalf("block has an unpaired line:\n%s", block)
		}
		if len(entries)/2 > 5 {
			t.Errorf("block has %d entries, want <= 5", len(entries)/2)
		}
		for i := 0; i < len(entries); i += 2 {
			if !strings.HasPrefix(entries[i], "  - ") || !strings.Contains(entries[i], "(Category: ") {
				t.Errorf("bad product line %q", entries[i])
			}
			if !strings.HasPrefix(entries[i+1], "    Explanation: ") {
				t.Errorf("bad explanation line %q", entries[i+1])
			}
		}
	}
}

func TestNewServerComponents(t *testing.T) {
	a := testApp(t)
	a.cfg.Server.Port = 0

	sc, err := newServerComponents(context.Background(), a)
	if err != nil {
		t.Fatalf("newServerComponents() error = %v", err)
	}
	t.Cleanup(func() { _ = sc.bus.Close() })

	if sc.holder.Current() == nil {
		t.Fatal("initial model not built")
	}
	if sc.http.Addr != "0.0.0.0:0" {
		t.Errorf("addr = %q", sc.http.Addr)
	}

	rec := httptest.NewRecorder()
	sc.http.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/1?seasons=All%20Year,Summer", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET recommendations status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"product_id":102`) {
		t.Errorf("body missing product 102: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	sc.http.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	a := testApp(t)
	a.cfg.Server.Host = "127.0.0.1"
	a.cfg.Server.Port = 0
	a.cfg.Server.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- runServer(ctx, a) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("runServer() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not stop")
	}
}
