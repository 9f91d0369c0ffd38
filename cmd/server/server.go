// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/hybridrec/internal/api"
	"github.com/tomtom215/hybridrec/internal/events"
	"github.com/tomtom215/hybridrec/internal/logging"
	"github.com/tomtom215/hybridrec/internal/recommend/pipeline"
	"github.com/tomtom215/hybridrec/internal/supervisor"
	"github.com/tomtom215/hybridrec/internal/supervisor/services"
)

// eventBuffer sizes the invalidation subscriber channel.
const eventBuffer = 64

// serverComponents are the parts of server mode that tests inspect.
type serverComponents struct {
	holder *pipeline.Holder
	bus    *events.Bus
	tree   *supervisor.SupervisorTree
	http   *http.Server
}

// runServer builds the first model and serves until ctx is canceled.
func runServer(ctx context.Context, a *app) error {
	sc, err := newServerComponents(ctx, a)
	if err != nil {
		return err
	}
	defer func() {
		if err := sc.bus.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	go forwardReloads(ctx, a, sc.bus)

	a.logger.Info().Str("addr", sc.http.Addr).Msg("Supervisor tree starting")
	err = sc.tree.Serve(ctx)
	if report, rerr := sc.tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		a.logger.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Info().Msg("Server stopped")
	return nil
}

func newServerComponents(ctx context.Context, a *app) (*serverComponents, error) {
	holder := pipeline.NewHolder(a.buildFunc(), a.store, a.logger)

	// A failed first build leaves /healthz reporting "starting" and the
	// refresh service retries at startup.
	_, initialErr := holder.Refresh(ctx, false)

	bus := events.NewBus(eventBuffer, a.logger)

	handler := api.NewHandler(holder, bus, a.store, api.HandlerConfig{
		DefaultSeasons: a.cfg.Batch.Seasons,
	})
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(&a.cfg.Server))
	router := api.NewRouter(handler, mw)

	srv := &http.Server{
		Addr:              net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       a.cfg.Server.Timeout,
		WriteTimeout:      a.cfg.Server.Timeout,
		IdleTimeout:       2 * a.cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		_ = bus.Close()
		return nil, err
	}

	tree.AddModelService(services.NewRefreshService(holder, services.RefreshServiceConfig{
		Interval:  a.cfg.Server.RefreshInterval,
		OnStartup: initialErr != nil,
	}, a.logger))
	tree.AddEventService(services.NewInvalidationService(bus, holder, a.logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, a.cfg.Server.ShutdownTimeout))

	return &serverComponents{holder: holder, bus: bus, tree: tree, http: srv}, nil
}

// forwardReloads turns SIGHUP into model refresh events. The rebuild
// reloads the dataset file and purges derived keys itself when the
// fingerprint changed.
func forwardReloads(ctx context.Context, a *app, bus *events.Bus) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			id, err := bus.PublishModelRefresh(ctx, false)
			if err != nil {
				a.logger.Warn().Err(err).Msg("SIGHUP refresh not published")
				continue
			}
			a.logger.Info().Str("event_id", id).Msg("SIGHUP received, model refresh requested")
		}
	}
}
