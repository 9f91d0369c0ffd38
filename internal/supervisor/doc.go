// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package supervisor runs the long-lived parts of the recommendation server
under a suture v4 supervisor tree.

	hybridrec
	├── model-layer
	│   └── RefreshService (scheduled model rebuild)
	├── events-layer
	│   └── InvalidationService (cache and refresh events)
	└── api-layer
	    └── HTTPServerService

Each layer is its own child supervisor, so restarts stay local to the
layer that failed. Supervisor events are logged through sutureslog.

	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddModelService(services.NewRefreshService(holder, refreshCfg, logger))
	tree.AddEventService(services.NewInvalidationService(bus, holder, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	return tree.Serve(ctx)

The service wrappers live in the services subpackage.
*/
package supervisor
