// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the server's long-lived services under suture v4.

	RootSupervisor ("reelmatch")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── JanitorService (TMDB cache TTL sweep)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff; a failure in one layer
does not restart the other. Supervisor events are logged through sutureslog
into the zerolog-backed slog handler from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddMaintenanceService(services.NewJanitorService(tmdbClient, time.Hour))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}
*/
package supervisor
