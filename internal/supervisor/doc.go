// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

/*
Package supervisor runs Habitline's long-lived components under a
thejerf/suture/v4 tree.

	habitline (root)
	├── data-layer       MediaGCService
	├── messaging-layer  eventprocessor.ActivityConsumer
	└── api-layer        HTTPServerService

Each layer is its own supervisor, so a consumer that keeps failing backs
off without stopping the HTTP server. Supervisor events (restarts,
backoff, timeouts) are logged through sutureslog into the zerolog stream.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewMediaGCService(media, cfg.Media.GCInterval))
	tree.AddMessagingService(consumer)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
