// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

/*
Package supervisor provides process supervision for the triage server
using suture v4.

# Overview

	RootSupervisor ("signintriage")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── ControlSupervisor ("control-layer")
	    └── ConfigWatchService (only when a config file is in use)

A crashed service is restarted with suture's backoff. The layers count
failures independently, so a config watcher stuck on a bad file never
restarts the HTTP listener.

# Logging

Supervisor events (service start, failure, backoff) are logged through
sutureslog. The server passes logging.NewSlogLogger(), which routes the
slog records into the zerolog global logger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# See Also

  - internal/supervisor/services: service wrappers
  - github.com/thejerf/suture/v4
*/
package supervisor
