// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

/*
Package services provides suture.Service wrappers for the triage server.

Each wrapper translates a component's lifecycle into suture's
context-aware Serve pattern and implements fmt.Stringer so supervisor
logs name the service.

# Available Services

HTTPServerService:
  - Runs ListenAndServe in a goroutine
  - Shuts down with a bounded timeout on cancellation
  - Optional drain hook (WithDrain) runs after shutdown, used to wait for
    batch notifications still in flight

ConfigWatchService:
  - Watches the YAML config file through koanf's file provider
  - Calls the reload callback on every change
  - Unwatches when the supervisor stops it

# Example

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second,
	    services.WithDrain(handler.WaitNotifications)))

	if path := config.ConfigFilePath(); path != "" {
	    tree.AddControlService(services.NewConfigWatchService(
	        config.NewConfigWatcher(path), reloadLogLevel))
	}
*/
package services
