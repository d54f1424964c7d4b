// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package services

import (
	"context"
	"fmt"

	"github.com/tomtom215/signintriage/internal/logging"
)

// FileWatcher matches the watch methods of koanf's file provider.
type FileWatcher interface {
	Watch(cb func(event interface{}, err error)) error
	Unwatch() error
}

// ConfigWatchService runs onChange each time the watched config file
// changes. Watch errors are logged and do not stop the service.
type ConfigWatchService struct {
	watcher  FileWatcher
	onChange func()
	name     string
}

// NewConfigWatchService creates a config watcher service.
func NewConfigWatchService(watcher FileWatcher, onChange func()) *ConfigWatchService {
	return &ConfigWatchService{
		watcher:  watcher,
		onChange: onChange,
		name:     "config-watcher",
	}
}

// Serve implements suture.Service.
func (c *ConfigWatchService) Serve(ctx context.Context) error {
	err := c.watcher.Watch(func(_ interface{}, err error) {
		if err != nil {
			logging.Warn().Err(err).Msg("Config watch error")
			return
		}
		c.onChange()
	})
	if err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}

	<-ctx.Done()

	if err := c.watcher.Unwatch(); err != nil {
		logging.Debug().Err(err).Msg("Config unwatch failed")
	}
	return ctx.Err()
}

// String identifies the service in supervisor logs.
func (c *ConfigWatchService) String() string {
	return c.name
}
