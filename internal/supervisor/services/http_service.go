// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer matches the lifecycle methods of *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server as a supervised service.
//
// ListenAndServe runs in a goroutine. When the context is canceled the
// server is shut down with shutdownTimeout, then the drain hook (if any)
// runs so in-flight notifications finish before Serve returns.
//
//	server := &http.Server{Addr: ":8790", Handler: router}
//	svc := services.NewHTTPServerService(server, 10*time.Second,
//	    services.WithDrain(handler.WaitNotifications))
//	tree.AddAPIService(svc)
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	drain           func()
	name            string
}

// HTTPServerOption customizes an HTTPServerService.
type HTTPServerOption func(*HTTPServerService)

// WithDrain registers fn to run after the server has shut down.
func WithDrain(fn func()) HTTPServerOption {
	return func(h *HTTPServerService) {
		h.drain = fn
	}
}

// NewHTTPServerService creates a new HTTP server service wrapper.
// A non-positive shutdownTimeout defaults to 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration, opts ...HTTPServerOption) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	h := &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve implements suture.Service.
//
// It returns an error if the listener fails, and ctx.Err() after a
// graceful shutdown. http.ErrServerClosed is not treated as a failure.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// ctx is already canceled; shutdown needs its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh

		if h.drain != nil {
			h.drain()
		}
		return ctx.Err()
	}
}

// String identifies the service in supervisor logs.
func (h *HTTPServerService) String() string {
	return h.name
}
