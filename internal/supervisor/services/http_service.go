// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/habitline/internal/logging"
)

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server under supervision and shuts it
// down gracefully when its context ends.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	addr            string
}

// NewHTTPServerService wraps server. shutdownTimeout bounds how long open
// connections get to finish; zero means 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	svc := &HTTPServerService{server: server, shutdownTimeout: shutdownTimeout}
	if s, ok := server.(*http.Server); ok {
		svc.addr = s.Addr
	}
	return svc
}

// Serve implements suture.Service. A listener failure is returned so the
// supervisor can retry; http.ErrServerClosed is not an error.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	log := logging.WithComponent("http-server")
	listenErr := make(chan error, 1)
	go func() {
		err := h.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		listenErr <- err
	}()
	log.Info().Str("addr", h.addr).Msg("HTTP server listening")

	select {
	case err := <-listenErr:
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "listen" {
			// Retrying cannot free the address; stop the whole process.
			return fmt.Errorf("http server cannot listen on %s: %w: %w", h.addr, suture.ErrTerminateSupervisorTree, err)
		}
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	if err := h.shutdown(ctx); err != nil {
		return err
	}
	<-listenErr
	log.Info().Msg("HTTP server stopped")
	return ctx.Err()
}

// shutdown drains open connections. ctx is already done, so the deadline
// hangs off a detached copy.
func (h *HTTPServerService) shutdown(ctx context.Context) error {
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.shutdownTimeout)
	defer cancel()
	if err := h.server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

// String implements fmt.Stringer.
func (h *HTTPServerService) String() string {
	return "http-server"
}
