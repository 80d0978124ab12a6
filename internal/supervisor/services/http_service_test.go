// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*HTTPServerService)(nil)

// fakeHTTPServer blocks in ListenAndServe until Shutdown, unless
// listenErr is set.
type fakeHTTPServer struct {
	listenErr   error
	shutdownErr error
	listening   chan struct{}
	stop        chan struct{}
	once        sync.Once
	shutdowns   atomic.Int32
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{listening: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	select {
	case f.listening <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	f.once.Do(func() { close(f.stop) })
	return f.shutdownErr
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	srv := newFakeHTTPServer()
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	select {
	case <-srv.listening:
	case <-time.After(time.Second):
		t.Fatal("ListenAndServe was not called")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if srv.shutdowns.Load() != 1 {
		t.Errorf("Shutdown called %d times, want 1", srv.shutdowns.Load())
	}
}

func TestHTTPServerService_ListenError(t *testing.T) {
	t.Parallel()

	srv := newFakeHTTPServer()
	srv.listenErr = errors.New("address already in use")
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, srv.listenErr) {
		t.Errorf("Serve = %v, want wrapped listen error", err)
	}
}

func TestHTTPServerService_BindFailureStopsTree(t *testing.T) {
	t.Parallel()

	srv := newFakeHTTPServer()
	srv.listenErr = &net.OpError{Op: "listen", Net: "tcp", Err: errors.New("address already in use")}
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Errorf("Serve = %v, want suture.ErrTerminateSupervisorTree", err)
	}
	if !errors.Is(err, srv.listenErr) {
		t.Errorf("Serve = %v, want the listen error wrapped", err)
	}
}

func TestHTTPServerService_ShutdownError(t *testing.T) {
	t.Parallel()

	srv := newFakeHTTPServer()
	srv.shutdownErr = errors.New("connections did not drain")
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()
	<-srv.listening
	cancel()

	if err := <-done; !errors.Is(err, srv.shutdownErr) {
		t.Errorf("Serve = %v, want wrapped shutdown error", err)
	}
}

func TestHTTPServerService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewHTTPServerService(&http.Server{Addr: "127.0.0.1:0"}, 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s", svc.shutdownTimeout)
	}
	if svc.addr != "127.0.0.1:0" {
		t.Errorf("addr = %q", svc.addr)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}
