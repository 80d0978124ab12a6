// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds supervisor tree configuration. Zero fields take the
// DefaultTreeConfig values.
type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay, in seconds.
	FailureDecay float64

	// FailureBackoff is how long to wait once the threshold is exceeded.
	FailureBackoff time.Duration

	// ShutdownTimeout bounds how long each service gets to stop.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's own defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

// Layer names a child supervisor of the root.
type Layer string

// Layers, in the order they are started.
const (
	LayerData      Layer = "data-layer"
	LayerMessaging Layer = "messaging-layer"
	LayerAPI       Layer = "api-layer"
)

var layerOrder = []Layer{LayerData, LayerMessaging, LayerAPI}

// SupervisorTree is the Habitline process tree:
//   - data: media store maintenance
//   - messaging: the activity consumer
//   - api: the HTTP server
//
// A crash in one layer is restarted there without touching the others.
type SupervisorTree struct {
	root   *suture.Supervisor
	layers map[Layer]*suture.Supervisor
	config TreeConfig
}

// spec converts the config to a suture.Spec. Only the root gets the event
// hook; children inherit it when added.
func (c TreeConfig) spec(hook suture.EventHook) suture.Spec {
	return suture.Spec{
		EventHook:        hook,
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// NewSupervisorTree builds the tree. Supervisor events are logged through
// sutureslog.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	if logger == nil {
		return nil, errors.New("supervisor tree needs a logger")
	}
	config = config.withDefaults()

	// MustHook has a pointer receiver.
	hook := (&sutureslog.Handler{Logger: logger}).MustHook()

	tree := &SupervisorTree{
		root:   suture.New("habitline", config.spec(hook)),
		layers: make(map[Layer]*suture.Supervisor, len(layerOrder)),
		config: config,
	}
	for _, name := range layerOrder {
		child := suture.New(string(name), config.spec(nil))
		tree.root.Add(child)
		tree.layers[name] = child
	}
	return tree, nil
}

// Root returns the root supervisor.
func (t *SupervisorTree) Root() *suture.Supervisor {
	return t.root
}

// Add puts svc under the given layer's supervisor.
func (t *SupervisorTree) Add(layer Layer, svc suture.Service) (suture.ServiceToken, error) {
	sup, ok := t.layers[layer]
	if !ok {
		return suture.ServiceToken{}, fmt.Errorf("unknown supervisor layer %q", layer)
	}
	return sup.Add(svc), nil
}

// AddDataService adds a storage maintenance service, such as media GC.
func (t *SupervisorTree) AddDataService(svc suture.Service) suture.ServiceToken {
	return t.layers[LayerData].Add(svc)
}

// AddMessagingService adds an event consumer.
func (t *SupervisorTree) AddMessagingService(svc suture.Service) suture.ServiceToken {
	return t.layers[LayerMessaging].Add(svc)
}

// AddAPIService adds the HTTP server.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.layers[LayerAPI].Add(svc)
}

// Serve runs the tree until ctx is cancelled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel receives the
// result when the tree stops.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that missed the shutdown timeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
