// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package eventprocessor

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/metrics"
)

// Metadata keys set on every published message.
const (
	MetadataEventType     = "event_type"
	MetadataEntityType    = "entity_type"
	MetadataCorrelationID = "correlation_id"
)

// Publisher wraps a Watermill publisher with a circuit breaker.
type Publisher struct {
	publisher      message.Publisher
	topic          string
	circuitBreaker *gobreaker.CircuitBreaker[interface{}]
	mu             sync.RWMutex
	closed         bool
}

// NewPublisher publishes to topic through pub. cb may be nil.
func NewPublisher(pub message.Publisher, topic string, cb *gobreaker.CircuitBreaker[interface{}]) *Publisher {
	return &Publisher{publisher: pub, topic: topic, circuitBreaker: cb}
}

// Topic returns the topic events are published on.
func (p *Publisher) Topic() string {
	return p.topic
}

// Publish sends msg to the configured topic.
func (p *Publisher) Publish(ctx context.Context, msg *message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if id := logging.CorrelationIDFromContext(ctx); id != "" && msg.Metadata.Get(MetadataCorrelationID) == "" {
		msg.Metadata.Set(MetadataCorrelationID, id)
	}

	if p.circuitBreaker == nil {
		return p.publisher.Publish(p.topic, msg)
	}
	_, err := p.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, p.publisher.Publish(p.topic, msg)
	})
	return err
}

// PublishEvent serializes event and publishes it.
func (p *Publisher) PublishEvent(ctx context.Context, event *Event) (err error) {
	if event == nil {
		return ErrNilEvent
	}
	defer func() { metrics.RecordEventPublish(string(event.Type), err) }()

	data, err := SerializeEvent(event)
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set(MetadataEventType, string(event.Type))
	msg.Metadata.Set(MetadataEntityType, event.EntityType)
	return p.Publish(ctx, msg)
}

// BreakerState reports the breaker state, or "disabled" without one.
func (p *Publisher) BreakerState() string {
	if p.circuitBreaker == nil {
		return "disabled"
	}
	return p.circuitBreaker.State().String()
}

// Close stops further publishing. The underlying publisher is closed too.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}
