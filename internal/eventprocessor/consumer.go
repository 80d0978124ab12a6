// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package eventprocessor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/habitline/internal/database"
	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/metrics"
)

// ActivityRecorder persists consumed events. Satisfied by *database.DB.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, rec database.ActivityRecord) error
}

// ActivityPruner trims the activity log. Optional; *database.DB satisfies it.
type ActivityPruner interface {
	PruneActivity(ctx context.Context, keep int) (int64, error)
}

// ConsumerConfig configures ActivityConsumer.
type ConsumerConfig struct {
	Topic string
	// Retention is how many activity entries to keep. Zero disables pruning.
	Retention int
	// PruneEvery is how many recorded events pass between prunes.
	PruneEvery int
	// RetryDelay is the pause before nacking a failed write, so a broken
	// recorder does not spin on redelivery.
	RetryDelay time.Duration
}

// ConsumerStats holds runtime counters.
type ConsumerStats struct {
	Received int64
	Recorded int64
	Dropped  int64
	Failed   int64
}

// ActivityConsumer subscribes to the event topic and appends every event
// to the activity log. It implements suture.Service.
type ActivityConsumer struct {
	subscriber message.Subscriber
	recorder   ActivityRecorder
	pruner     ActivityPruner
	cfg        ConsumerConfig

	received atomic.Int64
	recorded atomic.Int64
	dropped  atomic.Int64
	failed   atomic.Int64
}

// NewActivityConsumer builds a consumer. If recorder also implements
// ActivityPruner and cfg.Retention is positive, the log is pruned as it grows.
func NewActivityConsumer(sub message.Subscriber, recorder ActivityRecorder, cfg ConsumerConfig) *ActivityConsumer {
	if cfg.PruneEvery <= 0 {
		cfg.PruneEvery = 100
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 250 * time.Millisecond
	}
	c := &ActivityConsumer{subscriber: sub, recorder: recorder, cfg: cfg}
	if p, ok := recorder.(ActivityPruner); ok && cfg.Retention > 0 {
		c.pruner = p
	}
	return c
}

// Serve implements suture.Service. It returns when ctx is cancelled or the
// subscription channel closes.
func (c *ActivityConsumer) Serve(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.cfg.Topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.cfg.Topic, err)
	}

	log := logging.WithComponent("activity-consumer")
	log.Info().Str("topic", c.cfg.Topic).Msg("Activity consumer started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Int64("recorded", c.recorded.Load()).Msg("Activity consumer stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.processMessage(ctx, msg)
		}
	}
}

func (c *ActivityConsumer) processMessage(ctx context.Context, msg *message.Message) {
	c.received.Add(1)

	event, err := DeserializeEvent(msg.Payload)
	if err != nil {
		c.dropped.Add(1)
		metrics.RecordEventConsumed("dropped")
		logging.Warn().
			Str("message_uuid", msg.UUID).
			Err(err).
			Msg("Dropping undecodable event")
		msg.Ack()
		return
	}

	rec := database.ActivityRecord{
		EventID:    event.EventID,
		EventType:  string(event.Type),
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		OccurredAt: event.OccurredAt,
		Payload:    event.Payload,
	}
	if err := c.recorder.RecordActivity(ctx, rec); err != nil {
		c.failed.Add(1)
		metrics.RecordEventConsumed("failed")
		logging.Warn().
			Str("event_id", event.EventID).
			Str("event_type", string(event.Type)).
			Err(err).
			Msg("Failed to record activity, will retry")

		select {
		case <-ctx.Done():
		case <-time.After(c.cfg.RetryDelay):
		}
		msg.Nack()
		return
	}

	n := c.recorded.Add(1)
	metrics.RecordEventConsumed("recorded")
	msg.Ack()

	if c.pruner != nil && n%int64(c.cfg.PruneEvery) == 0 {
		c.prune(ctx)
	}
}

func (c *ActivityConsumer) prune(ctx context.Context) {
	removed, err := c.pruner.PruneActivity(ctx, c.cfg.Retention)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to prune activity log")
		return
	}
	if removed > 0 {
		logging.Debug().Int64("removed", removed).Msg("Activity log pruned")
	}
}

// Stats returns the current counters.
func (c *ActivityConsumer) Stats() ConsumerStats {
	return ConsumerStats{
		Received: c.received.Load(),
		Recorded: c.recorded.Load(),
		Dropped:  c.dropped.Load(),
		Failed:   c.failed.Load(),
	}
}

// String implements fmt.Stringer for suture logs.
func (c *ActivityConsumer) String() string {
	return "activity-consumer"
}
