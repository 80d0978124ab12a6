// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

/*
Package eventprocessor carries Habitline domain events over an in-process
Watermill bus.

The tracker service publishes an Event for every state change (habit
created, action completed, book deleted and so on). Publishing goes
through a gobreaker circuit breaker so a wedged bus cannot slow request
handling down; failures are logged and counted, never surfaced to the
client.

ActivityConsumer is the only subscriber today. It runs under the
supervisor tree and appends each event to the activity log:

	bus := eventprocessor.NewBus(eventprocessor.BusConfig{BufferSize: 256})
	pub := eventprocessor.NewPublisher(bus, cfg.Events.Topic, eventprocessor.NewCircuitBreaker(breakerCfg))
	consumer := eventprocessor.NewActivityConsumer(bus, db, eventprocessor.ConsumerConfig{Topic: cfg.Events.Topic})
	tree.AddMessagingService(consumer)

Delivery is at-least-once: a message whose write fails is nacked and the
gochannel bus redelivers it. The activity log ignores duplicate event ids.
*/
package eventprocessor
