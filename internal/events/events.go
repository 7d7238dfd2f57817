// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
)

type EventType string

const (
	TicketCreated EventType = "ticket.created"
	TicketUpdated EventType = "ticket.updated"
)

// TicketEvent is the message published for every ticket change.
type TicketEvent struct {
	Type       EventType     `json:"type"`
	OccurredAt time.Time     `json:"occurred_at"`
	ActorID    string        `json:"actor_id"`
	Ticket     *types.Ticket `json:"ticket"`
}

type PublisherInterface interface {
	PublishTicket(ctx context.Context, event TicketEvent)
	Close() error
}

type writer interface {
	WriteMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Publisher writes ticket events to a Kafka topic. Publishing is best effort,
// failures are logged and never returned to the caller.
type Publisher struct {
	writer writer

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (p *Publisher) PublishTicket(ctx context.Context, event TicketEvent) {
	if p.writer == nil {
		return
	}

	ctx, span := p.tracer.Start(ctx, "events.Publisher.PublishTicket")
	defer span.End()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Errorf("failed to marshal %s event: %v", event.Type, err)
		return
	}

	msg := kafka.Message{
		Value: body,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if event.Ticket != nil {
		// keyed by ticket so a ticket's events stay ordered within a partition
		msg.Key = []byte(event.Ticket.ID)
	}

	err = p.writer.WriteMessages(ctx, msg)

	v := 1.0
	if err != nil {
		v = 0
		p.logger.Errorf("failed to publish %s event: %v", event.Type, err)
	}
	_ = p.monitor.SetDependencyAvailability(map[string]string{"component": "kafka"}, v)
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// NewPublisher returns a publisher for topic, a no-op one when no brokers are given.
func NewPublisher(brokers []string, topic string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Publisher {
	p := new(Publisher)
	p.tracer = tracer
	p.monitor = monitor
	p.logger = logger

	if len(brokers) == 0 || topic == "" {
		logger.Info("no kafka brokers configured, ticket events are disabled")
		return p
	}

	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Errorf("failed to deliver %d ticket events: %v", len(messages), err)
			}
		},
	}

	return p
}
