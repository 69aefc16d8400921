// Package audit publishes per-invocation audit records to an AMQP
// exchange. Publishing is best-effort: a failed publish is logged and
// never fails the intercepted call.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Record describes one completed invocation.
type Record struct {
	InvocationID string    `json:"invocationId"`
	Contract     string    `json:"contract"`
	Method       string    `json:"method"`
	Timestamp    time.Time `json:"timestamp"`
	DurationMs   int64     `json:"durationMs"`
	Error        string    `json:"error,omitempty"`
}

// Channel is the slice of the AMQP channel API the publisher needs.
// *amqp091.Channel satisfies it.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher publishes audit records to an exchange
type Publisher struct {
	channel        Channel
	exchange       string
	publishTimeout time.Duration
	logger         *slog.Logger
}

// PublisherOption configures the publisher
type PublisherOption func(*Publisher)

// WithPublishTimeout sets the per-publish timeout
func WithPublishTimeout(timeout time.Duration) PublisherOption {
	return func(p *Publisher) {
		p.publishTimeout = timeout
	}
}

// WithLogger sets the publisher logger
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a publisher bound to an exchange
func NewPublisher(channel Channel, exchange string, options ...PublisherOption) *Publisher {
	p := &Publisher{
		channel:        channel,
		exchange:       exchange,
		publishTimeout: 5 * time.Second,
		logger:         slog.Default(),
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Publish sends one record, routed as <contract>.<method>.
func (p *Publisher) Publish(ctx context.Context, record Record) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.publishTimeout)
		defer cancel()
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	routingKey := record.Contract + "." + record.Method
	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   record.InvocationID,
		Timestamp:   record.Timestamp,
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish audit record: %w", err)
	}
	return nil
}
