// Package notify delivers registration events (issued OTPs and completed
// registrations) to whatever sits downstream of the service: a log sink,
// a Kafka topic or a RabbitMQ exchange.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"amigowallet/internal/platform/kafka/producer"
	"amigowallet/internal/registration/models"
	"amigowallet/pkg/platform/privacy"
)

// LogNotifier writes events to the structured log. The OTP is masked
// unless the notifier was built WithRevealedOTP.
type LogNotifier struct {
	logger    *slog.Logger
	revealOTP bool
}

type LogOption func(*LogNotifier)

// WithRevealedOTP logs issued codes in full so a local registration can be
// completed from the log alone. Only the dev environment sets it.
func WithRevealedOTP(reveal bool) LogOption {
	return func(n *LogNotifier) {
		n.revealOTP = reveal
	}
}

func NewLogNotifier(logger *slog.Logger, opts ...LogOption) *LogNotifier {
	n := &LogNotifier{logger: logger}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *LogNotifier) Publish(ctx context.Context, event models.Event) error {
	attrs := []any{
		"type", string(event.Type),
		"email", event.EmailID,
	}
	if event.OTP != "" {
		otp := privacy.MaskSecret(event.OTP)
		if n.revealOTP {
			otp = event.OTP
		}
		attrs = append(attrs, "otp", otp, "expires_at", event.ExpiresAt)
	}
	if event.RegistrationID != 0 {
		attrs = append(attrs, "registration_id", event.RegistrationID)
	}
	n.logger.InfoContext(ctx, "registration event", attrs...)
	return nil
}

// Producer is the subset of the Kafka producer used for events.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaNotifier publishes events as JSON records keyed by email.
type KafkaNotifier struct {
	producer Producer
	topic    string
}

func NewKafkaNotifier(p Producer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: p, topic: topic}
}

func (n *KafkaNotifier) Publish(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := &producer.Message{
		Topic:   n.topic,
		Key:     []byte(event.EmailID),
		Value:   payload,
		Headers: map[string]string{"event_type": string(event.Type)},
	}
	if err := n.producer.Produce(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}

// Publisher is the subset of the RabbitMQ publisher used for events.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// AMQPNotifier publishes events to a topic exchange with routing keys of
// the form registration.<event type>.
type AMQPNotifier struct {
	publisher Publisher
}

func NewAMQPNotifier(p Publisher) *AMQPNotifier {
	return &AMQPNotifier{publisher: p}
}

func (n *AMQPNotifier) Publish(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := n.publisher.Publish(ctx, RoutingKey(event.Type), payload); err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}

// RoutingKey returns the AMQP routing key for an event type.
func RoutingKey(t models.EventType) string {
	return "registration." + string(t)
}
