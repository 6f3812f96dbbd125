package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends JSON payloads to a durable topic exchange.
type Publisher struct {
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(rawURL, exchange string, logger *slog.Logger) (*Publisher, error) {
	cleanURL, err := sanitizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	if exchange == "" {
		return nil, fmt.Errorf("amqp exchange not configured")
	}

	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	p := &Publisher{exchange: exchange, logger: logger, conn: conn}
	if err := p.openChannel(); err != nil {
		conn.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, err
	}
	return p, nil
}

func (p *Publisher) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close() //nolint:errcheck // channel is unusable after a failed declare
		return fmt.Errorf("declare exchange %q: %w", p.exchange, err)
	}
	p.channel = ch
	return nil
}

// Publish sends body with the given routing key. A closed channel is
// reopened once before giving up.
func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	}

	err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err == nil {
		return nil
	}
	if !errors.Is(err, amqp.ErrClosed) || p.conn.IsClosed() {
		return fmt.Errorf("publish to %q: %w", p.exchange, err)
	}

	if p.logger != nil {
		p.logger.WarnContext(ctx, "amqp channel closed, reopening", "exchange", p.exchange, "error", err)
	}
	if err := p.openChannel(); err != nil {
		return err
	}
	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish to %q after reopen: %w", p.exchange, err)
	}
	return nil
}

// Check reports whether the broker connection is open. It satisfies health.Checker.
func (p *Publisher) Check(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		return fmt.Errorf("amqp connection closed")
	}
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close() //nolint:errcheck // connection close below reports the relevant error
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}

// sanitizeURL strips quotes and stray characters that env files tend to
// leave around the URL.
func sanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	if clean == "" {
		return "", fmt.Errorf("amqp url not configured")
	}
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("parse amqp url: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("amqp url must use amqp:// or amqps://")
	}
	return clean, nil
}
