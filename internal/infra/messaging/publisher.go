package messaging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers one outbox message. messageID lets consumers drop repeats.
type Publisher interface {
	Publish(ctx context.Context, topic, messageID string, body []byte) error
	Close() error
}

// NewPublisher returns a RabbitMQ publisher, or a log-only one when no broker is configured.
func NewPublisher(cfg config.MessagingConfig) (Publisher, error) {
	if cfg.RabbitURL == "" {
		slog.Warn("RABBIT_URL not set, notifications will only be logged")
		return NewLogPublisher(), nil
	}
	return NewRabbitPublisher(cfg.RabbitURL, cfg.Exchange)
}

type RabbitPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrapf(err, "declare exchange %s", exchange)
	}
	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, topic, messageID string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(ctx, p.exchange, topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return errs.Wrapf(err, "publish %s", topic)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(_ context.Context, topic, messageID string, body []byte) error {
	slog.Info("notification",
		"topic", topic,
		"message_id", messageID,
		"payload", string(body))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
