package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"compass_sync/internal/domain"
)

// RabbitMQ publishes cache change events to a topic exchange. Each event is
// routed as "<routing key>.<action>", so consumers can bind to a single
// action or to all of them.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL      string
	Exchange string
	// RoutingKey is the prefix of every published routing key.
	RoutingKey string
	// QueueName is bound to every action under RoutingKey.
	QueueName string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareTopology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Info("change publisher ready",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"binding", BindingKey(cfg.RoutingKey),
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger.With("component", "publisher"),
	}, nil
}

func declareTopology(ch *amqp.Channel, cfg Config) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", cfg.Exchange, err)
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %q: %w", cfg.QueueName, err)
	}

	if err := ch.QueueBind(q.Name, BindingKey(cfg.RoutingKey), cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %q: %w", q.Name, err)
	}
	return nil
}

// RoutingKey returns the key an event with action is published under.
func RoutingKey(prefix string, action domain.ChangeAction) string {
	return prefix + "." + string(action)
}

// BindingKey matches every action published under prefix.
func BindingKey(prefix string) string {
	return prefix + ".*"
}

// ChangeMessage is the wire form of a cache change event. Answer is
// omitted for removals.
type ChangeMessage struct {
	Action    domain.ChangeAction  `json:"action"`
	Topic     string               `json:"topic"`
	Answer    *domain.CachedAnswer `json:"answer,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

func (r *RabbitMQ) Publish(ctx context.Context, event *domain.ChangeEvent) error {
	now := time.Now().UTC()
	body, err := json.Marshal(ChangeMessage{
		Action:    event.Action,
		Topic:     event.Topic,
		Answer:    event.Answer,
		Timestamp: now,
	})
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	key := RoutingKey(r.routingKey, event.Action)
	err = r.channel.PublishWithContext(ctx, r.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         string(event.Action),
		Headers:      amqp.Table{"topic": event.Topic},
		Body:         body,
		Timestamp:    now,
	})
	if err != nil {
		return fmt.Errorf("publish %s for %q: %w", event.Action, event.Topic, err)
	}

	r.logger.Debug("published change", "topic", event.Topic, "routing_key", key)
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
