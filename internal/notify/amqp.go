package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

const mailRoutingKey = "mail.send"

// QueuePublisher hands mail jobs to a RabbitMQ topic exchange. A separate
// worker drains the queue, so checkout latency and outcome never depend on
// the mail server.
type QueuePublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewQueuePublisher(amqpURL, exchange string) (*QueuePublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &QueuePublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

func (p *QueuePublisher) Send(_ context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}

	err = p.channel.Publish(p.exchange, mailRoutingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish mail job: %w", err)
	}
	return nil
}

func (p *QueuePublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

var _ Notifier = (*QueuePublisher)(nil)
