package queue

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/auction-house/internal/utils"
)

// MailQueue hands outbound mail to a durable queue so that a slow or
// failing mail transport never blocks the engine.  Each call opens its own
// connection, like the booking publisher it grew out of; mail volume is
// one message per settled auction.
type MailQueue struct {
	url   string
	queue string
}

func NewMailQueue(url, queue string) *MailQueue {
	return &MailQueue{url: url, queue: queue}
}

// SendMail publishes a MailMessage to the mail queue.
func (q *MailQueue) SendMail(ctx context.Context, to, subject, body string) error {
	conn, err := amqp.Dial(q.url)
	if err != nil {
		return fmt.Errorf("mail queue: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("mail queue: channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := declareMailQueue(ch, q.queue); err != nil {
		return fmt.Errorf("mail queue: declare: %w", err)
	}

	msg := MailMessage{
		ID:       utils.GenerateID(),
		To:       to,
		Subject:  subject,
		Body:     body,
		QueuedAt: time.Now().UTC(),
	}
	pub, err := jsonPublishing(msg.ID, msg.QueuedAt, msg)
	if err != nil {
		return fmt.Errorf("mail queue: marshal: %w", err)
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		q.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		return fmt.Errorf("mail queue: publish: %w", err)
	}
	return nil
}

func declareMailQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
}
