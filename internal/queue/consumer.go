package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/auction-house/internal/utils"
)

// MailSender delivers a message to its recipient.
type MailSender interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// StartMailConsumer drains the mail queue into sender until ctx is
// cancelled.  It reconnects with exponential backoff when the broker goes
// away.  Messages that cannot be decoded or delivered are rejected without
// requeue so that one bad message cannot spin the loop.
func StartMailConsumer(ctx context.Context, url, queue string, sender MailSender) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			utils.Warn("mail-consumer: failed to dial broker", map[string]any{"error": err.Error(), "retry_in": backoff.String()})
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = consumeLoop(ctx, conn, queue, sender)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		utils.Warn("mail-consumer: consume loop ended; reconnecting", map[string]any{"error": fmt.Sprint(err)})
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, queue string, sender MailSender) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		utils.Warn("mail-consumer: set QoS failed", map[string]any{"error": err.Error()})
	}
	if _, err := declareMailQueue(ch, queue); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMail(ctx, d.Body, sender); err != nil {
			utils.Error("mail-consumer: handle message failed", map[string]any{"message_id": d.MessageId, "error": err.Error()})
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMail(ctx context.Context, body []byte, sender MailSender) error {
	var m MailMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if m.To == "" {
		return errors.New("mail without recipient")
	}
	return sender.SendMail(ctx, m.To, m.Subject, m.Body)
}

// sleepCtx waits for d and reports false when ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
