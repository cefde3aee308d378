package queue

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/auction-house/internal/utils"
)

// Publisher sends realtime events to a durable topic exchange.  It keeps
// one connection and channel open; a failed publish drops the channel and
// the next publish dials again.
type Publisher struct {
	url      string
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	p := &Publisher{url: url, exchange: exchange}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connectLocked() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

// ToAuction publishes to auction.<id>.<event>.
func (p *Publisher) ToAuction(ctx context.Context, auctionID uint64, event string, payload any) error {
	return p.publish(ctx, ScopeAuction, auctionID, event, payload)
}

// ToUser publishes to user.<id>.<event>.
func (p *Publisher) ToUser(ctx context.Context, userID uint64, event string, payload any) error {
	return p.publish(ctx, ScopeUser, userID, event, payload)
}

func (p *Publisher) publish(ctx context.Context, scope string, id uint64, event string, payload any) error {
	env, err := NewEnvelope(scope, id, event, payload)
	if err != nil {
		return err
	}
	msg, err := jsonPublishing(env.ID, env.OccurredAt, env)
	if err != nil {
		return err
	}
	key := RoutingKey(scope, id, event)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() {
		p.resetLocked()
		if err := p.connectLocked(); err != nil {
			return err
		}
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, key, false, false, msg); err != nil {
		p.resetLocked()
		return fmt.Errorf("publish %s: %w", key, err)
	}
	utils.Debug("event published", map[string]any{"routing_key": key, "message_id": env.ID})
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}

// LogPublisher writes events to the application log.  It stands in for
// Publisher when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) ToAuction(_ context.Context, auctionID uint64, event string, payload any) error {
	return logEvent(ScopeAuction, auctionID, event, payload)
}

func (LogPublisher) ToUser(_ context.Context, userID uint64, event string, payload any) error {
	return logEvent(ScopeUser, userID, event, payload)
}

func logEvent(scope string, id uint64, event string, payload any) error {
	env, err := NewEnvelope(scope, id, event, payload)
	if err != nil {
		return err
	}
	utils.Info("event", map[string]any{
		"routing_key": RoutingKey(scope, id, event),
		"message_id":  env.ID,
		"payload":     string(env.Payload),
	})
	return nil
}
