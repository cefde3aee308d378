// Package queue defines the messages exchanged over RabbitMQ and the
// publishers and consumers that move them.
package queue

import (
	"encoding/json"
	"time"
)

// Broadcast scopes.  Auction events reach every viewer of the auction;
// user events reach one user's private channel.
const (
	ScopeAuction = "auction"
	ScopeUser    = "user"
)

// Envelope wraps every realtime event published to the events exchange.
// Gateways that hold viewer connections bind to the routing keys they
// serve and forward Payload unchanged under the Event name.
type Envelope struct {
	ID         string          `json:"id"`
	Event      string          `json:"event"`
	Scope      string          `json:"scope"`
	TargetID   uint64          `json:"target_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// MailMessage is queued for the mail consumer.
type MailMessage struct {
	ID       string    `json:"id"`
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queued_at"`
}
