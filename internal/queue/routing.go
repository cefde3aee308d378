package queue

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/auction-house/internal/utils"
)

// RoutingKey returns the topic key for an event, e.g. auction.42.new_bid
// or user.7.notification.  Consumers bind with wildcards such as
// auction.*.* or user.7.#.
func RoutingKey(scope string, targetID uint64, event string) string {
	return fmt.Sprintf("%s.%d.%s", scope, targetID, event)
}

// NewEnvelope marshals payload and stamps a fresh message ID.
func NewEnvelope(scope string, targetID uint64, event string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	return Envelope{
		ID:         utils.GenerateID(),
		Event:      event,
		Scope:      scope,
		TargetID:   targetID,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

// jsonPublishing builds a persistent JSON message.
func jsonPublishing(id string, ts time.Time, v any) (amqp.Publishing, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    id,
		Timestamp:    ts,
		Body:         body,
	}, nil
}
