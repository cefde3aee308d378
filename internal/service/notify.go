package service

import (
	"context"
	"time"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
	"github.com/iliyamo/auction-house/internal/utils"
)

// flushTimeout bounds the post-commit fan-out of one operation.
const flushTimeout = 5 * time.Second

type pendingEvent struct {
	auctionID uint64
	userID    uint64
	name      string
	payload   any
}

type pendingMail struct {
	userID  uint64
	subject string
	body    string
}

// outbox collects side effects produced inside a transaction.  They are
// delivered by flush only after the transaction committed, so a rolled
// back bid never reaches a viewer.
type outbox struct {
	events []pendingEvent
	mails  []pendingMail
}

func (o *outbox) toAuction(auctionID uint64, name string, payload any) {
	o.events = append(o.events, pendingEvent{auctionID: auctionID, name: name, payload: payload})
}

func (o *outbox) toUser(userID uint64, name string, payload any) {
	o.events = append(o.events, pendingEvent{userID: userID, name: name, payload: payload})
}

func (o *outbox) mail(userID uint64, subject, body string) {
	o.mails = append(o.mails, pendingMail{userID: userID, subject: subject, body: body})
}

// notify stores a notification inside tx and queues its realtime push.
func (s *AuctionService) notify(ctx context.Context, tx repository.Tx, ob *outbox, a model.Auction, userID uint64, typ, msg string, now time.Time) error {
	n := &model.Notification{
		UserID:    userID,
		AuctionID: a.ID,
		Type:      typ,
		Message:   msg,
		CreatedAt: now,
	}
	if err := tx.InsertNotification(ctx, n); err != nil {
		return err
	}
	ob.toUser(userID, model.EventNotification, model.NotificationEvent{
		Type:      typ,
		AuctionID: a.ID,
		Title:     a.Title,
		Message:   msg,
	})
	return nil
}

// flush delivers the outbox.  Failures are logged and dropped.
func (s *AuctionService) flush(ctx context.Context, ob *outbox) {
	if len(ob.events) == 0 && len(ob.mails) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()

	for _, e := range ob.events {
		var err error
		if e.userID != 0 {
			err = s.events.ToUser(ctx, e.userID, e.name, e.payload)
		} else {
			err = s.events.ToAuction(ctx, e.auctionID, e.name, e.payload)
		}
		if err != nil {
			utils.Warn("fan-out failed", map[string]any{
				"event": e.name, "auction_id": e.auctionID, "user_id": e.userID, "error": err.Error(),
			})
		}
	}
	for _, m := range ob.mails {
		s.sendMail(ctx, m)
	}
}

func (s *AuctionService) sendMail(ctx context.Context, m pendingMail) {
	contact, err := s.store.UserContact(ctx, m.userID)
	if err != nil {
		utils.Warn("mail recipient lookup failed", map[string]any{"user_id": m.userID, "error": err.Error()})
		return
	}
	if contact.Email == "" {
		return
	}
	body := m.body
	if contact.Name != "" {
		body = contact.Name + ", " + body
	}
	if err := s.mail.SendMail(ctx, contact.Email, m.subject, body); err != nil {
		utils.Warn("mail delivery failed", map[string]any{"user_id": m.userID, "error": err.Error()})
	}
}
