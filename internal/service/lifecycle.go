package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/utils"
)

// ActivatePending opens every pending auction whose start time has passed.
func (s *AuctionService) ActivatePending(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "AuctionService.ActivatePending")
	ids, err := s.store.ActivateDue(ctx)
	endSpan(span, err)
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		utils.Info("auctions activated", map[string]any{"count": len(ids), "auction_ids": ids})
	}
	return len(ids), nil
}

// CloseExpired settles every active auction past its deadline, one
// transaction per auction.  A failing auction is logged and left active
// for the next sweep; the rest of the batch continues.
func (s *AuctionService) CloseExpired(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "AuctionService.CloseExpired")
	defer span.End()

	ids, err := s.store.ListExpiredActive(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	closed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return closed, ctx.Err()
		}
		if err := s.Close(ctx, id); err != nil {
			utils.Error("closing auction failed", map[string]any{"auction_id": id, "error": err.Error()})
			continue
		}
		closed++
	}
	if closed > 0 {
		utils.Info("expired auctions closed", map[string]any{"count": closed, "candidates": len(ids)})
	}
	return closed, nil
}

// WarnEndingSoon notifies users who favorited an active auction that ends
// within the window.  Each user is warned at most once per auction.
func (s *AuctionService) WarnEndingSoon(ctx context.Context, within time.Duration) (int, error) {
	ctx, span := tracer.Start(ctx, "AuctionService.WarnEndingSoon")
	defer span.End()

	targets, err := s.store.ListEndingSoon(ctx, within)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	now, err := s.store.Now(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	sent := 0
	for _, t := range targets {
		msg := fmt.Sprintf("%s closes within %d minutes. Current price: %d", t.Title, int(within.Minutes()), t.CurrentPrice)
		n := &model.Notification{
			UserID:    t.UserID,
			AuctionID: t.AuctionID,
			Type:      model.NotifyEndingSoon,
			Message:   msg,
			CreatedAt: now,
		}
		written, err := s.store.InsertNotificationOnce(ctx, n)
		if err != nil {
			utils.Error("ending-soon notification failed", map[string]any{
				"auction_id": t.AuctionID, "user_id": t.UserID, "error": err.Error(),
			})
			continue
		}
		if !written {
			continue
		}
		sent++
		ev := model.NotificationEvent{Type: model.NotifyEndingSoon, AuctionID: t.AuctionID, Title: t.Title, Message: msg}
		if err := s.events.ToUser(ctx, t.UserID, model.EventNotification, ev); err != nil {
			utils.Warn("fan-out failed", map[string]any{
				"event": model.EventNotification, "auction_id": t.AuctionID, "user_id": t.UserID, "error": err.Error(),
			})
		}
	}
	if sent > 0 {
		utils.Info("ending-soon notifications sent", map[string]any{"count": sent})
	}
	return sent, nil
}
