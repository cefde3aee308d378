package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
)

// Balance is the sum of the user's point entries.
func (s *AuctionService) Balance(ctx context.Context, userID uint64) (int64, error) {
	return s.store.Balance(ctx, userID)
}

func (s *AuctionService) PointHistory(ctx context.Context, userID uint64, limit int) ([]model.PointEntry, error) {
	return s.store.PointHistory(ctx, userID, clampLimit(limit))
}

// ChargePoints tops up the user's balance and returns the new balance.
func (s *AuctionService) ChargePoints(ctx context.Context, userID uint64, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "charge"
	}
	var bal int64
	err := s.withTx(ctx, func(tx repository.Tx) error {
		now, err := tx.Now(ctx)
		if err != nil {
			return err
		}
		if err := tx.AppendPoints(ctx, &model.PointEntry{UserID: userID, Amount: amount, Reason: reason, CreatedAt: now}); err != nil {
			return err
		}
		bal, err = tx.Balance(ctx, userID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return bal, nil
}

func (s *AuctionService) Notifications(ctx context.Context, userID uint64, limit int) ([]model.Notification, error) {
	return s.store.ListNotifications(ctx, userID, clampLimit(limit))
}

func (s *AuctionService) MarkNotificationsRead(ctx context.Context, userID uint64) (int64, error) {
	return s.store.MarkNotificationsRead(ctx, userID)
}

// AddFavorite fails with ErrNotFound for an unknown auction and
// ErrConflict when it is already a favorite.
func (s *AuctionService) AddFavorite(ctx context.Context, userID, auctionID uint64) error {
	if err := s.store.AddFavorite(ctx, userID, auctionID); err != nil {
		return fmt.Errorf("favorite %d: %w", auctionID, err)
	}
	return nil
}

func (s *AuctionService) RemoveFavorite(ctx context.Context, userID, auctionID uint64) error {
	if err := s.store.RemoveFavorite(ctx, userID, auctionID); err != nil {
		return fmt.Errorf("favorite %d: %w", auctionID, err)
	}
	return nil
}
