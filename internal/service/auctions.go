package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
	"github.com/iliyamo/auction-house/internal/utils"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// NewAuction is the input for CreateAuction.  A nil StartTime starts the
// auction immediately.
type NewAuction struct {
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	StartPrice  int64      `json:"start_price"`
	BuyNowPrice *int64     `json:"buy_now_price,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     time.Time  `json:"end_time"`
}

func (in NewAuction) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case in.StartPrice <= 0:
		return fmt.Errorf("%w: start_price must be positive", ErrInvalidInput)
	case in.BuyNowPrice != nil && *in.BuyNowPrice <= in.StartPrice:
		return fmt.Errorf("%w: buy_now_price must exceed start_price", ErrInvalidInput)
	case in.EndTime.IsZero():
		return fmt.Errorf("%w: end_time is required", ErrInvalidInput)
	case in.StartTime != nil && !in.EndTime.After(*in.StartTime):
		return fmt.Errorf("%w: end_time must be after start_time", ErrInvalidInput)
	}
	return nil
}

// CreateAuction lists an item.  It starts pending when its start time is
// in the future and active otherwise.
func (s *AuctionService) CreateAuction(ctx context.Context, sellerID uint64, in NewAuction) (model.Auction, error) {
	if err := in.validate(); err != nil {
		return model.Auction{}, err
	}
	var a model.Auction
	err := s.withTx(ctx, func(tx repository.Tx) error {
		now, err := tx.Now(ctx)
		if err != nil {
			return err
		}
		start := now
		if in.StartTime != nil {
			start = in.StartTime.UTC()
		}
		if !in.EndTime.After(now) {
			return fmt.Errorf("%w: end_time must be in the future", ErrInvalidInput)
		}
		status := model.AuctionActive
		if start.After(now) {
			status = model.AuctionPending
		}
		a = model.Auction{
			SellerID:     sellerID,
			Title:        strings.TrimSpace(in.Title),
			Category:     strings.TrimSpace(in.Category),
			StartPrice:   in.StartPrice,
			CurrentPrice: in.StartPrice,
			BuyNowPrice:  in.BuyNowPrice,
			StartTime:    start,
			EndTime:      in.EndTime.UTC(),
			Status:       status,
			CreatedAt:    now,
		}
		return tx.CreateAuction(ctx, &a)
	})
	if err != nil {
		return model.Auction{}, err
	}
	utils.Info("auction created", map[string]any{"auction_id": a.ID, "seller_id": sellerID, "status": a.Status})
	return a, nil
}

// DeleteAuction removes a listing.  Only the seller may delete it, and
// never once a bid exists.
func (s *AuctionService) DeleteAuction(ctx context.Context, userID, auctionID uint64) error {
	return s.withTx(ctx, func(tx repository.Tx) error {
		a, err := tx.LockAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("auction %d: %w", auctionID, err)
		}
		if a.SellerID != userID {
			return ErrForbidden
		}
		n, err := tx.CountBids(ctx, a.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: auction has %d bids", ErrConflict, n)
		}
		return tx.DeleteAuction(ctx, a.ID)
	})
}

func (s *AuctionService) GetAuction(ctx context.Context, auctionID uint64) (model.Auction, error) {
	a, err := s.store.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("auction %d: %w", auctionID, err)
	}
	return a, nil
}

// ListBids returns the auction's bid history, newest first.
func (s *AuctionService) ListBids(ctx context.Context, auctionID uint64, limit int) ([]model.Bid, error) {
	if _, err := s.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}
	return s.store.ListBids(ctx, auctionID, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
