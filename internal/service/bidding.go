package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
)

// BidResult is returned by PlaceBid and BuyNow.  CurrentPrice includes any
// proxy counter-bid placed in the same transaction.
type BidResult struct {
	CurrentPrice int64 `json:"currentPrice"`
}

// PlaceBid accepts a bid of price from bidderID.  The bidder is debited the
// difference between price and their own previous highest bid on the
// auction.  A competing proxy may answer with one counter-bid before the
// transaction commits.
func (s *AuctionService) PlaceBid(ctx context.Context, bidderID, auctionID uint64, price int64) (res BidResult, err error) {
	ctx, span := tracer.Start(ctx, "AuctionService.PlaceBid", trace.WithAttributes(
		attribute.Int64("auction.id", int64(auctionID)),
		attribute.Int64("bid.price", price),
	))
	defer func() { endSpan(span, err) }()

	ob := &outbox{}
	err = s.withTx(ctx, func(tx repository.Tx) error {
		a, err := tx.LockAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("auction %d: %w", auctionID, err)
		}
		now, err := tx.Now(ctx)
		if err != nil {
			return err
		}
		if err := checkOpen(a, now); err != nil {
			return err
		}
		if bidderID == a.SellerID {
			return ErrSelfBid
		}
		if price <= a.CurrentPrice {
			return fmt.Errorf("%w: current price is %d", ErrPriceTooLow, a.CurrentPrice)
		}
		if err := requireBalance(ctx, tx, bidderID, price); err != nil {
			return err
		}

		prev, hadPrev, err := tx.HighestBid(ctx, a.ID)
		if err != nil {
			return err
		}
		if err := s.recordBid(ctx, tx, ob, a, bidderID, price, false, now); err != nil {
			return err
		}
		if hadPrev && prev.UserID != bidderID {
			if err := s.notify(ctx, tx, ob, a, prev.UserID, model.NotifyOutbid, outbidMessage(a.Title, price), now); err != nil {
				return err
			}
		}
		final, err := s.resolveAutoBid(ctx, tx, ob, a, price, bidderID, now)
		if err != nil {
			return err
		}
		res.CurrentPrice = final
		return nil
	})
	if err != nil {
		return BidResult{}, err
	}
	s.flush(ctx, ob)
	return res, nil
}

// recordBid debits the delta over the bidder's standing bid, appends the
// bid and moves the current price.
func (s *AuctionService) recordBid(ctx context.Context, tx repository.Tx, ob *outbox, a model.Auction, userID uint64, price int64, auto bool, now time.Time) error {
	standing, err := tx.MaxBidBy(ctx, a.ID, userID)
	if err != nil {
		return err
	}
	if delta := price - standing; delta > 0 {
		if err := tx.AppendPoints(ctx, &model.PointEntry{
			UserID:    userID,
			Amount:    -delta,
			Reason:    "bid: " + a.Title,
			CreatedAt: now,
		}); err != nil {
			return err
		}
	}
	b := &model.Bid{AuctionID: a.ID, UserID: userID, Price: price, IsAutoBid: auto, CreatedAt: now}
	if err := tx.InsertBid(ctx, b); err != nil {
		return err
	}
	if err := tx.UpdateCurrentPrice(ctx, a.ID, price); err != nil {
		return err
	}
	ob.toAuction(a.ID, model.EventNewBid, model.NewBidEvent{
		UserID: userID, BidPrice: price, IsAutoBid: auto, Timestamp: now,
	})
	ob.toAuction(a.ID, model.EventPriceUpdate, model.PriceUpdateEvent{CurrentPrice: price})
	return nil
}

// SetAutoBid registers a proxy for userID capped at maxPrice.  Any earlier
// active proxy of the same user on the auction is deactivated first.
func (s *AuctionService) SetAutoBid(ctx context.Context, userID, auctionID uint64, maxPrice int64) (err error) {
	ctx, span := tracer.Start(ctx, "AuctionService.SetAutoBid", trace.WithAttributes(
		attribute.Int64("auction.id", int64(auctionID)),
		attribute.Int64("autobid.max_price", maxPrice),
	))
	defer func() { endSpan(span, err) }()

	return s.withTx(ctx, func(tx repository.Tx) error {
		a, err := tx.LockAuction(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("auction %d: %w", auctionID, err)
		}
		now, err := tx.Now(ctx)
		if err != nil {
			return err
		}
		if err := checkOpen(a, now); err != nil {
			return err
		}
		if userID == a.SellerID {
			return ErrSelfBid
		}
		if maxPrice <= a.CurrentPrice {
			return fmt.Errorf("%w: current price is %d", ErrPriceTooLow, a.CurrentPrice)
		}
		if err := requireBalance(ctx, tx, userID, maxPrice); err != nil {
			return err
		}
		if _, err := tx.DeactivateAutoBids(ctx, userID, a.ID); err != nil {
			return err
		}
		return tx.InsertAutoBid(ctx, &model.AutoBid{
			UserID: userID, AuctionID: a.ID, MaxPrice: maxPrice, Active: true, CreatedAt: now,
		})
	})
}

// CancelAutoBid deactivates the user's proxy on the auction.  Cancelling
// when nothing is active, or for an unknown auction, is not an error.
func (s *AuctionService) CancelAutoBid(ctx context.Context, userID, auctionID uint64) error {
	err := s.withTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.LockAuction(ctx, auctionID); err != nil {
			return err
		}
		_, err := tx.DeactivateAutoBids(ctx, userID, auctionID)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// MyAutoBids lists the user's active proxies, newest first.
func (s *AuctionService) MyAutoBids(ctx context.Context, userID uint64) ([]model.AutoBid, error) {
	return s.store.ListActiveAutoBids(ctx, userID)
}

// checkOpen rejects auctions that are not active or whose deadline has
// passed.  Closing is left to the sweep.
func checkOpen(a model.Auction, now time.Time) error {
	if a.Status != model.AuctionActive {
		return fmt.Errorf("%w: status is %s", ErrInvalidState, a.Status)
	}
	if a.Expired(now) {
		return fmt.Errorf("%w: bidding closed at %s", ErrInvalidState, a.EndTime.Format(time.RFC3339))
	}
	return nil
}

func requireBalance(ctx context.Context, tx repository.Tx, userID uint64, amount int64) error {
	bal, err := tx.Balance(ctx, userID)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, bal, amount)
	}
	return nil
}

func outbidMessage(title string, price int64) string {
	return fmt.Sprintf("A higher bid was placed on %s. Current price: %d", title, price)
}
