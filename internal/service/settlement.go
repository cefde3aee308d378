package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
	"github.com/iliyamo/auction-house/internal/utils"
)

// Reasons carried by auction_ended events.
const (
	EndReasonClosed = "ended"
	EndReasonUnsold = "unsold"
	EndReasonBuyNow = "buy_now"
)

// Close settles one auction whose deadline has passed.  It is a no-op for
// an auction that is no longer active or has not expired yet, so running
// it again after a successful close changes nothing.
func (s *AuctionService) Close(ctx context.Context, auctionID uint64) (err error) {
	ctx, span := tracer.Start(ctx, "AuctionService.Close", trace.WithAttributes(
		attribute.Int64("auction.id", int64(auctionID)),
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
		if a.Status != model.AuctionActive || !a.Expired(now) {
			return nil
		}
		top, ok, err := tx.HighestBid(ctx, a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return s.markUnsold(ctx, tx, ob, a, now)
		}
		return s.settleWinner(ctx, tx, ob, a, top.UserID, top.Price, EndReasonClosed, now)
	})
	if err != nil {
		return err
	}
	s.flush(ctx, ob)
	return nil
}

// settleWinner closes a with a winner.  The winner already paid at bid
// time; the seller is credited the final price net of the fee.
func (s *AuctionService) settleWinner(ctx context.Context, tx repository.Tx, ob *outbox, a model.Auction, winnerID uint64, price int64, reason string, now time.Time) error {
	if err := tx.FinishAuction(ctx, a.ID, model.AuctionClosed, &winnerID, price); err != nil {
		return err
	}
	net := s.sellerNet(price)
	if err := tx.InsertSettlement(ctx, &model.Settlement{
		AuctionID:  a.ID,
		SellerID:   a.SellerID,
		BuyerID:    winnerID,
		FinalPrice: price,
		SellerNet:  net,
		Status:     model.SettlementCompleted,
		CreatedAt:  now,
	}); err != nil {
		return err
	}
	if err := tx.AppendPoints(ctx, &model.PointEntry{
		UserID:    a.SellerID,
		Amount:    net,
		Reason:    "sale: " + a.Title,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	wonMsg := fmt.Sprintf("Congratulations! You won %s. Final price: %d", a.Title, price)
	if err := s.notify(ctx, tx, ob, a, winnerID, model.NotifyWon, wonMsg, now); err != nil {
		return err
	}
	bidders, err := tx.BidderIDs(ctx, a.ID)
	if err != nil {
		return err
	}
	lostMsg := fmt.Sprintf("%s has ended. Your bid did not win.", a.Title)
	for _, id := range bidders {
		if id == winnerID {
			continue
		}
		if err := s.notify(ctx, tx, ob, a, id, model.NotifyLost, lostMsg, now); err != nil {
			return err
		}
	}

	finalPrice := price
	ob.toAuction(a.ID, model.EventAuctionEnded, model.AuctionEndedEvent{
		AuctionID: a.ID, WinnerID: &winnerID, FinalPrice: &finalPrice, Reason: reason,
	})
	ob.mail(winnerID, "You won the auction",
		fmt.Sprintf("you won %s.\n\nFinal price: %d\n\nPlease proceed with the transaction.", a.Title, price))

	utils.Info("auction settled", map[string]any{
		"auction_id": a.ID, "winner_id": winnerID, "final_price": price, "seller_net": net, "reason": reason,
	})
	return nil
}

func (s *AuctionService) markUnsold(ctx context.Context, tx repository.Tx, ob *outbox, a model.Auction, now time.Time) error {
	if err := tx.FinishAuction(ctx, a.ID, model.AuctionUnsold, nil, a.CurrentPrice); err != nil {
		return err
	}
	msg := fmt.Sprintf("%s ended unsold. No bids were received.", a.Title)
	if err := s.notify(ctx, tx, ob, a, a.SellerID, model.NotifyLost, msg, now); err != nil {
		return err
	}
	ob.toAuction(a.ID, model.EventAuctionEnded, model.AuctionEndedEvent{AuctionID: a.ID, Reason: EndReasonUnsold})
	utils.Info("auction unsold", map[string]any{"auction_id": a.ID})
	return nil
}

// sellerNet is floor(price * (1 - feeRate)).
func (s *AuctionService) sellerNet(price int64) int64 {
	share := decimal.NewFromInt(1).Sub(s.opts.FeeRate)
	return decimal.NewFromInt(price).Mul(share).Floor().IntPart()
}

// BuyNow closes an active auction immediately at its buy-now price.  The
// buyer pays the delta over their standing bid and the auction is settled
// on the same path as a swept close.
func (s *AuctionService) BuyNow(ctx context.Context, buyerID, auctionID uint64) (res BidResult, err error) {
	ctx, span := tracer.Start(ctx, "AuctionService.BuyNow", trace.WithAttributes(
		attribute.Int64("auction.id", int64(auctionID)),
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
		if a.BuyNowPrice == nil {
			return fmt.Errorf("%w: no buy-now price", ErrInvalidState)
		}
		price := *a.BuyNowPrice
		if price <= a.CurrentPrice {
			return fmt.Errorf("%w: bidding passed the buy-now price", ErrInvalidState)
		}
		if buyerID == a.SellerID {
			return ErrSelfBid
		}
		if err := requireBalance(ctx, tx, buyerID, price); err != nil {
			return err
		}
		if err := s.recordBid(ctx, tx, ob, a, buyerID, price, false, now); err != nil {
			return err
		}
		if _, err := tx.DeactivateAutoBids(ctx, buyerID, a.ID); err != nil {
			return err
		}
		res.CurrentPrice = price
		return s.settleWinner(ctx, tx, ob, a, buyerID, price, EndReasonBuyNow, now)
	})
	if err != nil {
		return BidResult{}, err
	}
	s.flush(ctx, ob)
	return res, nil
}
