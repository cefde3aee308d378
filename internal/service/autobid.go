package service

import (
	"context"
	"time"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
	"github.com/iliyamo/auction-house/internal/utils"
)

// resolveAutoBid answers a bid at newPrice with at most one proxy
// counter-bid.  It picks the active proxy with the highest cap above
// newPrice that does not belong to the triggering bidder and bids
// min(newPrice+increment, cap) on its owner's behalf.  The returned price
// is the auction's current price afterwards.
//
// It must run inside the transaction that holds the auction lock.
func (s *AuctionService) resolveAutoBid(ctx context.Context, tx repository.Tx, ob *outbox, a model.Auction, newPrice int64, triggeringBidderID uint64, now time.Time) (int64, error) {
	proxy, ok, err := tx.TopAutoBid(ctx, a.ID, triggeringBidderID, newPrice)
	if err != nil || !ok {
		return newPrice, err
	}

	counter := newPrice + s.opts.BidIncrement
	if counter > proxy.MaxPrice {
		counter = proxy.MaxPrice
	}

	bal, err := tx.Balance(ctx, proxy.UserID)
	if err != nil {
		return newPrice, err
	}
	if bal < counter {
		utils.Info("auto-bid deactivated: insufficient balance", map[string]any{
			"auction_id": a.ID, "user_id": proxy.UserID, "balance": bal, "counter": counter,
		})
		return newPrice, tx.DeactivateAutoBid(ctx, proxy.ID)
	}

	if err := s.recordBid(ctx, tx, ob, a, proxy.UserID, counter, true, now); err != nil {
		return newPrice, err
	}
	if counter == proxy.MaxPrice {
		if err := tx.DeactivateAutoBid(ctx, proxy.ID); err != nil {
			return newPrice, err
		}
	}
	if err := s.notify(ctx, tx, ob, a, triggeringBidderID, model.NotifyOutbid, outbidMessage(a.Title, counter), now); err != nil {
		return newPrice, err
	}
	utils.Debug("auto-bid placed", map[string]any{
		"auction_id": a.ID, "user_id": proxy.UserID, "price": counter,
	})
	return counter, nil
}
