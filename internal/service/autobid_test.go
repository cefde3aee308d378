package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/model"
)

func TestAutoBidCascadeExhaustsCap(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	human := h.user("human", 20000)
	proxy := h.user("proxy", 20000)
	auc := h.auction(seller, 1000)

	require.NoError(t, h.svc.SetAutoBid(h.ctx, proxy, auc.ID, 5000))

	res, err := h.svc.PlaceBid(h.ctx, human, auc.ID, 3000)
	require.NoError(t, err)
	require.Equal(t, int64(4000), res.CurrentPrice)

	bids := h.bidsOldestFirst(auc.ID)
	require.Len(t, bids, 2)
	require.Equal(t, human, bids[0].UserID)
	require.False(t, bids[0].IsAutoBid)
	require.Equal(t, proxy, bids[1].UserID)
	require.True(t, bids[1].IsAutoBid)
	require.Equal(t, int64(4000), bids[1].Price)

	mine, err := h.svc.MyAutoBids(h.ctx, proxy)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	res, err = h.svc.PlaceBid(h.ctx, human, auc.ID, 4500)
	require.NoError(t, err)
	require.Equal(t, int64(5000), res.CurrentPrice)
	require.Equal(t, int64(5000), h.get(auc.ID).CurrentPrice)

	bids = h.bidsOldestFirst(auc.ID)
	require.Len(t, bids, 4)
	require.Equal(t, proxy, bids[3].UserID)
	require.Equal(t, int64(5000), bids[3].Price)

	mine, err = h.svc.MyAutoBids(h.ctx, proxy)
	require.NoError(t, err)
	require.Empty(t, mine)

	// The proxy owner pays deltas like any bidder: 4000 then 1000.
	require.Equal(t, int64(20000-5000), h.balance(proxy))
	require.Equal(t, int64(20000-4500), h.balance(human))
	require.Len(t, h.notifications(human, model.NotifyOutbid), 2)
	require.Len(t, h.notifications(proxy, model.NotifyOutbid), 1)

	// Cap exhausted: a further human bid stands.
	res, err = h.svc.PlaceBid(h.ctx, human, auc.ID, 5500)
	require.NoError(t, err)
	require.Equal(t, int64(5500), res.CurrentPrice)
	require.Len(t, h.notifications(proxy, model.NotifyOutbid), 2)
}

func TestAutoBidPlacesAtMostOneCounterBid(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	human := h.user("human", 20000)
	low := h.user("low", 20000)
	high := h.user("high", 20000)
	auc := h.auction(seller, 1000)

	require.NoError(t, h.svc.SetAutoBid(h.ctx, low, auc.ID, 5000))
	require.NoError(t, h.svc.SetAutoBid(h.ctx, high, auc.ID, 8000))

	res, err := h.svc.PlaceBid(h.ctx, human, auc.ID, 2000)
	require.NoError(t, err)
	require.Equal(t, int64(3000), res.CurrentPrice)

	bids := h.bidsOldestFirst(auc.ID)
	require.Len(t, bids, 2)
	require.Equal(t, high, bids[1].UserID)

	auto := 0
	for _, e := range h.eventsNamed(model.EventNewBid) {
		if e.payload.(model.NewBidEvent).IsAutoBid {
			auto++
		}
	}
	require.Equal(t, 1, auto)
}

func TestAutoBidTieGoesToEarliestProxy(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	human := h.user("human", 20000)
	first := h.user("first", 20000)
	second := h.user("second", 20000)
	auc := h.auction(seller, 1000)

	require.NoError(t, h.svc.SetAutoBid(h.ctx, first, auc.ID, 6000))
	require.NoError(t, h.svc.SetAutoBid(h.ctx, second, auc.ID, 6000))

	_, err := h.svc.PlaceBid(h.ctx, human, auc.ID, 2000)
	require.NoError(t, err)
	bids := h.bidsOldestFirst(auc.ID)
	require.Equal(t, first, bids[len(bids)-1].UserID)
}

func TestAutoBidSkipsTriggeringBidder(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	p := h.user("proxy", 20000)
	auc := h.auction(seller, 1000)

	require.NoError(t, h.svc.SetAutoBid(h.ctx, p, auc.ID, 9000))
	res, err := h.svc.PlaceBid(h.ctx, p, auc.ID, 2000)
	require.NoError(t, err)
	require.Equal(t, int64(2000), res.CurrentPrice)
	require.Len(t, h.bidsOldestFirst(auc.ID), 1)
}

func TestAutoBidDeactivatedWhenOwnerCannotPay(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	human := h.user("human", 20000)
	p := h.user("proxy", 5000)
	auc := h.auction(seller, 1000)
	other := h.auction(seller, 1000)

	require.NoError(t, h.svc.SetAutoBid(h.ctx, p, auc.ID, 5000))
	_, err := h.svc.PlaceBid(h.ctx, p, other.ID, 4000)
	require.NoError(t, err)
	require.Equal(t, int64(1000), h.balance(p))

	res, err := h.svc.PlaceBid(h.ctx, human, auc.ID, 2000)
	require.NoError(t, err)
	require.Equal(t, int64(2000), res.CurrentPrice)
	require.Len(t, h.bidsOldestFirst(auc.ID), 1)

	mine, err := h.svc.MyAutoBids(h.ctx, p)
	require.NoError(t, err)
	require.Empty(t, mine)
}
