package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/model"
)

func TestCreateAuctionValidation(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	past := h.now().Add(-time.Hour)
	low := int64(500)

	cases := []struct {
		name   string
		mutate func(*NewAuction)
	}{
		{"blank title", func(in *NewAuction) { in.Title = "  " }},
		{"zero start price", func(in *NewAuction) { in.StartPrice = 0 }},
		{"buy now below start", func(in *NewAuction) { in.BuyNowPrice = &low }},
		{"missing end", func(in *NewAuction) { in.EndTime = time.Time{} }},
		{"end in the past", func(in *NewAuction) { in.EndTime = past }},
		{"end before start", func(in *NewAuction) {
			start := h.now().Add(2 * time.Hour)
			in.StartTime = &start
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := NewAuction{Title: "Desk", StartPrice: 1000, EndTime: h.now().Add(time.Hour)}
			tc.mutate(&in)
			_, err := h.svc.CreateAuction(h.ctx, seller, in)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	a := h.auction(seller, 1000)
	require.Equal(t, model.AuctionActive, a.Status)
	require.Equal(t, int64(1000), a.CurrentPrice)
	require.Equal(t, h.now(), a.StartTime)
}

func TestDeleteAuction(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	stranger := h.user("stranger", 10000)
	empty := h.auction(seller, 1000)
	bidOn := h.auction(seller, 1000)

	_, err := h.svc.PlaceBid(h.ctx, stranger, bidOn.ID, 1500)
	require.NoError(t, err)
	require.NoError(t, h.svc.AddFavorite(h.ctx, stranger, empty.ID))

	require.ErrorIs(t, h.svc.DeleteAuction(h.ctx, stranger, empty.ID), ErrForbidden)
	require.ErrorIs(t, h.svc.DeleteAuction(h.ctx, seller, bidOn.ID), ErrConflict)
	require.ErrorIs(t, h.svc.DeleteAuction(h.ctx, seller, 777777), ErrNotFound)

	require.NoError(t, h.svc.DeleteAuction(h.ctx, seller, empty.ID))
	_, err = h.svc.GetAuction(h.ctx, empty.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, h.svc.RemoveFavorite(h.ctx, stranger, empty.ID), ErrNotFound)
	_, err = h.svc.ListBids(h.ctx, empty.ID, 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFavorites(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	fan := h.user("fan", 0)
	a := h.auction(seller, 1000)

	require.NoError(t, h.svc.AddFavorite(h.ctx, fan, a.ID))
	require.ErrorIs(t, h.svc.AddFavorite(h.ctx, fan, a.ID), ErrConflict)
	require.ErrorIs(t, h.svc.AddFavorite(h.ctx, fan, 555555), ErrNotFound)
	require.NoError(t, h.svc.RemoveFavorite(h.ctx, fan, a.ID))
	require.ErrorIs(t, h.svc.RemoveFavorite(h.ctx, fan, a.ID), ErrNotFound)
}

func TestChargePointsAndNotificationsRead(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	alice := h.user("alice", 0)
	bob := h.user("bob", 0)

	_, err := h.svc.ChargePoints(h.ctx, alice, 0, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	bal, err := h.svc.ChargePoints(h.ctx, alice, 3000, "")
	require.NoError(t, err)
	require.Equal(t, int64(3000), bal)
	bal, err = h.svc.ChargePoints(h.ctx, bob, 5000, "bank transfer")
	require.NoError(t, err)
	require.Equal(t, int64(5000), bal)

	history, err := h.svc.PointHistory(h.ctx, bob, 10)
	require.NoError(t, err)
	require.Equal(t, "bank transfer", history[0].Reason)

	a := h.auction(seller, 1000)
	_, err = h.svc.PlaceBid(h.ctx, alice, a.ID, 1500)
	require.NoError(t, err)
	_, err = h.svc.PlaceBid(h.ctx, bob, a.ID, 2000)
	require.NoError(t, err)

	list, err := h.svc.Notifications(h.ctx, alice, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.False(t, list[0].IsRead)

	n, err := h.svc.MarkNotificationsRead(h.ctx, alice)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	list, err = h.svc.Notifications(h.ctx, alice, 10)
	require.NoError(t, err)
	require.True(t, list[0].IsRead)
}
