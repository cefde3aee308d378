package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
)

func TestSellerNetFloorsAfterFee(t *testing.T) {
	cases := []struct {
		fee   string
		price int64
		want  int64
	}{
		{"0.10", 2500, 2250},
		{"0.10", 2001, 1800},
		{"0.10", 999, 899},
		{"0.10", 1, 0},
		{"0", 1234, 1234},
		{"0.035", 10000, 9650},
	}
	for _, tc := range cases {
		s := &AuctionService{opts: Options{FeeRate: decimal.RequireFromString(tc.fee)}}
		require.Equal(t, tc.want, s.sellerNet(tc.price), "fee=%s price=%d", tc.fee, tc.price)
	}
}

func TestCloseSettlesWinnerExactlyOnce(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	alice := h.user("alice", 10000)
	bob := h.user("bob", 10000)
	auc := h.auction(seller, 1000)

	_, err := h.svc.PlaceBid(h.ctx, alice, auc.ID, 1500)
	require.NoError(t, err)
	_, err = h.svc.PlaceBid(h.ctx, bob, auc.ID, 2001)
	require.NoError(t, err)

	h.advance(time.Hour + time.Second)
	closed, err := h.svc.CloseExpired(h.ctx)
	require.NoError(t, err)
	require.Equal(t, 1, closed)

	got := h.get(auc.ID)
	require.Equal(t, model.AuctionClosed, got.Status)
	require.NotNil(t, got.WinnerID)
	require.Equal(t, bob, *got.WinnerID)
	require.Equal(t, int64(2001), got.CurrentPrice)

	settlements := h.store.Settlements(auc.ID)
	require.Len(t, settlements, 1)
	require.Equal(t, int64(2001), settlements[0].FinalPrice)
	require.Equal(t, int64(1800), settlements[0].SellerNet)
	require.Equal(t, model.SettlementCompleted, settlements[0].Status)

	require.Equal(t, int64(1800), h.balance(seller))
	require.Equal(t, int64(10000-2001), h.balance(bob))
	require.Equal(t, int64(10000-1500), h.balance(alice))

	require.Len(t, h.notifications(bob, model.NotifyWon), 1)
	require.Len(t, h.notifications(alice, model.NotifyLost), 1)
	require.Empty(t, h.notifications(bob, model.NotifyLost))

	ended := h.eventsNamed(model.EventAuctionEnded)
	require.Len(t, ended, 1)
	payload := ended[0].payload.(model.AuctionEndedEvent)
	require.Equal(t, bob, *payload.WinnerID)
	require.Equal(t, int64(2001), *payload.FinalPrice)
	require.Equal(t, EndReasonClosed, payload.Reason)

	require.Len(t, h.mails, 1)
	require.Equal(t, "bob@example.com", h.mails[0].to)
	require.True(t, strings.HasPrefix(h.mails[0].body, "bob, you won"))

	// Sweeping again is a no-op.
	closed, err = h.svc.CloseExpired(h.ctx)
	require.NoError(t, err)
	require.Zero(t, closed)
	require.NoError(t, h.svc.Close(h.ctx, auc.ID))
	require.Len(t, h.store.Settlements(auc.ID), 1)
	require.Len(t, h.notifications(bob, model.NotifyWon), 1)
	require.Equal(t, int64(1800), h.balance(seller))
}

func TestCloseWithoutBidsMarksUnsold(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	auc := h.auction(seller, 1000)

	h.advance(2 * time.Hour)
	closed, err := h.svc.CloseExpired(h.ctx)
	require.NoError(t, err)
	require.Equal(t, 1, closed)

	got := h.get(auc.ID)
	require.Equal(t, model.AuctionUnsold, got.Status)
	require.Nil(t, got.WinnerID)
	require.Empty(t, h.store.Settlements(auc.ID))
	require.Len(t, h.notifications(seller, model.NotifyLost), 1)
	require.Zero(t, h.balance(seller))

	ended := h.eventsNamed(model.EventAuctionEnded)
	require.Len(t, ended, 1)
	payload := ended[0].payload.(model.AuctionEndedEvent)
	require.Nil(t, payload.WinnerID)
	require.Nil(t, payload.FinalPrice)
	require.Equal(t, EndReasonUnsold, payload.Reason)
	require.Empty(t, h.mails)
}

func TestCloseBeforeDeadlineIsNoop(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	auc := h.auction(seller, 1000)

	require.NoError(t, h.svc.Close(h.ctx, auc.ID))
	require.Equal(t, model.AuctionActive, h.get(auc.ID).Status)
	require.ErrorIs(t, h.svc.Close(h.ctx, 987654), ErrNotFound)
}

// flakyStore fails to lock one auction until healed.
type flakyStore struct {
	*repository.MemoryStore
	failID uint64
}

func (s *flakyStore) Begin(ctx context.Context) (repository.Tx, error) {
	tx, err := s.MemoryStore.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &flakyTx{Tx: tx, failID: s.failID}, nil
}

type flakyTx struct {
	repository.Tx
	failID uint64
}

func (t *flakyTx) LockAuction(ctx context.Context, id uint64) (model.Auction, error) {
	if id == t.failID {
		return model.Auction{}, errors.New("lock wait timeout")
	}
	return t.Tx.LockAuction(ctx, id)
}

func TestCloseExpiredIsolatesFailures(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	bad := h.auction(seller, 1000)
	good := h.auction(seller, 1000)

	flaky := &flakyStore{MemoryStore: h.store, failID: bad.ID}
	svc := NewAuctionService(flaky, h.bcast, h.mailer, DefaultOptions())

	h.advance(2 * time.Hour)
	closed, err := svc.CloseExpired(h.ctx)
	require.NoError(t, err)
	require.Equal(t, 1, closed)
	require.Equal(t, model.AuctionActive, h.get(bad.ID).Status)
	require.Equal(t, model.AuctionUnsold, h.get(good.ID).Status)

	flaky.failID = 0
	closed, err = svc.CloseExpired(h.ctx)
	require.NoError(t, err)
	require.Equal(t, 1, closed)
	require.Equal(t, model.AuctionUnsold, h.get(bad.ID).Status)
}

func TestBuyNowSettlesImmediately(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	alice := h.user("alice", 10000)
	bob := h.user("bob", 10000)
	buyNow := int64(5000)
	auc := h.auction(seller, 1000, func(in *NewAuction) { in.BuyNowPrice = &buyNow })
	plain := h.auction(seller, 1000)

	_, err := h.svc.PlaceBid(h.ctx, alice, auc.ID, 2000)
	require.NoError(t, err)
	_, err = h.svc.PlaceBid(h.ctx, bob, auc.ID, 2500)
	require.NoError(t, err)

	_, err = h.svc.BuyNow(h.ctx, seller, auc.ID)
	require.ErrorIs(t, err, ErrSelfBid)
	_, err = h.svc.BuyNow(h.ctx, bob, plain.ID)
	require.ErrorIs(t, err, ErrInvalidState)

	res, err := h.svc.BuyNow(h.ctx, bob, auc.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5000), res.CurrentPrice)

	got := h.get(auc.ID)
	require.Equal(t, model.AuctionClosed, got.Status)
	require.Equal(t, bob, *got.WinnerID)
	require.Equal(t, int64(10000-5000), h.balance(bob))
	require.Equal(t, int64(4500), h.balance(seller))
	require.Len(t, h.store.Settlements(auc.ID), 1)
	require.Len(t, h.notifications(alice, model.NotifyLost), 1)

	_, err = h.svc.BuyNow(h.ctx, alice, auc.ID)
	require.ErrorIs(t, err, ErrInvalidState)

	// The sweep leaves it alone.
	h.advance(2 * time.Hour)
	require.NoError(t, h.svc.Close(h.ctx, auc.ID))
	require.Len(t, h.store.Settlements(auc.ID), 1)
}

func TestFanOutFailuresDoNotUndoCommittedWork(t *testing.T) {
	h := newHarness(t)
	seller := h.user("seller", 0)
	alice := h.user("alice", 10000)
	auc := h.auction(seller, 1000)

	ctrl := gomock.NewController(t)
	events := NewMockBroadcaster(ctrl)
	events.EXPECT().ToAuction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down")).AnyTimes()
	events.EXPECT().ToUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down")).AnyTimes()
	mail := NewMockMailer(ctrl)
	mail.EXPECT().SendMail(gomock.Any(), "alice@example.com", gomock.Any(), gomock.Any()).Return(errors.New("smtp down")).Times(1)
	svc := NewAuctionService(h.store, events, mail, DefaultOptions())

	res, err := svc.PlaceBid(h.ctx, alice, auc.ID, 1500)
	require.NoError(t, err)
	require.Equal(t, int64(1500), res.CurrentPrice)

	h.advance(2 * time.Hour)
	require.NoError(t, svc.Close(h.ctx, auc.ID))
	require.Equal(t, model.AuctionClosed, h.get(auc.ID).Status)
	require.Len(t, h.store.Settlements(auc.ID), 1)
}
