package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type sentEvent struct {
	auctionID uint64
	userID    uint64
	name      string
	payload   any
}

type sentMail struct {
	to, subject, body string
}

// harness wires the engine to a memory store with a controllable clock
// and gomock boundaries that record everything they receive.
type harness struct {
	t     *testing.T
	ctx   context.Context
	store  *repository.MemoryStore
	svc    *AuctionService
	bcast  *MockBroadcaster
	mailer *MockMailer

	mu     sync.Mutex
	clock  time.Time
	events []sentEvent
	mails  []sentMail
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{t: t, ctx: context.Background(), clock: t0}
	h.store = repository.NewMemoryStore(h.now)

	events := NewMockBroadcaster(ctrl)
	events.EXPECT().ToAuction(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uint64, name string, payload any) error {
			h.record(sentEvent{auctionID: id, name: name, payload: payload})
			return nil
		}).AnyTimes()
	events.EXPECT().ToUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uint64, name string, payload any) error {
			h.record(sentEvent{userID: id, name: name, payload: payload})
			return nil
		}).AnyTimes()

	mail := NewMockMailer(ctrl)
	mail.EXPECT().SendMail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, to, subject, body string) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.mails = append(h.mails, sentMail{to: to, subject: subject, body: body})
			return nil
		}).AnyTimes()

	h.bcast, h.mailer = events, mail
	h.svc = NewAuctionService(h.store, events, mail, DefaultOptions())
	return h
}

func (h *harness) now() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clock
}

func (h *harness) advance(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clock = h.clock.Add(d)
}

func (h *harness) record(e sentEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *harness) eventsNamed(name string) []sentEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]sentEvent, 0)
	for _, e := range h.events {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

// user registers a user and charges their balance.
func (h *harness) user(name string, balance int64) uint64 {
	h.t.Helper()
	u := h.store.AddUser(model.UserContact{Email: name + "@example.com", Name: name})
	if balance > 0 {
		_, err := h.svc.ChargePoints(h.ctx, u.ID, balance, "seed")
		require.NoError(h.t, err)
	}
	return u.ID
}

func (h *harness) auction(sellerID uint64, startPrice int64, mutate ...func(*NewAuction)) model.Auction {
	h.t.Helper()
	in := NewAuction{
		Title:      "Vintage camera",
		Category:   "electronics",
		StartPrice: startPrice,
		EndTime:    h.now().Add(time.Hour),
	}
	for _, m := range mutate {
		m(&in)
	}
	a, err := h.svc.CreateAuction(h.ctx, sellerID, in)
	require.NoError(h.t, err)
	return a
}

func (h *harness) balance(userID uint64) int64 {
	h.t.Helper()
	b, err := h.svc.Balance(h.ctx, userID)
	require.NoError(h.t, err)
	return b
}

func (h *harness) get(auctionID uint64) model.Auction {
	h.t.Helper()
	a, err := h.svc.GetAuction(h.ctx, auctionID)
	require.NoError(h.t, err)
	return a
}

func (h *harness) notifications(userID uint64, typ string) []model.Notification {
	h.t.Helper()
	list, err := h.svc.Notifications(h.ctx, userID, 0)
	require.NoError(h.t, err)
	out := make([]model.Notification, 0)
	for _, n := range list {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

// bidsOldestFirst returns the auction's bids in insertion order.
func (h *harness) bidsOldestFirst(auctionID uint64) []model.Bid {
	h.t.Helper()
	list, err := h.svc.ListBids(h.ctx, auctionID, maxListLimit)
	require.NoError(h.t, err)
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list
}
