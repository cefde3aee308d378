package repository

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/auction-house/internal/model"
)

type favoriteKey struct {
	userID    uint64
	auctionID uint64
}

// MemoryStore is an in-process Store used for local runs and tests.  Each
// auction has an exclusive lease (a one slot semaphore) that a transaction
// acquires in LockAuction and releases on Commit or Rollback, which gives
// the same per-auction serialization as FOR UPDATE.  Writes are applied
// immediately and undone on Rollback.
type MemoryStore struct {
	mu  sync.Mutex
	now func() time.Time

	leases map[uint64]chan struct{}

	seq           uint64
	users         map[uint64]model.UserContact
	auctions      map[uint64]model.Auction
	bids          []model.Bid
	autoBids      []model.AutoBid
	points        []model.PointEntry
	notifications []model.Notification
	favorites     map[favoriteKey]time.Time
	settlements   []model.Settlement
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.  now is the store clock; nil
// means the wall clock in UTC.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &MemoryStore{
		now:       now,
		leases:    make(map[uint64]chan struct{}),
		users:     make(map[uint64]model.UserContact),
		auctions:  make(map[uint64]model.Auction),
		favorites: make(map[favoriteKey]time.Time),
	}
}

// AddUser registers a user contact.  The ID is assigned when zero.
func (s *MemoryStore) AddUser(u model.UserContact) model.UserContact {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.nextID()
	}
	s.users[u.ID] = u
	return u
}

// Settlements returns a copy of every settlement recorded for the auction.
func (s *MemoryStore) Settlements(auctionID uint64) []model.Settlement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Settlement, 0)
	for _, st := range s.settlements {
		if st.AuctionID == auctionID {
			out = append(out, st)
		}
	}
	return out
}

func (s *MemoryStore) nextID() uint64 {
	s.seq++
	return s.seq
}

func (s *MemoryStore) lease(id uint64) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leases[id]
	if !ok {
		l = make(chan struct{}, 1)
		s.leases[id] = l
	}
	return l
}

func (s *MemoryStore) acquire(ctx context.Context, id uint64) error {
	select {
	case s.lease(id) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MemoryStore) release(id uint64) { <-s.lease(id) }

func (s *MemoryStore) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memTx{s: s}, nil
}

func (s *MemoryStore) Now(context.Context) (time.Time, error) { return s.now(), nil }

func (s *MemoryStore) GetAuction(_ context.Context, id uint64) (model.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[id]
	if !ok {
		return model.Auction{}, ErrNotFound
	}
	return a, nil
}

func (s *MemoryStore) ListBids(_ context.Context, auctionID uint64, limit int) ([]model.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Bid, 0)
	for i := len(s.bids) - 1; i >= 0 && len(out) < limit; i-- {
		if s.bids[i].AuctionID == auctionID {
			out = append(out, s.bids[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) ListActiveAutoBids(_ context.Context, userID uint64) ([]model.AutoBid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AutoBid, 0)
	for i := len(s.autoBids) - 1; i >= 0; i-- {
		if a := s.autoBids[i]; a.UserID == userID && a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) Balance(_ context.Context, userID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance(userID), nil
}

func (s *MemoryStore) balance(userID uint64) int64 {
	var total int64
	for _, e := range s.points {
		if e.UserID == userID {
			total += e.Amount
		}
	}
	return total
}

func (s *MemoryStore) PointHistory(_ context.Context, userID uint64, limit int) ([]model.PointEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PointEntry, 0)
	for i := len(s.points) - 1; i >= 0 && len(out) < limit; i-- {
		if s.points[i].UserID == userID {
			out = append(out, s.points[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) ListNotifications(_ context.Context, userID uint64, limit int) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, 0)
	for i := len(s.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if s.notifications[i].UserID == userID {
			out = append(out, s.notifications[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) MarkNotificationsRead(_ context.Context, userID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && !s.notifications[i].IsRead {
			s.notifications[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) UserContact(_ context.Context, userID uint64) (model.UserContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return model.UserContact{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) AddFavorite(_ context.Context, userID, auctionID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.auctions[auctionID]; !ok {
		return ErrNotFound
	}
	k := favoriteKey{userID, auctionID}
	if _, ok := s.favorites[k]; ok {
		return ErrConflict
	}
	s.favorites[k] = s.now()
	return nil
}

func (s *MemoryStore) RemoveFavorite(_ context.Context, userID, auctionID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := favoriteKey{userID, auctionID}
	if _, ok := s.favorites[k]; !ok {
		return ErrNotFound
	}
	delete(s.favorites, k)
	return nil
}

// ActivateDue takes each candidate's lease before flipping it so that it
// never races a transaction working on the same auction.
func (s *MemoryStore) ActivateDue(ctx context.Context) ([]uint64, error) {
	s.mu.Lock()
	now := s.now()
	candidates := make([]uint64, 0)
	for id, a := range s.auctions {
		if a.Status == model.AuctionPending && !a.StartTime.After(now) {
			candidates = append(candidates, id)
		}
	}
	s.mu.Unlock()
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	ids := make([]uint64, 0, len(candidates))
	for _, id := range candidates {
		if err := s.acquire(ctx, id); err != nil {
			return ids, err
		}
		s.mu.Lock()
		if a, ok := s.auctions[id]; ok && a.Status == model.AuctionPending {
			a.Status = model.AuctionActive
			s.auctions[id] = a
			ids = append(ids, id)
		}
		s.mu.Unlock()
		s.release(id)
	}
	return ids, nil
}

func (s *MemoryStore) ListExpiredActive(context.Context) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	list := make([]model.Auction, 0)
	for _, a := range s.auctions {
		if a.Status == model.AuctionActive && a.Expired(now) {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].EndTime.Equal(list[j].EndTime) {
			return list[i].EndTime.Before(list[j].EndTime)
		}
		return list[i].ID < list[j].ID
	})
	ids := make([]uint64, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (s *MemoryStore) ListEndingSoon(_ context.Context, within time.Duration) ([]model.EndingSoonTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	out := make([]model.EndingSoonTarget, 0)
	for k := range s.favorites {
		a, ok := s.auctions[k.auctionID]
		if !ok || a.Status != model.AuctionActive {
			continue
		}
		if !a.EndTime.After(now) || a.EndTime.After(now.Add(within)) {
			continue
		}
		if s.hasNotification(k.userID, k.auctionID, model.NotifyEndingSoon) {
			continue
		}
		out = append(out, model.EndingSoonTarget{
			UserID: k.userID, AuctionID: a.ID, Title: a.Title, CurrentPrice: a.CurrentPrice,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AuctionID != out[j].AuctionID {
			return out[i].AuctionID < out[j].AuctionID
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (s *MemoryStore) hasNotification(userID, auctionID uint64, typ string) bool {
	for _, n := range s.notifications {
		if n.UserID == userID && n.AuctionID == auctionID && n.Type == typ {
			return true
		}
	}
	return false
}

func (s *MemoryStore) InsertNotificationOnce(_ context.Context, n *model.Notification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasNotification(n.UserID, n.AuctionID, n.Type) {
		return false, nil
	}
	n.ID = s.nextID()
	s.notifications = append(s.notifications, *n)
	return true, nil
}

// memTx records an undo closure for every write.
type memTx struct {
	s      *MemoryStore
	held   []uint64
	undo   []func()
	closed bool
}

func (t *memTx) finish() {
	for _, id := range t.held {
		t.s.release(id)
	}
	t.held = nil
	t.undo = nil
	t.closed = true
}

func (t *memTx) Commit() error {
	if t.closed {
		return sql.ErrTxDone
	}
	t.finish()
	return nil
}

func (t *memTx) Rollback() error {
	if t.closed {
		return sql.ErrTxDone
	}
	t.s.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.s.mu.Unlock()
	t.finish()
	return nil
}

func (t *memTx) Now(ctx context.Context) (time.Time, error) { return t.s.Now(ctx) }

// write runs fn under the data mutex and keeps its undo closure.
func (t *memTx) write(fn func() func()) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if undo := fn(); undo != nil {
		t.undo = append(t.undo, undo)
	}
}

func (t *memTx) LockAuction(ctx context.Context, id uint64) (model.Auction, error) {
	if t.closed {
		return model.Auction{}, sql.ErrTxDone
	}
	if _, err := t.s.GetAuction(ctx, id); err != nil {
		return model.Auction{}, err
	}
	held := false
	for _, h := range t.held {
		held = held || h == id
	}
	if !held {
		if err := t.s.acquire(ctx, id); err != nil {
			return model.Auction{}, err
		}
		t.held = append(t.held, id)
	}
	// Re-read under the lease; the auction may have been deleted while
	// waiting.
	return t.s.GetAuction(ctx, id)
}

func (t *memTx) CreateAuction(_ context.Context, a *model.Auction) error {
	t.write(func() func() {
		a.ID = t.s.nextID()
		t.s.auctions[a.ID] = *a
		id := a.ID
		return func() { delete(t.s.auctions, id) }
	})
	return nil
}

func (t *memTx) DeleteAuction(_ context.Context, id uint64) error {
	var err error
	t.write(func() func() {
		a, ok := t.s.auctions[id]
		if !ok {
			err = ErrNotFound
			return nil
		}
		favs := make(map[favoriteKey]time.Time)
		for k, v := range t.s.favorites {
			if k.auctionID == id {
				favs[k] = v
				delete(t.s.favorites, k)
			}
		}
		autoBids := t.s.autoBids
		kept := make([]model.AutoBid, 0, len(autoBids))
		for _, ab := range autoBids {
			if ab.AuctionID != id {
				kept = append(kept, ab)
			}
		}
		t.s.autoBids = kept
		delete(t.s.auctions, id)
		return func() {
			t.s.auctions[id] = a
			t.s.autoBids = autoBids
			for k, v := range favs {
				t.s.favorites[k] = v
			}
		}
	})
	return err
}

func (t *memTx) UpdateCurrentPrice(_ context.Context, auctionID uint64, price int64) error {
	return t.updateAuction(auctionID, func(a *model.Auction) { a.CurrentPrice = price })
}

func (t *memTx) FinishAuction(_ context.Context, auctionID uint64, status string, winnerID *uint64, price int64) error {
	return t.updateAuction(auctionID, func(a *model.Auction) {
		a.Status = status
		a.WinnerID = winnerID
		a.CurrentPrice = price
	})
}

func (t *memTx) updateAuction(id uint64, mutate func(a *model.Auction)) error {
	var err error
	t.write(func() func() {
		prev, ok := t.s.auctions[id]
		if !ok {
			err = ErrNotFound
			return nil
		}
		next := prev
		mutate(&next)
		t.s.auctions[id] = next
		return func() { t.s.auctions[id] = prev }
	})
	return err
}

func (t *memTx) Balance(_ context.Context, userID uint64) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.balance(userID), nil
}

func (t *memTx) AppendPoints(_ context.Context, e *model.PointEntry) error {
	t.write(func() func() {
		e.ID = t.s.nextID()
		n := len(t.s.points)
		t.s.points = append(t.s.points, *e)
		id := e.ID
		return func() { t.s.points = removeAt(t.s.points, n, func(p model.PointEntry) bool { return p.ID == id }) }
	})
	return nil
}

func (t *memTx) InsertBid(_ context.Context, b *model.Bid) error {
	t.write(func() func() {
		b.ID = t.s.nextID()
		n := len(t.s.bids)
		t.s.bids = append(t.s.bids, *b)
		id := b.ID
		return func() { t.s.bids = removeAt(t.s.bids, n, func(x model.Bid) bool { return x.ID == id }) }
	})
	return nil
}

func (t *memTx) CountBids(_ context.Context, auctionID uint64) (int, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	n := 0
	for _, b := range t.s.bids {
		if b.AuctionID == auctionID {
			n++
		}
	}
	return n, nil
}

func (t *memTx) HighestBid(_ context.Context, auctionID uint64) (model.Bid, bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var best model.Bid
	found := false
	for _, b := range t.s.bids {
		if b.AuctionID != auctionID {
			continue
		}
		if !found || bidRanksAbove(b, best) {
			best, found = b, true
		}
	}
	return best, found, nil
}

func bidRanksAbove(a, b model.Bid) bool {
	if a.Price != b.Price {
		return a.Price > b.Price
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func (t *memTx) MaxBidBy(_ context.Context, auctionID, userID uint64) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var max int64
	for _, b := range t.s.bids {
		if b.AuctionID == auctionID && b.UserID == userID && b.Price > max {
			max = b.Price
		}
	}
	return max, nil
}

func (t *memTx) BidderIDs(_ context.Context, auctionID uint64) ([]uint64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	seen := make(map[uint64]bool)
	ids := make([]uint64, 0)
	for _, b := range t.s.bids {
		if b.AuctionID == auctionID && !seen[b.UserID] {
			seen[b.UserID] = true
			ids = append(ids, b.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (t *memTx) TopAutoBid(_ context.Context, auctionID, excludeUserID uint64, price int64) (model.AutoBid, bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var best model.AutoBid
	found := false
	for _, a := range t.s.autoBids {
		if a.AuctionID != auctionID || !a.Active || a.UserID == excludeUserID || a.MaxPrice <= price {
			continue
		}
		if !found || autoBidRanksAbove(a, best) {
			best, found = a, true
		}
	}
	return best, found, nil
}

func autoBidRanksAbove(a, b model.AutoBid) bool {
	if a.MaxPrice != b.MaxPrice {
		return a.MaxPrice > b.MaxPrice
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func (t *memTx) InsertAutoBid(_ context.Context, a *model.AutoBid) error {
	t.write(func() func() {
		a.ID = t.s.nextID()
		n := len(t.s.autoBids)
		t.s.autoBids = append(t.s.autoBids, *a)
		id := a.ID
		return func() { t.s.autoBids = removeAt(t.s.autoBids, n, func(x model.AutoBid) bool { return x.ID == id }) }
	})
	return nil
}

func (t *memTx) DeactivateAutoBid(_ context.Context, id uint64) error {
	t.setAutoBidsInactive(func(a model.AutoBid) bool { return a.ID == id })
	return nil
}

func (t *memTx) DeactivateAutoBids(_ context.Context, userID, auctionID uint64) (int64, error) {
	n := t.setAutoBidsInactive(func(a model.AutoBid) bool {
		return a.UserID == userID && a.AuctionID == auctionID
	})
	return n, nil
}

func (t *memTx) setAutoBidsInactive(match func(model.AutoBid) bool) int64 {
	var n int64
	t.write(func() func() {
		changed := make([]uint64, 0)
		for i := range t.s.autoBids {
			if t.s.autoBids[i].Active && match(t.s.autoBids[i]) {
				t.s.autoBids[i].Active = false
				changed = append(changed, t.s.autoBids[i].ID)
			}
		}
		n = int64(len(changed))
		if n == 0 {
			return nil
		}
		return func() {
			for i := range t.s.autoBids {
				for _, id := range changed {
					if t.s.autoBids[i].ID == id {
						t.s.autoBids[i].Active = true
					}
				}
			}
		}
	})
	return n
}

func (t *memTx) InsertNotification(_ context.Context, n *model.Notification) error {
	t.write(func() func() {
		n.ID = t.s.nextID()
		idx := len(t.s.notifications)
		t.s.notifications = append(t.s.notifications, *n)
		id := n.ID
		return func() {
			t.s.notifications = removeAt(t.s.notifications, idx, func(x model.Notification) bool { return x.ID == id })
		}
	})
	return nil
}

func (t *memTx) InsertSettlement(_ context.Context, st *model.Settlement) error {
	var err error
	t.write(func() func() {
		for _, existing := range t.s.settlements {
			if existing.AuctionID == st.AuctionID {
				err = ErrConflict
				return nil
			}
		}
		st.ID = t.s.nextID()
		idx := len(t.s.settlements)
		t.s.settlements = append(t.s.settlements, *st)
		id := st.ID
		return func() {
			t.s.settlements = removeAt(t.s.settlements, idx, func(x model.Settlement) bool { return x.ID == id })
		}
	})
	return err
}

// removeAt drops the element at hint if it matches, otherwise the first
// matching element.  Other transactions may have appended after hint.
func removeAt[T any](list []T, hint int, match func(T) bool) []T {
	i := -1
	if hint < len(list) && match(list[hint]) {
		i = hint
	} else {
		for j := range list {
			if match(list[j]) {
				i = j
				break
			}
		}
	}
	if i < 0 {
		return list
	}
	return append(list[:i:i], list[i+1:]...)
}
