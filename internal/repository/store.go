package repository

import (
	"context"
	"time"

	"github.com/iliyamo/auction-house/internal/model"
)

// Store is the transactional ledger consumed by the auction engine.  Reads
// outside a transaction are allowed for listing and sweep discovery; every
// mutation of an auction happens inside a Tx that holds that auction's
// exclusive lock (see Tx.LockAuction).
type Store interface {
	// Begin opens a transaction.  Callers must either Commit or Rollback.
	Begin(ctx context.Context) (Tx, error)
	// Now returns the store's clock.  Expiry checks compare against it so
	// that the sweep process and the data agree on time.
	Now(ctx context.Context) (time.Time, error)

	GetAuction(ctx context.Context, id uint64) (model.Auction, error)
	ListBids(ctx context.Context, auctionID uint64, limit int) ([]model.Bid, error)
	ListActiveAutoBids(ctx context.Context, userID uint64) ([]model.AutoBid, error)
	Balance(ctx context.Context, userID uint64) (int64, error)
	PointHistory(ctx context.Context, userID uint64, limit int) ([]model.PointEntry, error)
	ListNotifications(ctx context.Context, userID uint64, limit int) ([]model.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID uint64) (int64, error)
	UserContact(ctx context.Context, userID uint64) (model.UserContact, error)

	AddFavorite(ctx context.Context, userID, auctionID uint64) error
	RemoveFavorite(ctx context.Context, userID, auctionID uint64) error

	// ActivateDue moves every PENDING auction whose start time has passed
	// to ACTIVE and returns their IDs.
	ActivateDue(ctx context.Context) ([]uint64, error)
	// ListExpiredActive returns ACTIVE auctions whose end time has passed.
	ListExpiredActive(ctx context.Context) ([]uint64, error)
	// ListEndingSoon returns favorites of ACTIVE auctions ending within the
	// window whose owner has no ENDING_SOON notification for that auction.
	ListEndingSoon(ctx context.Context, within time.Duration) ([]model.EndingSoonTarget, error)
	// InsertNotificationOnce stores n unless a notification of the same
	// type already exists for the user and auction.  It reports whether a
	// row was written.
	InsertNotificationOnce(ctx context.Context, n *model.Notification) (bool, error)
}

// Tx is a unit of work against the Store.  Rollback discards every write
// made through it; Commit makes them durable.
type Tx interface {
	Commit() error
	Rollback() error
	Now(ctx context.Context) (time.Time, error)

	// LockAuction loads the auction and holds its exclusive lock until the
	// transaction ends.  It returns ErrNotFound when no such auction exists.
	LockAuction(ctx context.Context, id uint64) (model.Auction, error)
	CreateAuction(ctx context.Context, a *model.Auction) error
	DeleteAuction(ctx context.Context, id uint64) error
	UpdateCurrentPrice(ctx context.Context, auctionID uint64, price int64) error
	// FinishAuction moves the auction to a terminal status.  winnerID is
	// nil for UNSOLD.
	FinishAuction(ctx context.Context, auctionID uint64, status string, winnerID *uint64, price int64) error

	Balance(ctx context.Context, userID uint64) (int64, error)
	AppendPoints(ctx context.Context, e *model.PointEntry) error

	InsertBid(ctx context.Context, b *model.Bid) error
	CountBids(ctx context.Context, auctionID uint64) (int, error)
	// HighestBid returns the top bid of an auction: highest price, then
	// earliest creation time, then lowest ID.  ok is false without bids.
	HighestBid(ctx context.Context, auctionID uint64) (b model.Bid, ok bool, err error)
	// MaxBidBy returns the user's highest bid on the auction, or zero.
	MaxBidBy(ctx context.Context, auctionID, userID uint64) (int64, error)
	BidderIDs(ctx context.Context, auctionID uint64) ([]uint64, error)

	// TopAutoBid returns the active proxy with the highest cap strictly
	// above price, excluding excludeUserID.  Ties go to the earliest
	// created, then the lowest ID.
	TopAutoBid(ctx context.Context, auctionID, excludeUserID uint64, price int64) (a model.AutoBid, ok bool, err error)
	InsertAutoBid(ctx context.Context, a *model.AutoBid) error
	DeactivateAutoBid(ctx context.Context, id uint64) error
	DeactivateAutoBids(ctx context.Context, userID, auctionID uint64) (int64, error)

	InsertNotification(ctx context.Context, n *model.Notification) error
	InsertSettlement(ctx context.Context, s *model.Settlement) error
}
