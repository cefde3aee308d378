package handler // handler exposes the auction engine over HTTP

//go:generate mockgen -source=engine.go -destination=mock_engine.go -package=handler

import (
	"context"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/service"
)

// AuctionEngine is the part of service.AuctionService the HTTP layer
// calls.
type AuctionEngine interface {
	CreateAuction(ctx context.Context, sellerID uint64, in service.NewAuction) (model.Auction, error)
	GetAuction(ctx context.Context, auctionID uint64) (model.Auction, error)
	DeleteAuction(ctx context.Context, userID, auctionID uint64) error
	ListBids(ctx context.Context, auctionID uint64, limit int) ([]model.Bid, error)

	PlaceBid(ctx context.Context, bidderID, auctionID uint64, price int64) (service.BidResult, error)
	BuyNow(ctx context.Context, buyerID, auctionID uint64) (service.BidResult, error)
	SetAutoBid(ctx context.Context, userID, auctionID uint64, maxPrice int64) error
	CancelAutoBid(ctx context.Context, userID, auctionID uint64) error
	MyAutoBids(ctx context.Context, userID uint64) ([]model.AutoBid, error)

	Balance(ctx context.Context, userID uint64) (int64, error)
	ChargePoints(ctx context.Context, userID uint64, amount int64, reason string) (int64, error)
	PointHistory(ctx context.Context, userID uint64, limit int) ([]model.PointEntry, error)
	Notifications(ctx context.Context, userID uint64, limit int) ([]model.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID uint64) (int64, error)
	AddFavorite(ctx context.Context, userID, auctionID uint64) error
	RemoveFavorite(ctx context.Context, userID, auctionID uint64) error
}

var _ AuctionEngine = (*service.AuctionService)(nil)
