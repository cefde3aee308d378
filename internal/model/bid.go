package model

import "time"

// Bid is an immutable row of the `bids` table.  For any auction the
// prices of its bids, read in insertion order, never decrease.
type Bid struct {
	ID        uint64    `json:"id"`
	AuctionID uint64    `json:"auction_id"`
	UserID    uint64    `json:"user_id"`
	Price     int64     `json:"bid_price"`
	IsAutoBid bool      `json:"is_auto_bid"`
	CreatedAt time.Time `json:"bid_time"`
}

// AutoBid is a proxy bid: the system counter-bids on behalf of UserID
// until MaxPrice is reached.  At most one active row exists per user and
// auction.
type AutoBid struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	AuctionID uint64    `json:"auction_id"`
	MaxPrice  int64     `json:"max_price"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
