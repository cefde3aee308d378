package model

import "time"

// Realtime event names delivered to the fan-out boundary.
const (
	EventNewBid       = "new_bid"
	EventPriceUpdate  = "price_update"
	EventAuctionEnded = "auction_ended"
	EventNotification = "notification"
)

// NewBidEvent is broadcast to an auction's viewers for every accepted bid.
type NewBidEvent struct {
	UserID    uint64    `json:"userId"`
	BidPrice  int64     `json:"bidPrice"`
	IsAutoBid bool      `json:"isAutoBid"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceUpdateEvent carries the auction's new current price.
type PriceUpdateEvent struct {
	CurrentPrice int64 `json:"currentPrice"`
}

// AuctionEndedEvent is broadcast once when an auction closes.  WinnerID
// and FinalPrice are nil for unsold auctions.
type AuctionEndedEvent struct {
	AuctionID  uint64  `json:"auctionId"`
	WinnerID   *uint64 `json:"winnerId"`
	FinalPrice *int64  `json:"finalPrice"`
	Reason     string  `json:"reason"`
}

// NotificationEvent is pushed to a single user's private channel.
type NotificationEvent struct {
	Type      string `json:"type"`
	AuctionID uint64 `json:"auctionId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
}
