package model

import "time"

// Auction lifecycle states.  An auction starts PENDING when its start
// time lies in the future, becomes ACTIVE once that time passes, and ends
// in exactly one terminal state: CLOSED (a winner exists) or UNSOLD.
const (
	AuctionPending = "pending"
	AuctionActive  = "active"
	AuctionClosed  = "closed"
	AuctionUnsold  = "unsold"
)

// Auction represents a listed item as stored in the `auction_items`
// table.  CurrentPrice never drops below StartPrice and only grows while
// the auction is ACTIVE.  WinnerID is set if and only if Status is
// CLOSED.
//
// Fields:
//  ID           – primary key identifier.
//  SellerID     – user who listed the item.
//  Title        – short listing title, reused in notification messages.
//  Category     – free-form category label.
//  StartPrice   – opening price in currency units.
//  CurrentPrice – highest accepted bid, or StartPrice before any bid.
//  BuyNowPrice  – optional instant purchase price.
//  StartTime    – scheduled opening.
//  EndTime      – bidding deadline.
//  Status       – one of the Auction* constants.
//  WinnerID     – winning bidder once closed.
type Auction struct {
	ID           uint64    `json:"id"`            // auction_items.id
	SellerID     uint64    `json:"seller_id"`     // auction_items.seller_id
	Title        string    `json:"title"`         // auction_items.title
	Category     string    `json:"category"`      // auction_items.category
	StartPrice   int64     `json:"start_price"`   // auction_items.start_price
	CurrentPrice int64     `json:"current_price"` // auction_items.current_price
	BuyNowPrice  *int64    `json:"buy_now_price,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	WinnerID     *uint64   `json:"winner_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Expired reports whether the bidding window has closed at now.
func (a Auction) Expired(now time.Time) bool {
	return now.After(a.EndTime)
}
