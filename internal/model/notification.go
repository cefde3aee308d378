package model

import "time"

// Notification types stored in `auction_notifications`.
const (
	NotifyOutbid     = "outbid"
	NotifyEndingSoon = "ending_soon"
	NotifyWon        = "won"
	NotifyLost       = "lost"
)

// Notification is a per-user message derived from bids and lifecycle
// transitions.  ENDING_SOON notifications are unique per user and
// auction.
type Notification struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	AuctionID uint64    `json:"auction_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// EndingSoonTarget is a favorite of an active auction that is about to
// close and whose owner has not been warned yet.
type EndingSoonTarget struct {
	UserID       uint64
	AuctionID    uint64
	Title        string
	CurrentPrice int64
}

// UserContact carries what the mail boundary needs to reach a user.
type UserContact struct {
	ID    uint64
	Email string
	Name  string
}
