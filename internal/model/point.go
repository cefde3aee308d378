package model

import "time"

// PointEntry is one signed movement on the append-only `points` ledger.
// A user's balance is the sum of all of their entries; entries are never
// updated or deleted.
type PointEntry struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
