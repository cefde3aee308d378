package model

import "time"

// Settlement status values for `auction_transactions.transaction_status`.
const (
	SettlementCompleted = "completed"
)

// Settlement mirrors a row of `auction_transactions`.  Exactly one row
// exists for every CLOSED auction and none for UNSOLD ones.
type Settlement struct {
	ID         uint64    `json:"id"`
	AuctionID  uint64    `json:"auction_id"`
	SellerID   uint64    `json:"seller_id"`
	BuyerID    uint64    `json:"buyer_id"`
	FinalPrice int64     `json:"final_price"`
	SellerNet  int64     `json:"seller_net"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
