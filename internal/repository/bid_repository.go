package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/auction-house/internal/model"
)

const bidColumns = `id, auction_id, user_id, bid_price, is_auto_bid, bid_time`

func scanBid(row rowScanner) (model.Bid, error) {
	var b model.Bid
	if err := row.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Price, &b.IsAutoBid, &b.CreatedAt); err != nil {
		return model.Bid{}, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	return b, nil
}

// ListBids returns the most recent bids of an auction, newest first.
func (s *SQLStore) ListBids(ctx context.Context, auctionID uint64, limit int) ([]model.Bid, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE auction_id = ?
		 ORDER BY bid_time DESC, id DESC LIMIT ?`, auctionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bids := make([]model.Bid, 0)
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bids, nil
}

// InsertBid appends a bid and populates its generated ID.  bid_time is
// taken from the record so that it matches the store clock read inside
// the same transaction.
func (t *sqlTx) InsertBid(ctx context.Context, b *model.Bid) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO bids (auction_id, user_id, bid_price, is_auto_bid, bid_time) VALUES (?, ?, ?, ?, ?)`,
		b.AuctionID, b.UserID, b.Price, b.IsAutoBid, b.CreatedAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

func (t *sqlTx) CountBids(ctx context.Context, auctionID uint64) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bids WHERE auction_id = ?`, auctionID).Scan(&n)
	return n, err
}

// HighestBid orders by price, then time, then ID so that equal prices
// always resolve to the earliest bid.
func (t *sqlTx) HighestBid(ctx context.Context, auctionID uint64) (model.Bid, bool, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE auction_id = ?
		 ORDER BY bid_price DESC, bid_time ASC, id ASC LIMIT 1`, auctionID)
	b, err := scanBid(row)
	if err == sql.ErrNoRows {
		return model.Bid{}, false, nil
	}
	if err != nil {
		return model.Bid{}, false, err
	}
	return b, true, nil
}

func (t *sqlTx) MaxBidBy(ctx context.Context, auctionID, userID uint64) (int64, error) {
	var max int64
	err := t.tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(bid_price), 0) FROM bids WHERE auction_id = ? AND user_id = ?`,
		auctionID, userID).Scan(&max)
	return max, err
}

func (t *sqlTx) BidderIDs(ctx context.Context, auctionID uint64) ([]uint64, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM bids WHERE auction_id = ? ORDER BY user_id`, auctionID)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

const autoBidColumns = `id, user_id, auction_id, max_price, active, created_at`

func scanAutoBid(row rowScanner) (model.AutoBid, error) {
	var a model.AutoBid
	if err := row.Scan(&a.ID, &a.UserID, &a.AuctionID, &a.MaxPrice, &a.Active, &a.CreatedAt); err != nil {
		return model.AutoBid{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

// ListActiveAutoBids returns the user's active proxies, newest first.
func (s *SQLStore) ListActiveAutoBids(ctx context.Context, userID uint64) ([]model.AutoBid, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+autoBidColumns+` FROM auto_bids WHERE user_id = ? AND active = TRUE
		 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AutoBid, 0)
	for rows.Next() {
		a, err := scanAutoBid(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *sqlTx) TopAutoBid(ctx context.Context, auctionID, excludeUserID uint64, price int64) (model.AutoBid, bool, error) {
	row := t.tx.QueryRowContext(ctx,
		`SELECT `+autoBidColumns+` FROM auto_bids
		 WHERE auction_id = ? AND active = TRUE AND user_id <> ? AND max_price > ?
		 ORDER BY max_price DESC, created_at ASC, id ASC LIMIT 1`,
		auctionID, excludeUserID, price)
	a, err := scanAutoBid(row)
	if err == sql.ErrNoRows {
		return model.AutoBid{}, false, nil
	}
	if err != nil {
		return model.AutoBid{}, false, err
	}
	return a, true, nil
}

func (t *sqlTx) InsertAutoBid(ctx context.Context, a *model.AutoBid) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO auto_bids (user_id, auction_id, max_price, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.UserID, a.AuctionID, a.MaxPrice, a.Active, a.CreatedAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

func (t *sqlTx) DeactivateAutoBid(ctx context.Context, id uint64) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE auto_bids SET active = FALSE WHERE id = ?`, id)
	return err
}

func (t *sqlTx) DeactivateAutoBids(ctx context.Context, userID, auctionID uint64) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE auto_bids SET active = FALSE WHERE user_id = ? AND auction_id = ? AND active = TRUE`,
		userID, auctionID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
