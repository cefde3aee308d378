package repository

import (
	"context"

	"github.com/iliyamo/auction-house/internal/model"
)

// Balance sums the user's point entries outside any transaction.
func (s *SQLStore) Balance(ctx context.Context, userID uint64) (int64, error) {
	return balanceOf(ctx, s.db, userID)
}

func (t *sqlTx) Balance(ctx context.Context, userID uint64) (int64, error) {
	return balanceOf(ctx, t.tx, userID)
}

func balanceOf(ctx context.Context, q queryer, userID uint64) (int64, error) {
	var total int64
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM points WHERE user_id = ?`, userID).Scan(&total)
	return total, err
}

// PointHistory lists the user's ledger entries, newest first.
func (s *SQLStore) PointHistory(ctx context.Context, userID uint64, limit int) ([]model.PointEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, amount, reason, created_at FROM points
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PointEntry, 0)
	for rows.Next() {
		var e model.PointEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendPoints inserts a signed ledger entry.
func (t *sqlTx) AppendPoints(ctx context.Context, e *model.PointEntry) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO points (user_id, amount, reason, created_at) VALUES (?, ?, ?, ?)`,
		e.UserID, e.Amount, e.Reason, e.CreatedAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// InsertSettlement records the closing transaction.  auction_id is unique
// so a second settlement of the same auction fails.
func (t *sqlTx) InsertSettlement(ctx context.Context, s *model.Settlement) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO auction_transactions
		 (auction_id, seller_id, buyer_id, final_price, seller_net, transaction_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.AuctionID, s.SellerID, s.BuyerID, s.FinalPrice, s.SellerNet, s.Status, s.CreatedAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}
