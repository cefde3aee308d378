package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/auction-house/internal/model"
)

const auctionColumns = `id, seller_id, title, category, start_price, current_price,
	buy_now_price, start_time, end_time, status, winner_id, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuction(row rowScanner) (model.Auction, error) {
	var a model.Auction
	var buyNow, winner sql.NullInt64
	err := row.Scan(
		&a.ID, &a.SellerID, &a.Title, &a.Category, &a.StartPrice, &a.CurrentPrice,
		&buyNow, &a.StartTime, &a.EndTime, &a.Status, &winner, &a.CreatedAt,
	)
	if err != nil {
		return model.Auction{}, err
	}
	a.BuyNowPrice = nullInt(buyNow)
	a.WinnerID = nullUint(winner)
	a.StartTime = a.StartTime.UTC()
	a.EndTime = a.EndTime.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

// GetAuction loads an auction without locking it.
func (s *SQLStore) GetAuction(ctx context.Context, id uint64) (model.Auction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+auctionColumns+` FROM auction_items WHERE id = ?`, id)
	a, err := scanAuction(row)
	if err != nil {
		return model.Auction{}, notFound(err)
	}
	return a, nil
}

// ActivateDue flips every pending auction whose start time has passed to
// active.  The candidate rows are locked first so that a concurrent
// sweep cannot activate the same auction twice.
func (s *SQLStore) ActivateDue(ctx context.Context) ([]uint64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM auction_items
		 WHERE status = ? AND start_time <= UTC_TIMESTAMP(6)
		 FOR UPDATE`, model.AuctionPending)
	if err != nil {
		return nil, err
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, model.AuctionActive)
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `UPDATE auction_items SET status = ? WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return ids, nil
}

// ListExpiredActive returns the IDs of active auctions past their end
// time, oldest deadline first.
func (s *SQLStore) ListExpiredActive(ctx context.Context) ([]uint64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM auction_items
		 WHERE status = ? AND end_time < UTC_TIMESTAMP(6)
		 ORDER BY end_time, id`, model.AuctionActive)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

func scanIDs(rows *sql.Rows) ([]uint64, error) {
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// LockAuction selects the auction row FOR UPDATE.  The lock is released
// when the transaction ends.
func (t *sqlTx) LockAuction(ctx context.Context, id uint64) (model.Auction, error) {
	row := t.tx.QueryRowContext(ctx, `SELECT `+auctionColumns+` FROM auction_items WHERE id = ? FOR UPDATE`, id)
	a, err := scanAuction(row)
	if err != nil {
		return model.Auction{}, notFound(err)
	}
	return a, nil
}

// CreateAuction inserts a listing and populates its generated ID.
func (t *sqlTx) CreateAuction(ctx context.Context, a *model.Auction) error {
	const q = `INSERT INTO auction_items
		(seller_id, title, category, start_price, current_price, buy_now_price,
		 start_time, end_time, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var buyNow sql.NullInt64
	if a.BuyNowPrice != nil {
		buyNow = sql.NullInt64{Int64: *a.BuyNowPrice, Valid: true}
	}
	res, err := t.tx.ExecContext(ctx, q,
		a.SellerID, a.Title, a.Category, a.StartPrice, a.CurrentPrice, buyNow,
		a.StartTime.UTC(), a.EndTime.UTC(), a.Status, a.CreatedAt.UTC(),
	)
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

// DeleteAuction removes the auction row.  Favorites and auto-bids cascade
// through foreign keys.
func (t *sqlTx) DeleteAuction(ctx context.Context, id uint64) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM auction_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *sqlTx) UpdateCurrentPrice(ctx context.Context, auctionID uint64, price int64) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE auction_items SET current_price = ? WHERE id = ?`, price, auctionID)
	return err
}

// FinishAuction records the terminal status, the winner (nil for unsold)
// and the final price.
func (t *sqlTx) FinishAuction(ctx context.Context, auctionID uint64, status string, winnerID *uint64, price int64) error {
	var winner sql.NullInt64
	if winnerID != nil {
		winner = sql.NullInt64{Int64: int64(*winnerID), Valid: true}
	}
	_, err := t.tx.ExecContext(ctx,
		`UPDATE auction_items SET status = ?, winner_id = ?, current_price = ? WHERE id = ?`,
		status, winner, price, auctionID)
	return err
}
