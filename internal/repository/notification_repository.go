package repository

import (
	"context"
	"time"

	"github.com/iliyamo/auction-house/internal/model"
)

const notificationColumns = `id, user_id, auction_id, type, message, is_read, created_at`

func (t *sqlTx) InsertNotification(ctx context.Context, n *model.Notification) error {
	return insertNotification(ctx, t.tx, n)
}

func insertNotification(ctx context.Context, q queryer, n *model.Notification) error {
	res, err := q.ExecContext(ctx,
		`INSERT INTO auction_notifications (user_id, auction_id, type, message, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, n.AuctionID, n.Type, n.Message, n.IsRead, n.CreatedAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// InsertNotificationOnce writes n only when no notification of the same
// type exists for the user and auction.  The existence check and the
// insert are a single statement.
func (s *SQLStore) InsertNotificationOnce(ctx context.Context, n *model.Notification) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO auction_notifications (user_id, auction_id, type, message, is_read, created_at)
		 SELECT ?, ?, ?, ?, ?, ? FROM DUAL
		 WHERE NOT EXISTS (
		   SELECT 1 FROM auction_notifications WHERE user_id = ? AND auction_id = ? AND type = ?
		 )`,
		n.UserID, n.AuctionID, n.Type, n.Message, n.IsRead, n.CreatedAt.UTC(),
		n.UserID, n.AuctionID, n.Type)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil || affected == 0 {
		return false, err
	}
	if id, err := res.LastInsertId(); err == nil {
		n.ID = uint64(id)
	}
	return true, nil
}

// ListNotifications returns the user's notifications, newest first.
func (s *SQLStore) ListNotifications(ctx context.Context, userID uint64, limit int) ([]model.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM auction_notifications
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.AuctionID, &n.Type, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.CreatedAt = n.CreatedAt.UTC()
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationsRead flags every unread notification of the user and
// returns how many changed.
func (s *SQLStore) MarkNotificationsRead(ctx context.Context, userID uint64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE auction_notifications SET is_read = TRUE WHERE user_id = ? AND is_read = FALSE`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AddFavorite stores a (user, auction) favorite.  It returns ErrNotFound
// for an unknown auction and ErrConflict when the pair already exists.
func (s *SQLStore) AddFavorite(ctx context.Context, userID, auctionID uint64) error {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM auction_items WHERE id = ?)`, auctionID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auction_favorites (user_id, auction_id, created_at) VALUES (?, ?, UTC_TIMESTAMP(6))`,
		userID, auctionID)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

func (s *SQLStore) RemoveFavorite(ctx context.Context, userID, auctionID uint64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM auction_favorites WHERE user_id = ? AND auction_id = ?`, userID, auctionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEndingSoon joins favorites with active auctions whose end time
// falls inside the window and skips users that were already warned.
func (s *SQLStore) ListEndingSoon(ctx context.Context, within time.Duration) ([]model.EndingSoonTarget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.user_id, a.id, a.title, a.current_price
		 FROM auction_favorites f
		 JOIN auction_items a ON a.id = f.auction_id
		 WHERE a.status = ?
		   AND a.end_time > UTC_TIMESTAMP(6)
		   AND a.end_time <= UTC_TIMESTAMP(6) + INTERVAL ? MICROSECOND
		   AND NOT EXISTS (
		     SELECT 1 FROM auction_notifications n
		     WHERE n.user_id = f.user_id AND n.auction_id = a.id AND n.type = ?
		   )
		 ORDER BY a.end_time, a.id, f.user_id`,
		model.AuctionActive, within.Microseconds(), model.NotifyEndingSoon)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EndingSoonTarget, 0)
	for rows.Next() {
		var t model.EndingSoonTarget
		if err := rows.Scan(&t.UserID, &t.AuctionID, &t.Title, &t.CurrentPrice); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
