package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/auction-house/internal/model"
)

// mysqlDuplicateEntry is the server error number for a unique key
// violation.
const mysqlDuplicateEntry = 1062

// UserContact fetches the mail address and display name of a user.
func (s *SQLStore) UserContact(ctx context.Context, userID uint64) (model.UserContact, error) {
	var u model.UserContact
	err := s.db.QueryRowContext(ctx,
		"SELECT id,email,name FROM users WHERE id=? LIMIT 1", userID).Scan(&u.ID, &u.Email, &u.Name)
	if err != nil {
		return model.UserContact{}, notFound(err)
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return u, nil
}

// isDuplicate reports whether err is a unique key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return false
}
