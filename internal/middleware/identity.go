package middleware

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserID returns the id stored by JWTAuth.  ok is false on routes that
// are not behind JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ContextUserID).(uint64)
	return id, ok && id > 0
}

// subjectID accepts the sub claim as a JSON number or a decimal string.
func subjectID(v interface{}) (uint64, bool) {
	switch t := v.(type) {
	case float64:
		if t <= 0 || t != math.Trunc(t) || t > math.MaxUint64 {
			return 0, false
		}
		return uint64(t), true
	case json.Number:
		n, err := strconv.ParseUint(t.String(), 10, 64)
		return n, err == nil && n > 0
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		return n, err == nil && n > 0
	}
	return 0, false
}
