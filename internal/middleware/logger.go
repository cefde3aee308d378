package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/utils"
)

// RequestLogger logs every request with its status and latency.
func RequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			// let echo's error handler write the response before we read the status
			c.Error(err)
		}

		fields := map[string]any{
			"method":  c.Request().Method,
			"path":    c.Request().URL.Path,
			"status":  c.Response().Status,
			"latency": time.Since(start).String(),
		}
		if uid, ok := UserID(c); ok {
			fields["user_id"] = uid
		}
		utils.Info("HTTP Request", fields)
		return nil
	}
}
