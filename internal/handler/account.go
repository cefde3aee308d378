package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type chargeRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// Balance handles GET /v1/me/points.
func (h *AuctionHandler) Balance(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bal, err := h.Engine.Balance(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"balance": bal})
}

// ChargePoints handles POST /v1/me/points/charge with {"amount": N}.
func (h *AuctionHandler) ChargePoints(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body chargeRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	bal, err := h.Engine.ChargePoints(c.Request().Context(), userID, body.Amount, body.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"balance": bal})
}

func (h *AuctionHandler) PointHistory(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Engine.PointHistory(c.Request().Context(), userID, queryLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Notifications handles GET /v1/me/notifications?limit=N.
func (h *AuctionHandler) Notifications(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Engine.Notifications(c.Request().Context(), userID, queryLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// MarkNotificationsRead handles POST /v1/me/notifications/read and
// reports how many notifications changed.
func (h *AuctionHandler) MarkNotificationsRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	n, err := h.Engine.MarkNotificationsRead(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": n})
}

// AddFavorite handles POST /v1/auctions/:id/favorite.
func (h *AuctionHandler) AddFavorite(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid auction id"})
	}
	if err := h.Engine.AddFavorite(c.Request().Context(), userID, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// RemoveFavorite handles DELETE /v1/auctions/:id/favorite.
func (h *AuctionHandler) RemoveFavorite(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid auction id"})
	}
	if err := h.Engine.RemoveFavorite(c.Request().Context(), userID, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
