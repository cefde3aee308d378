package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type bidRequest struct {
	Price int64 `json:"price"`
}

type autoBidRequest struct {
	MaxPrice int64 `json:"max_price"`
}

// PlaceBid handles POST /v1/auctions/:id/bids with {"price": N}.  The
// response carries the auction's price after any proxy counter-bid.
func (h *AuctionHandler) PlaceBid(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid auction id"})
	}
	var body bidRequest
	if err := c.Bind(&body); err != nil || body.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a positive integer"})
	}
	res, err := h.Engine.PlaceBid(c.Request().Context(), userID, id, body.Price)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// BuyNow handles POST /v1/auctions/:id/buy-now.
func (h *AuctionHandler) BuyNow(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid auction id"})
	}
	res, err := h.Engine.BuyNow(c.Request().Context(), userID, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// SetAutoBid handles PUT /v1/auctions/:id/auto-bid with {"max_price": N}.
// It replaces the caller's previous proxy on the auction.
func (h *AuctionHandler) SetAutoBid(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid auction id"})
	}
	var body autoBidRequest
	if err := c.Bind(&body); err != nil || body.MaxPrice <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_price must be a positive integer"})
	}
	if err := h.Engine.SetAutoBid(c.Request().Context(), userID, id, body.MaxPrice); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelAutoBid handles DELETE /v1/auctions/:id/auto-bid.  Cancelling a
// proxy that does not exist succeeds.
func (h *AuctionHandler) CancelAutoBid(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid auction id"})
	}
	if err := h.Engine.CancelAutoBid(c.Request().Context(), userID, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MyAutoBids handles GET /v1/me/auto-bids.
func (h *AuctionHandler) MyAutoBids(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Engine.MyAutoBids(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
