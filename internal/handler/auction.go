package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/service"
)

// AuctionHandler serves listing, bidding and account endpoints.  Every
// method except GetAuction and ListBids expects JWTAuth to have run.
type AuctionHandler struct {
	Engine AuctionEngine
}

// NewAuctionHandler panics if engine is nil.
func NewAuctionHandler(engine AuctionEngine) *AuctionHandler {
	if engine == nil {
		panic("nil engine passed to NewAuctionHandler")
	}
	return &AuctionHandler{Engine: engine}
}

// CreateAuction handles POST /v1/auctions.  The authenticated user becomes
// the seller.  It returns 201 with the stored auction.
func (h *AuctionHandler) CreateAuction(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body service.NewAuction
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	a, err := h.Engine.CreateAuction(c.Request().Context(), userID, body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// GetAuction handles GET /v1/auctions/:id.
func (h *AuctionHandler) GetAuction(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid auction id"})
	}
	a, err := h.Engine.GetAuction(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// DeleteAuction handles DELETE /v1/auctions/:id.  Only the seller may
// delete, and only before the first bid.
func (h *AuctionHandler) DeleteAuction(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid auction id"})
	}
	if err := h.Engine.DeleteAuction(c.Request().Context(), userID, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBids handles GET /v1/auctions/:id/bids?limit=N, newest first.
func (h *AuctionHandler) ListBids(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid auction id"})
	}
	bids, err := h.Engine.ListBids(c.Request().Context(), id, queryLimit(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bids})
}
