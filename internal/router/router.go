package router // package router registers the HTTP routes of the API

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/handler"
	"github.com/iliyamo/auction-house/internal/middleware"
)

// RegisterRoutes registers the unauthenticated probes.  ready is the
// readiness check, typically the database ping; nil always reports ready.
func RegisterRoutes(e *echo.Echo, ready func(context.Context) error) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(ready))
}

// RegisterPublic registers the browse endpoints guests may call.
func RegisterPublic(e *echo.Echo, h *handler.AuctionHandler) {
	e.GET("/v1/auctions/:id", h.GetAuction)
	e.GET("/v1/auctions/:id/bids", h.ListBids)
}

// RegisterAuctions registers the authenticated endpoints under /v1.
// limiter wraps the routes that move money (bids, proxy bids and buy now)
// and may be nil.
func RegisterAuctions(e *echo.Echo, h *handler.AuctionHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	var limited []echo.MiddlewareFunc
	if limiter != nil {
		limited = append(limited, limiter)
	}

	g.POST("/auctions", h.CreateAuction)
	g.DELETE("/auctions/:id", h.DeleteAuction)

	g.POST("/auctions/:id/bids", h.PlaceBid, limited...)
	g.POST("/auctions/:id/buy-now", h.BuyNow, limited...)
	g.PUT("/auctions/:id/auto-bid", h.SetAutoBid, limited...)
	g.DELETE("/auctions/:id/auto-bid", h.CancelAutoBid)

	g.POST("/auctions/:id/favorite", h.AddFavorite)
	g.DELETE("/auctions/:id/favorite", h.RemoveFavorite)

	me := g.Group("/me")
	me.GET("/auto-bids", h.MyAutoBids)
	me.GET("/points", h.Balance)
	me.POST("/points/charge", h.ChargePoints)
	me.GET("/points/history", h.PointHistory)
	me.GET("/notifications", h.Notifications)
	me.POST("/notifications/read", h.MarkNotificationsRead)
}
