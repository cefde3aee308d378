package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/handler"
	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/service"
	"github.com/iliyamo/auction-house/internal/utils"
)

func newServer(t *testing.T) (*echo.Echo, *handler.MockAuctionEngine, *int) {
	t.Helper()
	engine := handler.NewMockAuctionEngine(gomock.NewController(t))
	h := handler.NewAuctionHandler(engine)

	hits := new(int)
	limiter := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			*hits++
			return next(c)
		}
	}

	e := echo.New()
	RegisterRoutes(e, nil)
	RegisterPublic(e, h)
	RegisterAuctions(e, h, "secret", limiter)
	return e, engine, hits
}

func do(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	e, engine, _ := newServer(t)
	engine.EXPECT().GetAuction(gomock.Any(), uint64(3)).Return(model.Auction{ID: 3}, nil)
	engine.EXPECT().ListBids(gomock.Any(), uint64(3), 0).Return(nil, nil)

	require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/healthz", "", "").Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/auctions/3", "", "").Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/auctions/3/bids", "", "").Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _, hits := newServer(t)
	rec := do(e, http.MethodPost, "/v1/auctions/3/bids", `{"price":10}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, *hits)

	rec = do(e, http.MethodGet, "/v1/me/points", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBidRouteIsRateLimited(t *testing.T) {
	e, engine, hits := newServer(t)
	tok, err := utils.NewAccessToken("secret", 5, time.Hour)
	require.NoError(t, err)

	engine.EXPECT().PlaceBid(gomock.Any(), uint64(5), uint64(3), int64(10)).Return(service.BidResult{CurrentPrice: 10}, nil)
	rec := do(e, http.MethodPost, "/v1/auctions/3/bids", `{"price":10}`, tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, *hits)

	engine.EXPECT().Balance(gomock.Any(), uint64(5)).Return(int64(70), nil)
	rec = do(e, http.MethodGet, "/v1/me/points", "", tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, *hits)
}
