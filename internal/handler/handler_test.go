package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/middleware"
	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/service"
)

// call runs fn against a request for user (0 means anonymous) with an
// optional :id path parameter.
func call(t *testing.T, fn echo.HandlerFunc, method, target, body string, user uint64, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if user != 0 {
		c.Set(middleware.ContextUserID, user)
	}
	require.NoError(t, fn(c))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrInvalidState, http.StatusConflict},
		{service.ErrSelfBid, http.StatusForbidden},
		{service.ErrPriceTooLow, http.StatusConflict},
		{service.ErrInsufficientBalance, http.StatusPaymentRequired},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrConflict, http.StatusConflict},
		{service.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("auction 3: %w", service.ErrNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestPlaceBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := NewMockAuctionEngine(ctrl)
	h := NewAuctionHandler(engine)

	t.Run("accepted", func(t *testing.T) {
		engine.EXPECT().PlaceBid(gomock.Any(), uint64(5), uint64(9), int64(3000)).
			Return(service.BidResult{CurrentPrice: 4000}, nil)
		rec := call(t, h.PlaceBid, http.MethodPost, "/v1/auctions/9/bids", `{"price":3000}`, 5, "9")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, float64(4000), decode(t, rec)["currentPrice"])
	})

	t.Run("price too low", func(t *testing.T) {
		engine.EXPECT().PlaceBid(gomock.Any(), uint64(5), uint64(9), int64(100)).
			Return(service.BidResult{}, fmt.Errorf("%w: 100 <= 2000", service.ErrPriceTooLow))
		rec := call(t, h.PlaceBid, http.MethodPost, "/v1/auctions/9/bids", `{"price":100}`, 5, "9")
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, decode(t, rec)["error"], "price must exceed")
	})

	t.Run("rejected before the engine", func(t *testing.T) {
		rec := call(t, h.PlaceBid, http.MethodPost, "/v1/auctions/9/bids", `{"price":0}`, 5, "9")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		rec = call(t, h.PlaceBid, http.MethodPost, "/v1/auctions/x/bids", `{"price":10}`, 5, "x")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		rec = call(t, h.PlaceBid, http.MethodPost, "/v1/auctions/9/bids", `{"price":10}`, 0, "9")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBuyNowInsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := NewMockAuctionEngine(ctrl)
	h := NewAuctionHandler(engine)

	engine.EXPECT().BuyNow(gomock.Any(), uint64(2), uint64(1)).
		Return(service.BidResult{}, service.ErrInsufficientBalance)
	rec := call(t, h.BuyNow, http.MethodPost, "/v1/auctions/1/buy-now", "", 2, "1")
	require.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestAutoBidEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := NewMockAuctionEngine(ctrl)
	h := NewAuctionHandler(engine)

	engine.EXPECT().SetAutoBid(gomock.Any(), uint64(3), uint64(7), int64(5000)).Return(nil)
	rec := call(t, h.SetAutoBid, http.MethodPut, "/v1/auctions/7/auto-bid", `{"max_price":5000}`, 3, "7")
	require.Equal(t, http.StatusNoContent, rec.Code)

	engine.EXPECT().SetAutoBid(gomock.Any(), uint64(3), uint64(7), int64(10)).Return(service.ErrSelfBid)
	rec = call(t, h.SetAutoBid, http.MethodPut, "/v1/auctions/7/auto-bid", `{"max_price":10}`, 3, "7")
	require.Equal(t, http.StatusForbidden, rec.Code)

	engine.EXPECT().CancelAutoBid(gomock.Any(), uint64(3), uint64(7)).Return(nil)
	rec = call(t, h.CancelAutoBid, http.MethodDelete, "/v1/auctions/7/auto-bid", "", 3, "7")
	require.Equal(t, http.StatusNoContent, rec.Code)

	engine.EXPECT().MyAutoBids(gomock.Any(), uint64(3)).
		Return([]model.AutoBid{{ID: 1, UserID: 3, AuctionID: 7, MaxPrice: 5000, Active: true}}, nil)
	rec = call(t, h.MyAutoBids, http.MethodGet, "/v1/me/auto-bids", "", 3, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["items"], 1)
}

func TestAuctionEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := NewMockAuctionEngine(ctrl)
	h := NewAuctionHandler(engine)

	engine.EXPECT().CreateAuction(gomock.Any(), uint64(4), gomock.Any()).
		DoAndReturn(func(_ any, seller uint64, in service.NewAuction) (model.Auction, error) {
			require.Equal(t, "Lamp", in.Title)
			require.Equal(t, int64(1000), in.StartPrice)
			return model.Auction{ID: 11, SellerID: seller, Title: in.Title, Status: model.AuctionActive}, nil
		})
	body := `{"title":"Lamp","start_price":1000,"end_time":"2030-01-01T00:00:00Z"}`
	rec := call(t, h.CreateAuction, http.MethodPost, "/v1/auctions", body, 4, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, float64(11), decode(t, rec)["id"])

	engine.EXPECT().GetAuction(gomock.Any(), uint64(12)).Return(model.Auction{}, service.ErrNotFound)
	rec = call(t, h.GetAuction, http.MethodGet, "/v1/auctions/12", "", 0, "12")
	require.Equal(t, http.StatusNotFound, rec.Code)

	engine.EXPECT().DeleteAuction(gomock.Any(), uint64(4), uint64(11)).Return(service.ErrConflict)
	rec = call(t, h.DeleteAuction, http.MethodDelete, "/v1/auctions/11", "", 4, "11")
	require.Equal(t, http.StatusConflict, rec.Code)

	engine.EXPECT().ListBids(gomock.Any(), uint64(11), 5).Return([]model.Bid{{ID: 1}, {ID: 2}}, nil)
	rec = call(t, h.ListBids, http.MethodGet, "/v1/auctions/11/bids?limit=5", "", 0, "11")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["items"], 2)
}

func TestAccountEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := NewMockAuctionEngine(ctrl)
	h := NewAuctionHandler(engine)

	engine.EXPECT().ChargePoints(gomock.Any(), uint64(8), int64(500), "gift").Return(int64(1500), nil)
	rec := call(t, h.ChargePoints, http.MethodPost, "/v1/me/points/charge", `{"amount":500,"reason":"gift"}`, 8, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1500), decode(t, rec)["balance"])

	engine.EXPECT().ChargePoints(gomock.Any(), uint64(8), int64(-1), "").Return(int64(0), service.ErrInvalidInput)
	rec = call(t, h.ChargePoints, http.MethodPost, "/v1/me/points/charge", `{"amount":-1}`, 8, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	engine.EXPECT().Balance(gomock.Any(), uint64(8)).Return(int64(0), errors.New("db down"))
	rec = call(t, h.Balance, http.MethodGet, "/v1/me/points", "", 8, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", decode(t, rec)["error"])

	engine.EXPECT().MarkNotificationsRead(gomock.Any(), uint64(8)).Return(int64(3), nil)
	rec = call(t, h.MarkNotificationsRead, http.MethodPost, "/v1/me/notifications/read", "", 8, "")
	require.Equal(t, float64(3), decode(t, rec)["updated"])

	engine.EXPECT().AddFavorite(gomock.Any(), uint64(8), uint64(2)).Return(service.ErrConflict)
	rec = call(t, h.AddFavorite, http.MethodPost, "/v1/auctions/2/favorite", "", 8, "2")
	require.Equal(t, http.StatusConflict, rec.Code)

	engine.EXPECT().RemoveFavorite(gomock.Any(), uint64(8), uint64(2)).Return(nil)
	rec = call(t, h.RemoveFavorite, http.MethodDelete, "/v1/auctions/2/favorite", "", 8, "2")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReady(t *testing.T) {
	rec := call(t, Ready(nil), http.MethodGet, "/readyz", "", 0, "")
	require.Equal(t, http.StatusOK, rec.Code)

	down := Ready(func(_ context.Context) error { return errors.New("no db") })
	rec = call(t, down, http.MethodGet, "/readyz", "", 0, "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
