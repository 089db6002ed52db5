package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/service"

	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBidService scripts the service layer so the handler's binding,
// validation and error mapping are tested in isolation.
type stubBidService struct {
	placeBidResult *entity.BidOutputModel
	placeBidErr    error
	gotAmount      decimal.Decimal
}

func (s *stubBidService) PlaceBid(ctx context.Context, lotId string, accountId string, amount decimal.Decimal) (*entity.BidOutputModel, error) {
	s.gotAmount = amount
	if s.placeBidErr != nil {
		return nil, s.placeBidErr
	}

	return s.placeBidResult, nil
}

func (s *stubBidService) GetAccountBids(ctx context.Context, accountId string, pg *entity.PaginationInput) ([]entity.AccountBidOutputModel, error) {
	return []entity.AccountBidOutputModel{}, nil
}

func (s *stubBidService) GetLotBids(ctx context.Context, lotId string, requesterId string, pg *entity.PaginationInput) ([]entity.LotBidOutputModel, error) {
	return []entity.LotBidOutputModel{}, nil
}

func bidTestServer(stub *stubBidService) *echo.Echo {
	e := echo.New()
	SetupRoutesHandlers(e, &service.Services{Bid: stub})

	return e
}

func postBid(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/bids/new", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestPlaceBidHandler_Created(t *testing.T) {
	stub := &stubBidService{
		placeBidResult: &entity.BidOutputModel{
			Id:        "1e8f2cce-33ac-43b2-9b0a-978da8ff6ab1",
			Amount:    "1500.00",
			LotId:     "3b49a6a3-f122-4781-a2a7-3a4519ce653f",
			AccountId: "9f21b4a4-0070-4cf7-9b45-6ba23c5b0c4b",
			CreatedAt: "2025-03-10T12:00:00Z",
		},
	}
	e := bidTestServer(stub)

	rec := postBid(e, `{"lotId":"3b49a6a3-f122-4781-a2a7-3a4519ce653f","accountId":"9f21b4a4-0070-4cf7-9b45-6ba23c5b0c4b","amount":1500}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, stub.gotAmount.Equal(decimal.RequireFromString("1500")))

	var out entity.BidOutputModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "1500.00", out.Amount)
}

func TestPlaceBidHandler_BidTooLowCarriesMinimum(t *testing.T) {
	stub := &stubBidService{
		placeBidErr: service.ErrBidTooLow,
	}
	e := bidTestServer(stub)

	rec := postBid(e, `{"lotId":"3b49a6a3-f122-4781-a2a7-3a4519ce653f","accountId":"9f21b4a4-0070-4cf7-9b45-6ba23c5b0c4b","amount":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrBidTooLow.Error())
}

func TestPlaceBidHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrAccountNotFound, http.StatusUnauthorized},
		{service.ErrAccountNotApproved, http.StatusForbidden},
		{service.ErrLotNotFound, http.StatusNotFound},
		{service.ErrAuctionClosed, http.StatusBadRequest},
		{service.ErrAuctionExpired, http.StatusBadRequest},
	}
	for _, tc := range cases {
		e := bidTestServer(&stubBidService{placeBidErr: tc.err})
		rec := postBid(e, `{"lotId":"3b49a6a3-f122-4781-a2a7-3a4519ce653f","accountId":"9f21b4a4-0070-4cf7-9b45-6ba23c5b0c4b","amount":100}`)
		assert.Equal(t, tc.code, rec.Code, "error %v", tc.err)
	}
}

func TestPlaceBidHandler_RejectsBadInput(t *testing.T) {
	e := bidTestServer(&stubBidService{})

	// Missing required fields.
	rec := postBid(e, `{"amount":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-positive amounts never reach the service.
	stub := &stubBidService{}
	e = bidTestServer(stub)
	rec = postBid(e, `{"lotId":"3b49a6a3-f122-4781-a2a7-3a4519ce653f","accountId":"9f21b4a4-0070-4cf7-9b45-6ba23c5b0c4b","amount":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "positive")
	assert.True(t, stub.gotAmount.IsZero())
}
