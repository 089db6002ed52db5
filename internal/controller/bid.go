package controller

import (
	"errors"
	"net/http"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}

	outer.POST("/bids/new", h.PlaceBid)
	outer.GET("/bids/my", h.GetAccountBids)
	outer.GET("/admin/lots/:lotId/bids", h.GetLotBids)

	return h
}

type placeBidInput struct {
	LotId     string          `json:"lotId" validate:"required,max=100"`
	AccountId string          `json:"accountId" validate:"required,max=100"`
	Amount    decimal.Decimal `json:"amount"`
}

// /bids/new
func (h *bidRoutesHandler) PlaceBid(c echo.Context) error {
	var input placeBidInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	if !input.Amount.IsPositive() {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Bid amount must be positive"}); e != nil {
			return e
		}

		return nil
	}

	bid, err := h.bidService.PlaceBid(c.Request().Context(), input.LotId, input.AccountId, input.Amount)
	if err == nil {
		if e := c.JSON(http.StatusCreated, bid); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		if e := c.JSON(http.StatusUnauthorized, errorResponse{"There is no account with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrAccountNotApproved):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Your registration hasn't been approved yet. Wait for approval to place bids"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no lot with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrAuctionClosed):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"This auction is not active anymore"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrAuctionExpired):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"This auction has already ended"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrBidTooLow):
		// The wrapped message carries the minimum acceptable amount.
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getAccountBidsInput struct {
	AccountId string `query:"accountId" validate:"required,max=100"`
	Limit     int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset    int32  `query:"offset" validate:"gte=0"`
}

// /bids/my
func (h *bidRoutesHandler) GetAccountBids(c echo.Context) error {
	input := getAccountBidsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	bids, err := h.bidService.GetAccountBids(c.Request().Context(), input.AccountId, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		if e := c.JSON(http.StatusUnauthorized, errorResponse{"There is no account with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

type getLotBidsInput struct {
	LotId       string `param:"lotId" validate:"required,max=100"`
	RequesterId string `query:"requesterId" validate:"required,max=100"`
	Limit       int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset      int32  `query:"offset" validate:"gte=0"`
}

// /admin/lots/:lotId/bids
func (h *bidRoutesHandler) GetLotBids(c echo.Context) error {
	input := getLotBidsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.LotId = c.Param("lotId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	bids, err := h.bidService.GetLotBids(c.Request().Context(), input.LotId, input.RequesterId, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can see a lot's full bid history"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no lot with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}
