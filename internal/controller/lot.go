package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type lotRoutesHandler struct {
	lotService        service.Lot
	settlementService service.Settlement
	validate          *validator.Validate
}

func newLotRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *lotRoutesHandler {
	h := &lotRoutesHandler{lotService: services.Lot, settlementService: services.Settlement, validate: v}

	outer.GET("/lots", h.GetLots)
	outer.GET("/lots/:lotId", h.GetLot)
	outer.POST("/admin/lots/new", h.PostLot)
	outer.PATCH("/admin/lots/:lotId/edit", h.EditLot)
	outer.PUT("/admin/lots/:lotId/cancel", h.CancelLot)
	outer.DELETE("/admin/lots/:lotId", h.DeleteLot)
	outer.POST("/admin/lots/:lotId/finalize", h.FinalizeLot)
	outer.GET("/admin/lots/:lotId/settlement", h.GetSettlement)

	return h
}

type getLotsInput struct {
	Status string `query:"status" validate:"omitempty,oneof=active finalized cancelled"`
	Limit  int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset int32  `query:"offset" validate:"gte=0"`
}

// /lots
func (h *lotRoutesHandler) GetLots(c echo.Context) error {
	input := getLotsInput{Status: common.LotActive, Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if input.Status == "" {
		input.Status = common.LotActive
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	lots, err := h.lotService.GetLotsByStatus(c.Request().Context(), input.Status, pg)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, lots); e != nil {
		return e
	}

	return nil
}

// /lots/:lotId
func (h *lotRoutesHandler) GetLot(c echo.Context) error {
	lot, err := h.lotService.GetLotById(c.Request().Context(), c.Param("lotId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, lot); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrLotNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no lot with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type postLotInput struct {
	RequesterId string          `json:"requesterId" validate:"required,max=100"`
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"required,max=2000"`
	Origin      string          `json:"origin" validate:"max=100"`
	StartingBid decimal.Decimal `json:"startingBid"`
	OpensAt     string          `json:"opensAt"`
	ClosesAt    string          `json:"closesAt" validate:"required"`
	PhotoUrls   []string        `json:"photoUrls" validate:"max=20,dive,max=500"`
	VideoUrl    string          `json:"videoUrl" validate:"max=500"`
}

// /admin/lots/new
func (h *lotRoutesHandler) PostLot(c echo.Context) error {
	var input postLotInput
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

	if input.StartingBid.IsNegative() {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Starting bid can't be negative"}); e != nil {
			return e
		}

		return nil
	}

	closesAt, err := time.Parse(time.RFC3339, input.ClosesAt)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"'closesAt': must be an RFC3339 timestamp"}); e != nil {
			return e
		}

		return err
	}

	var opensAt time.Time
	if input.OpensAt != "" {
		opensAt, err = time.Parse(time.RFC3339, input.OpensAt)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"'opensAt': must be an RFC3339 timestamp"}); e != nil {
				return e
			}

			return err
		}
	}

	model := &entity.CreateLotInput{
		RequesterId: input.RequesterId,
		Title:       input.Title,
		Description: input.Description,
		Origin:      input.Origin,
		StartingBid: input.StartingBid,
		OpensAt:     opensAt,
		ClosesAt:    closesAt,
		PhotoUrls:   input.PhotoUrls,
		VideoUrl:    input.VideoUrl,
	}

	lot, err := h.lotService.CreateLot(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, lot); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can create lots"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidWindow):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Close time must be after open time"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrTooManyPhotos):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"A lot can't carry more than 20 photos"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type editLotInput struct {
	RequesterId string           `json:"requesterId" validate:"required,max=100"`
	Title       *string          `json:"title" validate:"omitempty,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Origin      *string          `json:"origin" validate:"omitempty,max=100"`
	StartingBid *decimal.Decimal `json:"startingBid"`
	OpensAt     *string          `json:"opensAt"`
	ClosesAt    *string          `json:"closesAt"`
	PhotoUrls   *[]string        `json:"photoUrls" validate:"omitempty,max=20,dive,max=500"`
	VideoUrl    *string          `json:"videoUrl" validate:"omitempty,max=500"`
}

// /admin/lots/:lotId/edit
func (h *lotRoutesHandler) EditLot(c echo.Context) error {
	var input editLotInput
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

	patch := &entity.LotPatch{
		Title:       input.Title,
		Description: input.Description,
		Origin:      input.Origin,
		StartingBid: input.StartingBid,
		PhotoUrls:   input.PhotoUrls,
		VideoUrl:    input.VideoUrl,
	}

	if input.OpensAt != nil {
		t, err := time.Parse(time.RFC3339, *input.OpensAt)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"'opensAt': must be an RFC3339 timestamp"}); e != nil {
				return e
			}

			return err
		}
		patch.OpensAt = &t
	}
	if input.ClosesAt != nil {
		t, err := time.Parse(time.RFC3339, *input.ClosesAt)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"'closesAt': must be an RFC3339 timestamp"}); e != nil {
				return e
			}

			return err
		}
		patch.ClosesAt = &t
	}

	lot, err := h.lotService.EditLotById(c.Request().Context(), c.Param("lotId"), input.RequesterId, patch)
	if err == nil {
		if e := c.JSON(http.StatusOK, lot); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can edit lots"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no lot with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrNoNewChanges):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"No new values were passed"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidWindow):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Close time must be after open time"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrTooManyPhotos):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"A lot can't carry more than 20 photos"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type lotAdminActionInput struct {
	RequesterId string `query:"requesterId" validate:"required,max=100"`
}

// /admin/lots/:lotId/cancel
func (h *lotRoutesHandler) CancelLot(c echo.Context) error {
	var input lotAdminActionInput
	input.RequesterId = c.QueryParam("requesterId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	lot, err := h.lotService.CancelLotById(c.Request().Context(), c.Param("lotId"), input.RequesterId)
	if err == nil {
		if e := c.JSON(http.StatusOK, lot); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can cancel lots"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no lot with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotAlreadyFinalized):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"This lot has already left the active state"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /admin/lots/:lotId
func (h *lotRoutesHandler) DeleteLot(c echo.Context) error {
	var input lotAdminActionInput
	input.RequesterId = c.QueryParam("requesterId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	err := h.lotService.DeleteLotById(c.Request().Context(), c.Param("lotId"), input.RequesterId)
	if err == nil {
		if e := c.NoContent(http.StatusNoContent); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can delete lots"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no lot with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /admin/lots/:lotId/finalize
func (h *lotRoutesHandler) FinalizeLot(c echo.Context) error {
	var input lotAdminActionInput
	input.RequesterId = c.QueryParam("requesterId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	summary, err := h.settlementService.FinalizeLot(c.Request().Context(), c.Param("lotId"), input.RequesterId)
	if err == nil {
		if e := c.JSON(http.StatusOK, summary); e != nil {
			return e
		}

		return nil
	}

	return h.writeSettlementError(c, err)
}

// /admin/lots/:lotId/settlement
func (h *lotRoutesHandler) GetSettlement(c echo.Context) error {
	var input lotAdminActionInput
	input.RequesterId = c.QueryParam("requesterId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	summary, err := h.settlementService.GetSettlement(c.Request().Context(), c.Param("lotId"), input.RequesterId)
	if err == nil {
		if e := c.JSON(http.StatusOK, summary); e != nil {
			return e
		}

		return nil
	}

	return h.writeSettlementError(c, err)
}

func (h *lotRoutesHandler) writeSettlementError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can settle lots"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no lot with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotHasNoBids):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"No bids were recorded for this lot"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotAlreadyFinalized):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"This lot has already been finalized or cancelled"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrLotNotFinalized):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"This lot hasn't been finalized yet"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
