package controller

import (
	"errors"
	"net/http"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type accountRoutesHandler struct {
	accountService service.Account
	validate       *validator.Validate
}

func newAccountRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *accountRoutesHandler {
	h := &accountRoutesHandler{accountService: services.Account, validate: v}

	outer.POST("/signup", h.Signup)
	outer.GET("/admin/accounts", h.GetAccounts)
	outer.GET("/admin/accounts/:accountId", h.GetAccount)
	outer.PUT("/admin/accounts/:accountId/approval", h.UpdateApproval)

	return h
}

type signupInput struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email,max=200"`
	Password      string `json:"password" validate:"required,min=8,max=100"`
	TaxId         string `json:"taxId" validate:"required,len=11"`
	Phone         string `json:"phone" validate:"required,max=20"`
	PostalCode    string `json:"postalCode" validate:"required,max=10"`
	Street        string `json:"street" validate:"required,max=200"`
	StreetNumber  string `json:"streetNumber" validate:"required,max=20"`
	Unit          string `json:"unit" validate:"max=100"`
	District      string `json:"district" validate:"required,max=100"`
	City          string `json:"city" validate:"required,max=100"`
	State         string `json:"state" validate:"required,len=2"`
	DocumentFront string `json:"documentFrontUrl" validate:"max=500"`
	DocumentBack  string `json:"documentBackUrl" validate:"max=500"`
	SelfieUrl     string `json:"selfieUrl" validate:"max=500"`
}

// /signup
func (h *accountRoutesHandler) Signup(c echo.Context) error {
	var input signupInput
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

	model := &entity.RegisterAccountInput{
		Name: input.Name, Email: input.Email, Password: input.Password,
		TaxId: input.TaxId, Phone: input.Phone, PostalCode: input.PostalCode,
		Street: input.Street, StreetNumber: input.StreetNumber, Unit: input.Unit,
		District: input.District, City: input.City, State: input.State,
		DocumentFront: input.DocumentFront, DocumentBack: input.DocumentBack,
		SelfieUrl: input.SelfieUrl,
	}

	account, err := h.accountService.Register(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, account); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrAccountAlreadyExists):
		if e := c.JSON(http.StatusConflict, errorResponse{"An account with this email or tax id already exists"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getAccountsInput struct {
	RequesterId string `query:"requesterId" validate:"required,max=100"`
	Status      string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Limit       int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset      int32  `query:"offset" validate:"gte=0"`
}

// /admin/accounts
func (h *accountRoutesHandler) GetAccounts(c echo.Context) error {
	input := getAccountsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	accounts, err := h.accountService.GetAccounts(c.Request().Context(), input.RequesterId, input.Status, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, accounts); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can list accounts"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

type getAccountInput struct {
	AccountId   string `param:"accountId" validate:"required,max=100"`
	RequesterId string `query:"requesterId" validate:"required,max=100"`
}

// /admin/accounts/:accountId
func (h *accountRoutesHandler) GetAccount(c echo.Context) error {
	input := getAccountInput{
		AccountId:   c.Param("accountId"),
		RequesterId: c.QueryParam("requesterId"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	account, err := h.accountService.GetAccountById(c.Request().Context(), input.AccountId, input.RequesterId)
	if err == nil {
		if e := c.JSON(http.StatusOK, account); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can inspect accounts"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrAccountNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no account with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type updateApprovalInput struct {
	AccountId   string `param:"accountId" validate:"required,max=100"`
	RequesterId string `query:"requesterId" validate:"required,max=100"`
	Status      string `query:"status" validate:"required,oneof=pending approved rejected"`
}

// /admin/accounts/:accountId/approval
func (h *accountRoutesHandler) UpdateApproval(c echo.Context) error {
	input := updateApprovalInput{
		AccountId:   c.Param("accountId"),
		RequesterId: c.QueryParam("requesterId"),
		Status:      c.QueryParam("status"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	account, err := h.accountService.UpdateApprovalStatus(c.Request().Context(), input.AccountId, input.RequesterId, input.Status)
	if err == nil {
		if e := c.JSON(http.StatusOK, account); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can change approval status"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrAccountNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no account with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
