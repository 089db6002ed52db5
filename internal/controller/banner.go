package controller

import (
	"errors"
	"net/http"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bannerRoutesHandler struct {
	bannerService service.Banner
	validate      *validator.Validate
}

func newBannerRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bannerRoutesHandler {
	h := &bannerRoutesHandler{bannerService: services.Banner, validate: v}

	outer.GET("/banners", h.GetBanners)
	outer.POST("/admin/banners/new", h.PostBanner)
	outer.PATCH("/admin/banners/:bannerId/edit", h.EditBanner)
	outer.DELETE("/admin/banners/:bannerId", h.DeleteBanner)

	return h
}

// /banners
func (h *bannerRoutesHandler) GetBanners(c echo.Context) error {
	onlyActive := c.QueryParam("active") == "true"

	banners, err := h.bannerService.GetBanners(c.Request().Context(), onlyActive)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, banners); e != nil {
		return e
	}

	return nil
}

type postBannerInput struct {
	RequesterId string `json:"requesterId" validate:"required,max=100"`
	Title       string `json:"title" validate:"max=200"`
	ImageUrl    string `json:"imageUrl" validate:"required,max=500"`
	Link        string `json:"link" validate:"max=500"`
	Position    int    `json:"position" validate:"gte=0"`
	Active      bool   `json:"active"`
}

// /admin/banners/new
func (h *bannerRoutesHandler) PostBanner(c echo.Context) error {
	var input postBannerInput
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

	model := &entity.CreateBannerInput{
		Title:    input.Title,
		ImageUrl: input.ImageUrl,
		Link:     input.Link,
		Position: input.Position,
		Active:   input.Active,
	}

	banner, err := h.bannerService.CreateBanner(c.Request().Context(), input.RequesterId, model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, banner); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can manage banners"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type editBannerInput struct {
	RequesterId string  `json:"requesterId" validate:"required,max=100"`
	Title       *string `json:"title" validate:"omitempty,max=200"`
	ImageUrl    *string `json:"imageUrl" validate:"omitempty,max=500"`
	Link        *string `json:"link" validate:"omitempty,max=500"`
	Position    *int    `json:"position" validate:"omitempty,gte=0"`
	Active      *bool   `json:"active"`
}

// /admin/banners/:bannerId/edit
func (h *bannerRoutesHandler) EditBanner(c echo.Context) error {
	var input editBannerInput
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

	patch := &entity.BannerPatch{
		Title:    input.Title,
		ImageUrl: input.ImageUrl,
		Link:     input.Link,
		Position: input.Position,
		Active:   input.Active,
	}

	banner, err := h.bannerService.EditBannerById(c.Request().Context(), c.Param("bannerId"), input.RequesterId, patch)
	if err == nil {
		if e := c.JSON(http.StatusOK, banner); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can manage banners"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrBannerNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no banner with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrNoNewChanges):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"No new values were passed"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type deleteBannerInput struct {
	RequesterId string `query:"requesterId" validate:"required,max=100"`
}

// /admin/banners/:bannerId
func (h *bannerRoutesHandler) DeleteBanner(c echo.Context) error {
	input := deleteBannerInput{RequesterId: c.QueryParam("requesterId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	err := h.bannerService.DeleteBannerById(c.Request().Context(), c.Param("bannerId"), input.RequesterId)
	if err == nil {
		if e := c.NoContent(http.StatusNoContent); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only administrators can manage banners"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrBannerNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no banner with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
