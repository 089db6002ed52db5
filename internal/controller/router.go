package controller

import (
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newAccountRoutesHandler(api, services, validate)
	newLotRoutesHandler(api, services, validate)
	newBidRoutesHandler(api, services, validate)
	newBannerRoutesHandler(api, services, validate)
}
