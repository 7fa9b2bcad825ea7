package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/folio"
)

type folioApi struct {
	service *folio.Service
}

func registerFolioAPI(g *echo.Group, svc *folio.Service) {
	api := folioApi{service: svc}
	g.GET("/folios", api.folioQuery)
}

func (api *folioApi) folioQuery(ctx echo.Context) error {
	entries, err := api.service.All(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}
