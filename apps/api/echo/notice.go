package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/notice"
)

type noticeApi struct {
	service *notice.Service
}

func registerNoticeAPI(g *echo.Group, svc *notice.Service) {
	api := noticeApi{service: svc}
	g.GET("/notices", api.noticeQuery)
}

// noticeQuery returns the notices for ?date= (default: today).
func (api *noticeApi) noticeQuery(ctx echo.Context) error {
	date := ctx.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	notices, err := api.service.ForDate(ctx.Request().Context(), date)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notices)
}
