package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/message"
)

type messageApi struct {
	service *message.Service
}

func registerMessageAPI(g *echo.Group, svc *message.Service) {
	api := messageApi{service: svc}
	g.GET("/messages", api.messageQuery)
	g.POST("/messages", api.messageSend)
}

// messageQuery returns the messages of ?folder= (default: inbox).
func (api *messageApi) messageQuery(ctx echo.Context) error {
	msgs, err := api.service.Folder(ctx.Request().Context(), ctx.QueryParam("folder"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *messageApi) messageSend(ctx echo.Context) error {
	data := new(message.NewMessage)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.service.Send(ctx.Request().Context(), *data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusAccepted)
}
