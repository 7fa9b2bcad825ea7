package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/goal"
)

type goalApi struct {
	service *goal.Service
}

func registerGoalAPI(g *echo.Group, svc *goal.Service) {
	api := goalApi{service: svc}
	g.GET("/goals/years", api.goalYears)
	g.GET("/goals/:year", api.goalQuery)
}

func (api *goalApi) goalYears(ctx echo.Context) error {
	years, err := api.service.Years(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, years)
}

func (api *goalApi) goalQuery(ctx echo.Context) error {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return errHttpNotFound
	}
	goals, err := api.service.ForYear(ctx.Request().Context(), year)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, goals)
}
