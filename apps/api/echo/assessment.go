package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/assessment"
)

type assessmentApi struct {
	service *assessment.Service
}

func registerAssessmentAPI(g *echo.Group, svc *assessment.Service) {
	api := assessmentApi{service: svc}
	g.GET("/assessments/upcoming", api.assessmentUpcoming)
}

func (api *assessmentApi) assessmentUpcoming(ctx echo.Context) error {
	assessments, err := api.service.Upcoming(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, assessments)
}
