package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/course"
)

type courseApi struct {
	service *course.Service
}

func registerCourseAPI(g *echo.Group, svc *course.Service) {
	api := courseApi{service: svc}
	g.GET("/courses/:programme/:metaclass", api.courseRetrieve)
}

func (api *courseApi) courseRetrieve(ctx echo.Context) error {
	programme, err := strconv.Atoi(ctx.Param("programme"))
	if err != nil {
		return errHttpNotFound
	}
	metaclass, err := strconv.Atoi(ctx.Param("metaclass"))
	if err != nil {
		return errHttpNotFound
	}

	crs, err := api.service.Get(ctx.Request().Context(), programme, metaclass)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}
