package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/note"
)

type noteApi struct {
	service *note.Service
}

func registerNoteAPI(g *echo.Group, svc *note.Service) {
	api := noteApi{service: svc}

	ng := g.Group("/notes")
	ng.POST("", api.noteCreate)
	ng.GET("", api.noteQuery)
	ng.GET("/trash", api.noteQueryTrashed)
	ng.GET("/search", api.noteSearch)

	dg := ng.Group("/:id")
	dg.GET("", api.noteRetrieve)
	dg.PUT("", api.noteUpdate)
	dg.DELETE("", api.noteDestroy)
	dg.POST("/trash", api.noteTrash)
	dg.POST("/restore", api.noteRestore)
}

// Handlers

func (api *noteApi) noteCreate(ctx echo.Context) error {
	data := new(note.NewNote)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	n, err := api.service.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *noteApi) noteQuery(ctx echo.Context) error {
	notes, err := api.service.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *noteApi) noteQueryTrashed(ctx echo.Context) error {
	notes, err := api.service.QueryTrashed(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notes)
}

// noteSearch runs ?query= with the optional filters over all live notes.
func (api *noteApi) noteSearch(ctx echo.Context) error {
	filters := new(note.SearchFilters)
	if err := ctx.Bind(filters); err != nil {
		return err
	}
	results, err := api.service.Search(ctx.Request().Context(), ctx.QueryParam("query"), *filters)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *noteApi) noteRetrieve(ctx echo.Context) error {
	n, err := api.service.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) noteUpdate(ctx echo.Context) error {
	data := new(note.UpdateNote)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	n, err := api.service.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) noteTrash(ctx echo.Context) error {
	n, err := api.service.Trash(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) noteRestore(ctx echo.Context) error {
	n, err := api.service.Restore(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) noteDestroy(ctx echo.Context) error {
	if err := api.service.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
