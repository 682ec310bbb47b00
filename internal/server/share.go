package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
	"github.com/mohammad-safakhou/qbit/internal/share"
	"github.com/mohammad-safakhou/qbit/models"
)

type ShareHandler struct {
	Shares *share.Service
}

func (h *ShareHandler) Register(g *echo.Group) {
	g.POST("/share", h.create)
	g.GET("/share", h.get)
}

func (h *ShareHandler) create(c echo.Context) error {
	var b models.Briefing
	if err := c.Bind(&b); err != nil {
		err = apperr.NewInvalidInputWrap("invalid briefing body", err)
		shareCreates.WithLabelValues("invalid").Inc()
		return err
	}

	id, err := h.Shares.Create(c.Request().Context(), &b)
	shareCreates.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"shareId": id})
}

func (h *ShareHandler) get(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		shareGets.WithLabelValues("invalid").Inc()
		return apperr.NewInvalidInput("share id is required")
	}

	b, err := h.Shares.Get(c.Request().Context(), id)
	shareGets.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}
