package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
	"github.com/mohammad-safakhou/qbit/models"
)

// BriefingGenerator is what the handler needs from internal/briefing.
type BriefingGenerator interface {
	Generate(ctx context.Context, params models.GenerationParams) (*models.Briefing, error)
}

type BriefingHandler struct {
	Generator BriefingGenerator
	Deadline  time.Duration
}

func (h *BriefingHandler) Register(g *echo.Group) {
	g.GET("/briefing", h.get)
}

func (h *BriefingHandler) get(c echo.Context) error {
	dateStr := c.QueryParam("date")
	if dateStr == "" {
		return apperr.NewInvalidInput("date parameter is required")
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return apperr.NewInvalidInputWrap("invalid date parameter", err)
	}

	params := models.GenerationParams{
		Date:     date,
		Country:  c.QueryParam("country"),
		Category: c.QueryParam("category"),
	}

	ctx := c.Request().Context()
	if h.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Deadline)
		defer cancel()
	}

	start := time.Now()
	b, err := h.Generator.Generate(ctx, params)
	generationDuration.Observe(time.Since(start).Seconds())
	briefingRequests.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "s-maxage=60, stale-while-revalidate=300")
	return c.JSON(http.StatusOK, b)
}

// parseDate accepts full RFC 3339 timestamps (what the web client
// sends) and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
