package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
	"github.com/mohammad-safakhou/qbit/internal/briefing"
	"github.com/mohammad-safakhou/qbit/models"
)

// TextGenerator is the one-shot completion slice of the LLM provider.
type TextGenerator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type WeatherHandler struct {
	LLM   TextGenerator
	Model string
}

func (h *WeatherHandler) Register(g *echo.Group) {
	g.GET("/weather-time", h.get)
}

func (h *WeatherHandler) get(c echo.Context) error {
	lat, lon := c.QueryParam("lat"), c.QueryParam("lon")
	if lat == "" || lon == "" {
		return apperr.NewInvalidInput("latitude and longitude parameters are required")
	}
	if _, err := strconv.ParseFloat(lat, 64); err != nil {
		return apperr.NewInvalidInput("invalid latitude")
	}
	if _, err := strconv.ParseFloat(lon, 64); err != nil {
		return apperr.NewInvalidInput("invalid longitude")
	}

	prompt := briefing.WeatherPrompt + "\n\nLocation: latitude " + lat + ", longitude " + lon + "."
	raw, err := h.LLM.Generate(c.Request().Context(), h.Model, prompt)
	if err != nil {
		return apperr.NewUpstreamWrap("failed to fetch weather data", err)
	}

	resp, err := parseWeather(raw)
	if err != nil {
		return apperr.NewUpstreamWrap("failed to parse weather data", err)
	}

	c.Response().Header().Set("Cache-Control", "s-maxage=900, stale-while-revalidate")
	return c.JSON(http.StatusOK, resp)
}

// parseWeather reads the strict line format the prompt demands. The
// model occasionally wraps values or adds blank lines; anything beyond
// that fails upstream rather than returning partial data.
func parseWeather(raw string) (*models.Weather, error) {
	var resp models.Weather
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Time":
			resp.Time = value
		case "Temperature":
			resp.Weather.Temperature = value
		case "Description":
			resp.Weather.Description = value
		case "Icon":
			resp.Weather.Icon = value
		}
	}
	if resp.Time == "" || resp.Weather.Temperature == "" {
		return nil, errIncompleteWeather
	}
	return &resp, nil
}

var errIncompleteWeather = apperr.NewUpstream("weather response missing required fields")
