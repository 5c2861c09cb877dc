package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core/stats"
)

type statsApi struct {
	svc *stats.Service
}

func registerStatsAPI(g *echo.Group, svc *stats.Service) {
	api := statsApi{svc: svc}
	g.GET("/stats", api.totals)
}

// totals serves the aggregate counters for the public dashboard.
func (api *statsApi) totals(ctx echo.Context) error {
	totals, err := api.svc.Totals()
	if err != nil {
		return errors.Wrap(err, "querying stats totals")
	}
	return ctx.JSON(http.StatusOK, totals)
}
