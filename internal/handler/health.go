package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health reports process liveness for load balancers.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// DBHealth verifies database connectivity with a short ping and
// reports up/down in the response body.
func DBHealth(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"database": "mysql",
				"status":   "down",
				"error":    err.Error(),
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"database": "mysql",
			"status":   "up",
		})
	}
}
