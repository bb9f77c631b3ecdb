// Package handler implements the HTTP façade.  Handlers translate
// requests into service/repository calls and map the two domain
// error kinds onto status codes: not-found sentinels become 404,
// invalid-state sentinels become 400, anything else 500.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Sreejithpr/Costume-rentals/internal/repository"
)

const dateLayout = "2006-01-02"

// parseID parses a positive uint64 path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// parseDate accepts an ISO calendar date (2006-01-02).
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// parseDateTime accepts RFC 3339 or falls back to a calendar date.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return parseDate(s)
}

// writeErr maps domain sentinels to HTTP responses.
func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrCostumeNotFound),
		errors.Is(err, repository.ErrRentalNotFound),
		errors.Is(err, repository.ErrBillNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrCostumeUnavailable),
		errors.Is(err, repository.ErrRentalNotActive):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
