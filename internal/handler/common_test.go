package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Sreejithpr/Costume-rentals/internal/repository"
)

func TestParseID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")

	c.SetParamValues("42")
	id, err := parseID(c, "id")
	require.NoError(t, err)
	require.Equal(t, uint64(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c.SetParamValues(bad)
		_, err := parseID(c, "id")
		require.Error(t, err, bad)
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := parseDateTime("2026-01-10")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDateTime("2026-01-10T15:04:05Z")
	require.NoError(t, err)
	require.Equal(t, 15, got.Hour())

	_, err = parseDateTime("10/01/2026")
	require.Error(t, err)
}

func TestWriteErrMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{repository.ErrCustomerNotFound, http.StatusNotFound},
		{repository.ErrCostumeNotFound, http.StatusNotFound},
		{repository.ErrRentalNotFound, http.StatusNotFound},
		{repository.ErrBillNotFound, http.StatusNotFound},
		{repository.ErrCostumeUnavailable, http.StatusBadRequest},
		{repository.ErrRentalNotActive, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, writeErr(c, tc.err))
		require.Equal(t, tc.code, rec.Code, tc.err.Error())
	}
}

func TestValidatorRejectsBadStruct(t *testing.T) {
	v := NewValidator()
	type in struct {
		Email string `validate:"required,email"`
	}
	require.Error(t, v.Validate(&in{Email: "nope"}))
	require.NoError(t, v.Validate(&in{Email: "a@b.se"}))
}
