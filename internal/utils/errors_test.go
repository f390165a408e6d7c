package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeLimitExceeded, http.StatusPaymentRequired},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", E(tc.code, "Op", "msg", nil))
			assert.Equal(t, tc.want, HTTPStatus(err))
		})
	}

	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("x: %w", ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestAppErrorMessage(t *testing.T) {
	inner := errors.New("db down")
	err := E(CodeInternal, "PortfolioService.Get", "failed to get portfolio", inner)

	assert.Equal(t, "PortfolioService.Get: failed to get portfolio: db down", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.True(t, IsCode(err, CodeInternal))
	assert.False(t, IsCode(err, CodeNotFound))
}

func TestWrapKeepsAppError(t *testing.T) {
	orig := E(CodeNotFound, "A", "missing", nil)
	assert.Same(t, orig, Wrap(orig, CodeInternal, "B", "other"))

	wrapped := Wrap(errors.New("raw"), CodeUnavailable, "B", "provider failed")
	assert.True(t, IsCode(wrapped, CodeUnavailable))
	assert.Nil(t, Wrap(nil, CodeInternal, "B", "x"))
}

func TestInvalidCarriesFields(t *testing.T) {
	err := Invalid("Op", map[string]string{"name": "This field is required"})

	var ae *AppError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, CodeInvalidArgument, ae.Code)
	assert.Equal(t, "This field is required", ae.Fields["name"])
}
