package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/skbags/atelier/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validationf("price must be positive"), http.StatusBadRequest},
		{apperr.Stockf("insufficient stock"), http.StatusBadRequest},
		{apperr.Conflictf("cannot move order"), http.StatusBadRequest},
		{apperr.NotFoundf("no such product"), http.StatusNotFound},
		{apperr.Unauthorizedf("bad credentials"), http.StatusUnauthorized},
		{apperr.Forbiddenf("account disabled"), http.StatusForbidden},
		{apperr.Wrap(errors.New("disk full"), "store file"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, apperr.HTTPStatus(tc.err))
	}
}

func TestPublicMessageMasksInternals(t *testing.T) {
	wrapped := apperr.Wrap(errors.New("dial tcp: refused"), "orders: create order")
	assert.Equal(t, "Internal server error", apperr.PublicMessage(wrapped))
	assert.Contains(t, wrapped.Error(), "dial tcp: refused")

	assert.Equal(t, "no such product", apperr.PublicMessage(apperr.NotFoundf("no such product")))
	assert.Equal(t, "Internal server error", apperr.PublicMessage(errors.New("plain")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := apperr.Stockf("insufficient stock for %s", "Tote")
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(fmt.Errorf("placing order: %w", err)))
	assert.Equal(t, apperr.Internal, apperr.KindOf(errors.New("plain")))
}
