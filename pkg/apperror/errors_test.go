package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrapped forbidden", fmt.Errorf("listing: %w", ErrForbidden), http.StatusForbidden},
		{"conflict helper", Conflict("already reviewed"), http.StatusConflict},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"explicit code wins", New(http.StatusTeapot, "teapot", ErrNotFound), http.StatusTeapot},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := NotFound("animal not found")
	assert.Equal(t, "animal not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))

	bare := New(http.StatusBadRequest, "", nil)
	assert.Equal(t, "Bad Request", bare.Error())
}
