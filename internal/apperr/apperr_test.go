package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("name: %w", ErrValidation), http.StatusBadRequest},
		{ErrInvalidTarget, http.StatusBadRequest},
		{ErrInvalidDecision, http.StatusBadRequest},
		{fmt.Errorf("project 7: %w", ErrNotFound), http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrIllegalTransition, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), tt.err.Error())
	}
	assert.False(t, Public(errors.New("pq: deadlock detected")))
	assert.True(t, Public(ErrNotFound))
}
