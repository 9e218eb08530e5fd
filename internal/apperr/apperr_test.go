package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("Dam not found"), KindNotFound},
		{"wrapped validation", fmt.Errorf("create: %w", Validation("bad")), KindValidation},
		{"foreign error", errors.New("boom"), KindInternal},
		{"internal", Internal(errors.New("db down")), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("Dam not found"))

	assert.True(t, errors.Is(err, NotFound("Dam not found")))
	assert.True(t, errors.Is(err, &Error{Kind: KindNotFound}))
	assert.False(t, errors.Is(err, NotFound("River not found")))
	assert.False(t, errors.Is(err, Validation("Dam not found")))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "Server error", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsKind(t *testing.T) {
	assert.False(t, IsKind(nil, KindInternal))
	assert.True(t, IsKind(Forbidden("no"), KindForbidden))
}
