package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type fakeIngester struct{ err error }

func (f fakeIngester) FromMQTT(_ context.Context, _ string, _ []byte) (*domain.DamStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DamStatus{DamID: "d1"}, nil
}

func TestHandleResults(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"applied", nil, "ok"},
		{"bad payload", apperr.Validation("decode status payload"), "rejected"},
		{"unknown dam", apperr.NotFound("Dam not found"), "rejected"},
		{"store down", apperr.Internal(errors.New("db down")), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := handle(context.Background(), fakeIngester{err: tt.err}, "dams/d1/status", []byte(`{}`))
			assert.Equal(t, tt.want, got)
		})
	}
}
