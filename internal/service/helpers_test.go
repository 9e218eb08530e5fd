package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func newTestServices(t *testing.T, mutate ...func(*Options)) *Services {
	t.Helper()
	tokens, err := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Tokens = tokens
	opts.GeoJSONDir = t.TempDir()
	for _, m := range mutate {
		m(&opts)
	}
	return New(testutil.NewDB(t), opts)
}

type tree struct {
	State domain.State
	River domain.River
	Dams  []domain.Dam
}

// seedTree creates one state with one river holding a dam per name.
func seedTree(t *testing.T, svcs *Services, state string, dams ...string) tree {
	t.Helper()
	ctx := context.Background()
	st, err := svcs.Hierarchy.CreateState(ctx, domain.StateInput{Name: state})
	require.NoError(t, err)
	rv, err := svcs.Hierarchy.CreateRiver(ctx, domain.RiverInput{Name: state + " River", StateID: st.ID})
	require.NoError(t, err)
	out := tree{State: *st, River: *rv}
	for _, name := range dams {
		d, err := svcs.Hierarchy.CreateDam(ctx, domain.DamInput{Name: ptr(name), RiverID: ptr(rv.ID)})
		require.NoError(t, err)
		out.Dams = append(out.Dams, *d)
	}
	return out
}
