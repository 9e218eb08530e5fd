package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/validation"
)

func TestNextSampleStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	level := 99.5
	for i := 0; i < 500; i++ {
		s := nextSample(rng, level)
		require.NotNil(t, s.CurrentWaterLevel)
		level = *s.CurrentWaterLevel
		assert.GreaterOrEqual(t, level, minLevel)
		assert.LessOrEqual(t, level, maxLevel)
		assert.GreaterOrEqual(t, *s.SpillwayDischarge, 0.0)
		require.NoError(t, validation.Struct(&s))
	}
}
