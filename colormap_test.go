package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColormapSignAware(t *testing.T) {
	pos := colorFor(0.8)
	neg := colorFor(-0.8)
	zero := colorFor(0)

	assert.Greater(t, pos.r, pos.b, "positive values are warm")
	assert.Greater(t, neg.b, neg.r, "negative values are cold")
	assert.NotEqual(t, pos, neg)

	assert.LessOrEqual(t, zero.r, byte(2))
	assert.LessOrEqual(t, zero.g, byte(2))
	assert.LessOrEqual(t, zero.b, byte(2))
}

func TestColormapClampsExtremes(t *testing.T) {
	assert.Equal(t, colorFor(1), colorFor(250))
	assert.Equal(t, colorFor(-1), colorFor(-1e9))
}

func TestColormapMonotoneMagnitude(t *testing.T) {
	prev := colorFor(0).r
	for v := float32(0.1); v <= 1.0; v += 0.1 {
		c := colorFor(v)
		assert.GreaterOrEqual(t, c.r, prev, "warm channel grows with magnitude")
		prev = c.r
	}
}
