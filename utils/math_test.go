package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateContracts(t *testing.T) {
	assert.Equal(t, 37, TruncateContracts(37.5))
	assert.Equal(t, 37, TruncateContracts(37.999))
	assert.Equal(t, 0, TruncateContracts(0.999))
	assert.Equal(t, 0, TruncateContracts(0))
	assert.Equal(t, -2, TruncateContracts(-2.7))
}

func TestWithinBand(t *testing.T) {
	assert.True(t, WithinBand(90, 90, 0.05))
	assert.True(t, WithinBand(85.5, 90, 0.05))
	assert.True(t, WithinBand(94.5, 90, 0.05))
	assert.False(t, WithinBand(85.4, 90, 0.05))
	assert.False(t, WithinBand(94.6, 90, 0.05))
	assert.False(t, WithinBand(90, 0, 0.05))
}

func TestRoundToPrecision(t *testing.T) {
	assert.Equal(t, 1.23, RoundToPrecision(1.2345, 2))
	assert.Equal(t, 1.24, RoundToPrecision(1.235, 2))
}

func TestFloatEquals(t *testing.T) {
	assert.True(t, FloatEquals(0.1+0.2, 0.3))
	assert.False(t, FloatEquals(0.1, 0.2))
}
