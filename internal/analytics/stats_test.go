package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Zero(t, mean(nil))
	assert.InDelta(t, 2.0, mean([]float64{1, 2, 3}), 0.0001)
}

func TestStdev(t *testing.T) {
	assert.Zero(t, stdev(nil))
	assert.Zero(t, stdev([]float64{5}))
	// Sample stdev of {2,4,4,4,5,5,7,9} is ~2.138.
	assert.InDelta(t, 2.138, stdev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 0.001)
	assert.Zero(t, stdev([]float64{3, 3, 3}))
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.True(t, math.IsInf(coefficientOfVariation([]float64{0, 0}), 1))
	assert.True(t, math.IsInf(coefficientOfVariation(nil), 1))
	assert.Zero(t, coefficientOfVariation([]float64{5, 5, 5}))
	cv := coefficientOfVariation([]float64{10, 20})
	assert.InDelta(t, stdev([]float64{10, 20})/15.0, cv, 0.0001)
}

func TestDecayScore(t *testing.T) {
	assert.Zero(t, decayScore(math.Inf(1)))
	assert.Equal(t, 1.0, decayScore(0))
	assert.InDelta(t, 0.5, decayScore(1), 0.0001)
	// Negative dispersion (future-dated activity) clamps to 1.
	assert.Equal(t, 1.0, decayScore(-0.5))
}

func TestTopQuartileCutoff(t *testing.T) {
	assert.Zero(t, topQuartileCutoff(nil))
	assert.Equal(t, 0.9, topQuartileCutoff([]float64{0.9}))
	// Descending {0.9, 0.8, 0.5, 0.1}: index 1 is the top-quartile boundary.
	assert.Equal(t, 0.8, topQuartileCutoff([]float64{0.5, 0.9, 0.1, 0.8}))
	// Three samples: index 0, the maximum.
	assert.Equal(t, 0.7, topQuartileCutoff([]float64{0.2, 0.7, 0.4}))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 3.1, round1(3.14))
	assert.Equal(t, 2.3, round1(2.25))
	assert.Equal(t, -2.5, round1(-2.46))
}
