package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weights(s string) *Answer {
	return &Answer{ID: 1, PersonalityWeights: &s}
}

func TestWeightMapDecodesObject(t *testing.T) {
	m, err := weights(`{"A": 2, "B": 1.5}`).WeightMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 2, "B": 1.5}, m)
}

func TestWeightMapUnwrapsDoubleEncoding(t *testing.T) {
	m, err := weights(`"{\"A\": 3}"`).WeightMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 3}, m)
}

func TestWeightMapAcceptsStringNumbers(t *testing.T) {
	m, err := weights(`{"A": "2.5", "B": 1}`).WeightMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 2.5, "B": 1}, m)
}

func TestWeightMapDropsNonNumericValues(t *testing.T) {
	m, err := weights(`{"A": 1, "B": "lots", "C": [1, 2], "D": null}`).WeightMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 1}, m)
}

func TestWeightMapRejectsMalformedPayload(t *testing.T) {
	_, err := weights(`{"A": `).WeightMap()
	assert.Error(t, err)
}

func TestWeightMapEmpty(t *testing.T) {
	m, err := (&Answer{}).WeightMap()
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = weights("  ").WeightMap()
	require.NoError(t, err)
	assert.Nil(t, m)
}
