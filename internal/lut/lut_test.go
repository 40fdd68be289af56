package lut

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsst-ts/ts-hexapod/internal/compensation"
)

const elevationTable = `
# Elevation corrections, fitted 2024-03.
Elevation  x     y    z    u     v     w
0          0     0    0    0     0     0
30         30    -3   300  0.03  0.3   -0.003
90         90    -9   900  0.09  0.9   -0.009
`

func TestParse(t *testing.T) {
	table, err := Parse(strings.NewReader(elevationTable))
	require.NoError(t, err)
	assert.Equal(t, "elevation", table.Input())
	assert.Equal(t, 0.0, table.Min())
	assert.Equal(t, 90.0, table.Max())
}

func TestCorrection_AtAndBetweenKnots(t *testing.T) {
	table, err := Parse(strings.NewReader(elevationTable))
	require.NoError(t, err)

	// Exactly at a knot returns that row.
	corr, err := table.Correction(30)
	require.NoError(t, err)
	assert.Equal(t, compensation.AxisVector{30, -3, 300, 0.03, 0.3, -0.003}, corr)

	// Midway between knots returns the average of the neighbors.
	corr, err = table.Correction(15)
	require.NoError(t, err)
	for k, want := range (compensation.AxisVector{15, -1.5, 150, 0.015, 0.15, -0.0015}) {
		assert.InDelta(t, want, corr[k], 1e-12, "axis %s", compensation.AxisNames[k])
	}

	// The domain boundaries are included.
	corr, err = table.Correction(0)
	require.NoError(t, err)
	assert.Equal(t, compensation.AxisVector{}, corr)
	corr, err = table.Correction(90)
	require.NoError(t, err)
	for k, want := range (compensation.AxisVector{90, -9, 900, 0.09, 0.9, -0.009}) {
		assert.InDelta(t, want, corr[k], 1e-12, "axis %s", compensation.AxisNames[k])
	}
}

func TestCorrection_OutOfDomain(t *testing.T) {
	table, err := Parse(strings.NewReader(elevationTable))
	require.NoError(t, err)

	_, err = table.Correction(-0.001)
	assert.Error(t, err)
	_, err = table.Correction(90.001)
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty file", "\n# only comments\n"},
		{"bad input name", "airmass x y z u v w\n0 0 0 0 0 0 0\n10 1 1 1 1 1 1\n"},
		{"bad correction columns", "elevation x y z u w v\n0 0 0 0 0 0 0\n10 1 1 1 1 1 1\n"},
		{"six columns", "elevation x y z u v w\n0 0 0 0 0 0\n10 1 1 1 1 1 1\n"},
		{"eight columns", "elevation x y z u v w\n0 0 0 0 0 0 0 0\n10 1 1 1 1 1 1\n"},
		{"non-numeric entry", "elevation x y z u v w\n0 0 0 oops 0 0 0\n10 1 1 1 1 1 1\n"},
		{"decreasing input", "elevation x y z u v w\n10 0 0 0 0 0 0\n0 1 1 1 1 1 1\n"},
		{"repeated input", "elevation x y z u v w\n10 0 0 0 0 0 0\n10 1 1 1 1 1 1\n"},
		{"single entry", "elevation x y z u v w\n10 0 0 0 0 0 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

// TestParse_CaseInsensitiveHeader mirrors the file format rule that column
// names may use any case.
func TestParse_CaseInsensitiveHeader(t *testing.T) {
	doc := "TEMPERATURE X Y Z U V W\n-20 0 0 0 0 0 0\n30 5 5 5 0.5 0.5 0.5\n"
	table, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "temperature", table.Input())
}
