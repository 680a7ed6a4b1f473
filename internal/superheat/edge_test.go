package superheat

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/steam/internal/tables"
)

// Saturated vapor at 5500 kPa. The hull edge between the 5000 and 6000 kPa
// saturation samples meets this isobar near 270.03 °C.
func vapor5500() Point {
	return Point{T: 269.97, P: 5500, H: 2789.66, S: 5.9307, V: tables.IdealGasVolume(269.97, 5500)}
}

// ===== Strip below the hull =====

func TestLookupFrom_BlendsAcrossStrip(t *testing.T) {
	ip := New(tables.Default())
	g := vapor5500()

	_, err := ip.Lookup(Pressure, 5500, Temperature, 270.0)
	var re *tables.RangeError
	require.True(t, errors.As(err, &re))

	p, err := ip.LookupFrom(g, Pressure, 5500, Temperature, 270.0, 1)
	require.NoError(t, err)
	assert.Equal(t, 270.0, p.T)
	assert.Equal(t, 5500.0, p.P)
	assert.InDelta(t, 2789.42, p.H, 0.01)
	assert.Less(t, p.S, g.S)
	assert.Greater(t, p.S, 5.9300)
	assert.Equal(t, tables.IdealGasVolume(270.0, 5500), p.V)
}

func TestLookupFrom_ContinuousIntoHull(t *testing.T) {
	ip := New(tables.Default())
	g := vapor5500()

	prev := g
	for k := 1; k <= 40; k++ {
		temp := g.T + 0.005*float64(k)
		p, err := ip.LookupFrom(g, Pressure, 5500, Temperature, temp, 1)
		require.NoError(t, err, "T=%g", temp)
		assert.InDelta(t, prev.H, p.H, 0.1, "T=%g", temp)
		assert.InDelta(t, prev.S, p.S, 1e-3, "T=%g", temp)
		prev = p
	}
}

func TestLookupFrom_AtAnchor(t *testing.T) {
	ip := New(tables.Default())
	g := vapor5500()

	p, err := ip.LookupFrom(g, Pressure, 5500, Temperature, g.T, 1)
	require.NoError(t, err)
	assert.Equal(t, g, p)
}

func TestLookupFrom_InsideHullMatchesLookup(t *testing.T) {
	ip := New(tables.Default())

	want, err := ip.Lookup(Pressure, 5500, Temperature, 400)
	require.NoError(t, err)
	got, err := ip.LookupFrom(vapor5500(), Pressure, 5500, Temperature, 400, 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// ===== Reach =====

func TestLookupFrom_ReachBoundsSearch(t *testing.T) {
	ip := New(tables.Default())
	g := vapor5500()

	for _, reach := range []float64{0, 0.01, 0.04} {
		_, err := ip.LookupFrom(g, Pressure, 5500, Temperature, 270.0, reach)
		var re *tables.RangeError
		assert.True(t, errors.As(err, &re), "reach %g", reach)
	}

	_, err := ip.LookupFrom(g, Pressure, 5500, Temperature, 20, 1)
	assert.Error(t, err)
	_, err = ip.LookupFrom(g, Pressure, 5500, Temperature, math.NaN(), 1)
	assert.Error(t, err)
}

func TestLookupFrom_AxisErrorsPassThrough(t *testing.T) {
	ip := New(tables.Default())

	_, err := ip.LookupFrom(vapor5500(), Pressure, 5500, Pressure, 5500, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "axes must differ")
}
