package saturation

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/steam/internal/tables"
)

func newTestLocator(t *testing.T) *Locator {
	t.Helper()
	l, err := NewLocator(tables.Default())
	require.NoError(t, err)
	return l
}

// ===== ByPressure / ByTemperature =====

func TestByPressure_TableRow(t *testing.T) {
	l := newTestLocator(t)

	b, err := l.ByPressure(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, b.P)
	assert.InDelta(t, 179.88, b.T, 1e-9)
	assert.InDelta(t, 762.51, b.Hf, 1e-9)
	assert.InDelta(t, 2777.1, b.Hg, 1e-9)
	assert.InDelta(t, 2.1381, b.Sf, 1e-12)
	assert.InDelta(t, 6.5850, b.Sg, 1e-12)
	assert.InDelta(t, 0.001127, b.Vf, 1e-12)
	assert.InDelta(t, 0.19436, b.Vg, 1e-12)
}

func TestByTemperature_TableRow(t *testing.T) {
	l := newTestLocator(t)

	b, err := l.ByTemperature(99.61)
	require.NoError(t, err)
	assert.Equal(t, 99.61, b.T)
	assert.InDelta(t, 100.0, b.P, 1e-9)
	assert.InDelta(t, 417.51, b.Hf, 1e-9)
	assert.InDelta(t, 1.6941, b.Vg, 1e-12)
}

func TestByPressure_BetweenRowsStaysBracketed(t *testing.T) {
	l := newTestLocator(t)
	lo, err := l.ByPressure(100)
	require.NoError(t, err)
	hi, err := l.ByPressure(125)
	require.NoError(t, err)

	mid, err := l.ByPressure(112)
	require.NoError(t, err)
	assert.Greater(t, mid.T, lo.T)
	assert.Less(t, mid.T, hi.T)
	assert.Greater(t, mid.Hf, lo.Hf)
	assert.Less(t, mid.Hf, hi.Hf)
	assert.Less(t, mid.Vg, lo.Vg)
	assert.Greater(t, mid.Vg, hi.Vg)
}

func TestByPressure_ConsistentWithByTemperature(t *testing.T) {
	l := newTestLocator(t)
	for _, p := range []float64{5, 50, 350, 2200, 9000, 17500} {
		b, err := l.ByPressure(p)
		require.NoError(t, err)
		back, err := l.ByTemperature(b.T)
		require.NoError(t, err)
		assert.InEpsilon(t, p, back.P, 1e-3, "P=%g", p)
		assert.InEpsilon(t, b.Hg, back.Hg, 1e-3, "P=%g", p)
	}
}

func TestByPressure_Ends(t *testing.T) {
	l := newTestLocator(t)
	pMin, pMax := l.PressureRange()
	assert.InDelta(t, 0.6117, pMin, 1e-12)
	assert.InDelta(t, 20000, pMax, 1e-9)

	b, err := l.ByPressure(pMax)
	require.NoError(t, err)
	assert.InDelta(t, 365.75, b.T, 1e-9)
	assert.Equal(t, l.Top().P, b.P)

	_, err = l.ByPressure(pMin)
	require.NoError(t, err)
}

func TestByPressure_OutOfRange(t *testing.T) {
	l := newTestLocator(t)

	for _, p := range []float64{0.1, 20001, -5, math.NaN()} {
		_, err := l.ByPressure(p)
		var re *tables.RangeError
		require.True(t, errors.As(err, &re), "P=%g", p)
		assert.Equal(t, "pressure", re.Quantity)
	}

	_, err := l.ByTemperature(400)
	var re *tables.RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "temperature", re.Quantity)
	assert.Equal(t, 365.75, re.Max)
}

// ===== Inverse lookups =====

func TestVapor_ByEntropy(t *testing.T) {
	l := newTestLocator(t)

	b, err := l.Vapor(Entropy, 6.5850)
	require.NoError(t, err)
	assert.InDelta(t, 179.88, b.T, 1e-6)
	assert.InDelta(t, 1000, b.P, 1e-3)
	assert.InDelta(t, 6.5850, b.Sg, 1e-9)
}

func TestVapor_ByVolume(t *testing.T) {
	l := newTestLocator(t)

	b, err := l.Vapor(Volume, 1.0)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, b.Vg, 1e-9)
	assert.Greater(t, b.T, 99.61)
	assert.Less(t, b.T, 125.0)
}

func TestLiquid_ByEnthalpy(t *testing.T) {
	l := newTestLocator(t)

	b, err := l.Liquid(Enthalpy, 500)
	require.NoError(t, err)
	assert.InDelta(t, 500, b.Hf, 1e-6)
	assert.Greater(t, b.T, 105.97)
}

func TestInverse_NotMonotonic(t *testing.T) {
	l := newTestLocator(t)

	_, err := l.Vapor(Enthalpy, 2700)
	assert.ErrorIs(t, err, ErrNotMonotonic)

	_, err = l.Liquid(Volume, 0.0011)
	assert.ErrorIs(t, err, ErrNotMonotonic)
}

func TestInverse_OutOfRange(t *testing.T) {
	l := newTestLocator(t)

	_, err := l.Vapor(Entropy, 4.0)
	var re *tables.RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "saturated vapor entropy", re.Quantity)
}

func TestVaporEnds(t *testing.T) {
	l := newTestLocator(t)
	low, high := l.VaporEnds(Volume)
	assert.Equal(t, 206.0, low)
	assert.Equal(t, 0.005834, high)
}

// ===== Boundary =====

func TestBoundary_MixAndQuality(t *testing.T) {
	b := Boundary{Hf: 400, Hg: 2600, Sf: 1, Sg: 7, Vf: 0.001, Vg: 1.001}

	assert.InDelta(t, 1500, b.Mix(Enthalpy, 0.5), 1e-12)
	assert.InDelta(t, 0.25, b.Quality(Entropy, 2.5), 1e-12)
	assert.InDelta(t, 1.0, b.Quality(Volume, 1.001), 1e-12)
	assert.Less(t, b.Quality(Enthalpy, 300), 0.0)
	assert.Greater(t, b.Quality(Enthalpy, 2700), 1.0)
	assert.Equal(t, 1.0, b.Quality(Enthalpy, b.Hg))
}

func TestProp_String(t *testing.T) {
	assert.Equal(t, "enthalpy", Enthalpy.String())
	assert.Equal(t, "volume", Volume.String())
	assert.Equal(t, "Prop(9)", Prop(9).String())
}

// ===== Concurrency =====

func TestLocator_ConcurrentLookups(t *testing.T) {
	l := newTestLocator(t)
	want, err := l.ByPressure(4321)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := l.ByPressure(4321)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
