package superheat

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/steam/internal/tables"
)

// ===== Lookup at samples =====

func TestLookup_ReproducesSample(t *testing.T) {
	ip := New(tables.Default())

	p, err := ip.Lookup(Temperature, 300, Pressure, 1000)
	require.NoError(t, err)
	assert.Equal(t, 300.0, p.T)
	assert.Equal(t, 1000.0, p.P)
	assert.InDelta(t, 3051.6, p.H, 1e-9)
	assert.InDelta(t, 7.1246, p.S, 1e-12)
	assert.InDelta(t, tables.IdealGasVolume(300, 1000), p.V, 1e-15)
}

func TestLookup_AxisOrderIrrelevant(t *testing.T) {
	ip := New(tables.Default())

	a, err := ip.Lookup(Temperature, 440, Pressure, 2600)
	require.NoError(t, err)
	b, err := ip.Lookup(Pressure, 2600, Temperature, 440)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLookup_EverySampleOnEveryPlane(t *testing.T) {
	ip := New(tables.Default())
	samples := tables.Default().Superheated()

	for a := Axis(0); a < numAxes; a++ {
		for b := a + 1; b < numAxes; b++ {
			for i, s := range samples {
				vals := [numAxes]float64{s.T, s.P, s.H, s.S, s.V}
				p, err := ip.Lookup(a, vals[a], b, vals[b])
				require.NoError(t, err, "plane (%v, %v) sample %d", a, b, i)
				assert.InDelta(t, s.T, p.T, 1e-8, "plane (%v, %v) sample %d", a, b, i)
				assert.InEpsilon(t, s.P, p.P, 1e-9, "plane (%v, %v) sample %d", a, b, i)
				assert.InDelta(t, s.H, p.H, 1e-8, "plane (%v, %v) sample %d", a, b, i)
				assert.InDelta(t, s.S, p.S, 1e-10, "plane (%v, %v) sample %d", a, b, i)
			}
		}
	}
}

func TestLookup_EnthalpyEntropyInverse(t *testing.T) {
	ip := New(tables.Default())

	p, err := ip.Lookup(Enthalpy, 3051.6, Entropy, 7.1246)
	require.NoError(t, err)
	assert.InDelta(t, 300, p.T, 1e-9)
	assert.InDelta(t, 1000, p.P, 1e-9)
}

func TestLookup_VolumePressure(t *testing.T) {
	ip := New(tables.Default())
	v := tables.IdealGasVolume(300, 1000)

	p, err := ip.Lookup(Volume, v, Pressure, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 300, p.T, 1e-9)
	assert.Equal(t, v, p.V)
}

func TestLookup_SaturatedVaporRows(t *testing.T) {
	tab := tables.Default()
	ip := New(tab)

	n := 0
	for _, r := range tab.Saturation() {
		if r.P < 10 {
			continue
		}
		p, err := ip.Lookup(Pressure, r.P, Temperature, r.T)
		require.NoError(t, err, "P=%g", r.P)
		assert.InDelta(t, r.Hg, p.H, 1e-8, "P=%g", r.P)
		assert.InDelta(t, r.Sg, p.S, 1e-10, "P=%g", r.P)
		n++
	}
	assert.Greater(t, n, 50)
}

// 150 kPa is a saturation row but not a superheated isobar. Before the
// vapor rows joined the mesh, the first 0.3 °C above saturation fell
// outside the hull.
func TestLookup_JustAboveSaturationBetweenIsobars(t *testing.T) {
	ip := New(tables.Default())
	const tSat, hg = 111.35, 2693.1

	prev := hg
	for k := 1; k <= 100; k++ {
		temp := tSat + 0.05*float64(k)
		p, err := ip.Lookup(Pressure, 150, Temperature, temp)
		require.NoError(t, err, "T=%g", temp)
		assert.GreaterOrEqual(t, p.H, prev, "T=%g", temp)
		prev = p.H
	}
}

// ===== Between samples =====

func TestLookup_LinearAlongIsobar(t *testing.T) {
	ip := New(tables.Default())

	// Midway between the 300 and 350 °C samples on the 1000 kPa isobar.
	p, err := ip.Lookup(Temperature, 325, Pressure, 1000)
	require.NoError(t, err)
	assert.InDelta(t, (3051.6+3158.2)/2, p.H, 1e-9)
	assert.InDelta(t, (7.1246+7.3029)/2, p.S, 1e-9)
}

func TestLookup_BetweenIsobars(t *testing.T) {
	ip := New(tables.Default())

	p, err := ip.Lookup(Temperature, 500, Pressure, 1100)
	require.NoError(t, err)
	// 1000 kPa: 3479.1, 7.7642. 1200 kPa at 500 °C is lower in both.
	assert.Less(t, p.H, 3479.1)
	assert.Greater(t, p.H, 3470.0)
	assert.Less(t, p.S, 7.7642)
	assert.Greater(t, p.S, 7.65)
}

// ===== Rejections =====

func TestLookup_OutsideHull(t *testing.T) {
	ip := New(tables.Default())

	_, err := ip.Lookup(Temperature, 20, Pressure, 1000)
	var re *tables.RangeError
	require.True(t, errors.As(err, &re))
	assert.Contains(t, re.Error(), "superheated state (T=20, P=1000)")

	_, err = ip.Lookup(Temperature, 900, Pressure, 1000)
	require.True(t, errors.As(err, &re))
}

func TestLookup_NonPositiveLogAxis(t *testing.T) {
	ip := New(tables.Default())

	_, err := ip.Lookup(Temperature, 300, Pressure, -1)
	var re *tables.RangeError
	assert.True(t, errors.As(err, &re))

	_, err = ip.Lookup(Volume, 0, Enthalpy, 3000)
	assert.True(t, errors.As(err, &re))
}

func TestLookup_SameAxisTwice(t *testing.T) {
	ip := New(tables.Default())

	_, err := ip.Lookup(Enthalpy, 3000, Enthalpy, 3100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "axes must differ")
}

// ===== Mesh =====

func TestTriangles(t *testing.T) {
	ip := New(tables.Default())
	assert.Greater(t, ip.Triangles(Temperature, Pressure), 500)
	assert.Equal(t, ip.Triangles(Temperature, Pressure), ip.Triangles(Pressure, Temperature))
	assert.Zero(t, ip.Triangles(Entropy, Entropy))
}

func TestTriangulate_Square(t *testing.T) {
	pts := squarePoints()
	tris := triangulate(pts)
	assert.Len(t, tris, 2)
}

func TestLookup_Concurrent(t *testing.T) {
	ip := New(tables.Default())

	var wg sync.WaitGroup
	results := make([]Point, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := ip.Lookup(Enthalpy, 3000, Entropy, 7.5)
			assert.NoError(t, err)
			results[i] = p
		}(i)
	}
	wg.Wait()

	for _, p := range results[1:] {
		assert.Equal(t, results[0], p)
	}
	assert.InDelta(t, 266.6, results[0].T, 0.1)
}

func TestAxis_String(t *testing.T) {
	assert.Equal(t, "h", Enthalpy.String())
	assert.Equal(t, "Axis(7)", Axis(7).String())
}
