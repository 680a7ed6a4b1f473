package saturation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/roach88/steam/internal/solver"
	"github.com/roach88/steam/internal/tables"
)

// ErrNotMonotonic is returned by inverse lookups on columns that do not vary
// monotonically with temperature.
var ErrNotMonotonic = errors.New("saturation column is not monotonic")

// rangeSlack absorbs rounding at the ends of the tabulated span.
const rangeSlack = 1e-12

type column int

const (
	colT column = iota
	colP
	colHf
	colHg
	colSf
	colSg
	colVf
	colVg
	numColumns
)

// logColumn reports whether a column is fitted in log space.
func (c column) log() bool {
	return c == colP || c == colVf || c == colVg
}

func liquidColumn(p Prop) column { return [...]column{colHf, colSf, colVf}[p] }
func vaporColumn(p Prop) column  { return [...]column{colHg, colSg, colVg}[p] }

// inverse maps a column value back to saturation temperature.
type inverse struct {
	fit      interp.FritschButland
	min, max float64 // raw column bounds
	log      bool
}

// Locator answers saturation lookups. It is immutable and safe for
// concurrent use.
type Locator struct {
	byP [numColumns]interp.FritschButland
	byT [numColumns]interp.FritschButland

	liquid [numProps]*inverse
	vapor  [numProps]*inverse

	first, last Boundary
}

// NewLocator fits the saturation curves of t.
func NewLocator(t *tables.Tables) (*Locator, error) {
	rows := t.Saturation()
	n := len(rows)
	cols := make([][]float64, numColumns)
	for c := range cols {
		cols[c] = make([]float64, n)
	}
	for i, r := range rows {
		vals := [numColumns]float64{r.T, r.P, r.Hf, r.Hg, r.Sf, r.Sg, r.Vf, r.Vg}
		for c, v := range vals {
			cols[c][i] = v
		}
	}

	l := &Locator{}
	lnP := transform(cols[colP], true)
	for c := column(0); c < numColumns; c++ {
		ys := transform(cols[c], c.log())
		if err := l.byP[c].Fit(lnP, ys); err != nil {
			return nil, fmt.Errorf("fit column %d against pressure: %w", c, err)
		}
		if err := l.byT[c].Fit(cols[colT], ys); err != nil {
			return nil, fmt.Errorf("fit column %d against temperature: %w", c, err)
		}
	}

	for p := Prop(0); p < numProps; p++ {
		l.liquid[p] = fitInverse(cols[liquidColumn(p)], cols[colT], liquidColumn(p).log())
		l.vapor[p] = fitInverse(cols[vaporColumn(p)], cols[colT], vaporColumn(p).log())
	}

	l.first = boundaryOf(rows[0])
	l.last = boundaryOf(rows[n-1])
	return l, nil
}

func boundaryOf(r tables.SatSample) Boundary {
	return Boundary{P: r.P, T: r.T, Hf: r.Hf, Hg: r.Hg, Sf: r.Sf, Sg: r.Sg, Vf: r.Vf, Vg: r.Vg}
}

func transform(xs []float64, log bool) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if log {
			out[i] = math.Log(x)
		} else {
			out[i] = x
		}
	}
	return out
}

// fitInverse returns nil when ys is not strictly monotonic.
func fitInverse(ys, ts []float64, log bool) *inverse {
	keys := transform(ys, log)
	n := len(keys)
	increasing, decreasing := true, true
	for i := 1; i < n; i++ {
		if keys[i] <= keys[i-1] {
			increasing = false
		}
		if keys[i] >= keys[i-1] {
			decreasing = false
		}
	}
	if !increasing && !decreasing {
		return nil
	}

	xs := make([]float64, n)
	vs := make([]float64, n)
	for i := range keys {
		j := i
		if decreasing {
			j = n - 1 - i
		}
		xs[i] = keys[j]
		vs[i] = ts[j]
	}
	inv := &inverse{min: math.Min(ys[0], ys[n-1]), max: math.Max(ys[0], ys[n-1]), log: log}
	if err := inv.fit.Fit(xs, vs); err != nil {
		return nil
	}
	return inv
}

// PressureRange returns the tabulated saturation pressure span in kPa.
func (l *Locator) PressureRange() (min, max float64) {
	return l.first.P, l.last.P
}

// TemperatureRange returns the tabulated saturation temperature span in °C.
func (l *Locator) TemperatureRange() (min, max float64) {
	return l.first.T, l.last.T
}

// Top returns the boundary at the highest tabulated pressure.
func (l *Locator) Top() Boundary {
	return l.last
}

// VaporEnds returns the vapor value of p at the lowest and highest tabulated
// temperatures.
func (l *Locator) VaporEnds(p Prop) (low, high float64) {
	return l.first.Vapor(p), l.last.Vapor(p)
}

// ByPressure returns the saturation boundary at p kPa.
func (l *Locator) ByPressure(p float64) (Boundary, error) {
	p, err := inRange("pressure", p, l.first.P, l.last.P)
	if err != nil {
		return Boundary{}, err
	}
	b := l.eval(&l.byP, math.Log(p))
	b.P = p
	return b, nil
}

// ByTemperature returns the saturation boundary at t °C.
func (l *Locator) ByTemperature(t float64) (Boundary, error) {
	t, err := inRange("temperature", t, l.first.T, l.last.T)
	if err != nil {
		return Boundary{}, err
	}
	b := l.eval(&l.byT, t)
	b.T = t
	return b, nil
}

// Liquid returns the boundary whose saturated liquid value of p equals y.
func (l *Locator) Liquid(p Prop, y float64) (Boundary, error) {
	return l.invert(l.liquid[p], "saturated liquid "+p.String(), liquidColumn(p), y)
}

// Vapor returns the boundary whose saturated vapor value of p equals y.
func (l *Locator) Vapor(p Prop, y float64) (Boundary, error) {
	return l.invert(l.vapor[p], "saturated vapor "+p.String(), vaporColumn(p), y)
}

func (l *Locator) invert(inv *inverse, quantity string, c column, y float64) (Boundary, error) {
	if inv == nil {
		return Boundary{}, fmt.Errorf("%s: %w", quantity, ErrNotMonotonic)
	}
	y, err := inRange(quantity, y, inv.min, inv.max)
	if err != nil {
		return Boundary{}, err
	}
	key := y
	if inv.log {
		key = math.Log(y)
	}
	guess := inv.fit.Predict(key)

	// The inverse fit is a separate interpolant; polish against the forward
	// curve so ByTemperature(T) reproduces y.
	target := key
	residual := func(t float64) (float64, error) {
		v := l.byT[c].Predict(t)
		return (v - target) / math.Max(math.Abs(target), 1), nil
	}
	opts := solver.DefaultOptions()
	opts.Lo, opts.Hi = l.first.T, l.last.T
	t := guess
	if res, err := solver.Solve(residual, guess, opts); err == nil {
		t = res.X
	}
	return l.ByTemperature(t)
}

func (l *Locator) eval(fits *[numColumns]interp.FritschButland, key float64) Boundary {
	v := func(c column) float64 {
		y := fits[c].Predict(key)
		if c.log() {
			return math.Exp(y)
		}
		return y
	}
	return Boundary{
		T:  v(colT),
		P:  v(colP),
		Hf: v(colHf),
		Hg: v(colHg),
		Sf: v(colSf),
		Sg: v(colSg),
		Vf: v(colVf),
		Vg: v(colVg),
	}
}

// inRange clamps v into [min, max] when it is within rounding of the span
// and rejects it otherwise.
func inRange(quantity string, v, min, max float64) (float64, error) {
	if math.IsNaN(v) || v < min-rangeSlack*math.Max(1, math.Abs(min)) || v > max+rangeSlack*math.Max(1, math.Abs(max)) {
		return v, &tables.RangeError{Quantity: quantity, Value: v, Min: min, Max: max}
	}
	return math.Max(min, math.Min(max, v)), nil
}
