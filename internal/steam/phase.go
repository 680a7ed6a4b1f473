package steam

import (
	"math"

	"github.com/roach88/steam/internal/saturation"
	"github.com/roach88/steam/internal/solver"
	"github.com/roach88/steam/internal/superheat"
	"github.com/roach88/steam/internal/tables"
)

const (
	// qualityTol absorbs rounding when a value sits on the saturation line.
	qualityTol = 1e-12

	// implicitQualityTol bounds the quality implied by an implicit solve.
	implicitQualityTol = 1e-6

	// saturationTempTol decides T == Tsat for the PT case.
	saturationTempTol = 1e-9
)

// QualityOf returns (y − yf)/(yg − yf) for a property y with saturated
// liquid value yf and saturated vapor value yg.
func QualityOf(y, yf, yg float64) float64 {
	return (y - yf) / (yg - yf)
}

// work is the scratch state a handler fills. Nothing reaches the caller's
// State until the handler succeeds.
type work struct {
	c      Case
	in     [numProperties]float64
	out    [numProperties]float64
	region Region
	sat    *saturation.Boundary
}

func newWork(c Case, s *State) *work {
	return &work{c: c, in: s.vals}
}

func (w *work) given(p Property) float64 {
	return w.in[p]
}

func (w *work) fillSaturated(b saturation.Boundary, x float64) {
	w.out[Pressure] = b.P
	w.out[Temperature] = b.T
	w.out[Quality] = x
	w.out[Volume] = b.Mix(saturation.Volume, x)
	w.out[Enthalpy] = b.Mix(saturation.Enthalpy, x)
	w.out[Entropy] = b.Mix(saturation.Entropy, x)
	w.region = Saturated
	w.sat = &b
}

func (w *work) fillSuperheated(p superheat.Point) {
	w.out[Pressure] = p.P
	w.out[Temperature] = p.T
	w.out[Quality] = 1
	w.out[Volume] = p.V
	w.out[Enthalpy] = p.H
	w.out[Entropy] = p.S
	w.region = Superheated
}

// fillSubCooled applies the compressed-liquid approximation at pressure p
// using the saturated liquid values at the state's own temperature.
func (w *work) fillSubCooled(p float64, bt saturation.Boundary) {
	w.out[Pressure] = p
	w.out[Temperature] = bt.T
	w.out[Quality] = 0
	w.out[Volume] = bt.Vf
	w.out[Enthalpy] = subCooledEnthalpy(p, bt)
	w.out[Entropy] = bt.Sf
	w.region = SubCooled
}

func subCooledEnthalpy(p float64, bt saturation.Boundary) float64 {
	return bt.Hf + (p-bt.P)*bt.Vf
}

// checkQuality rejects a supplied quality outside [0, 1].
func checkQuality(c Case, x float64) error {
	if x < 0 || x > 1 || math.IsNaN(x) {
		return &OutOfRangeError{Case: c, Quantity: "quality", Value: x, Min: 0, Max: 1}
	}
	return nil
}

// classifyAt resolves a state from the saturation boundary b and one more
// property y of kind p, by the quality that y implies at b.
// Returns the implied quality so callers can handle x < 0.
func (r *Resolver) classifyAt(w *work, b saturation.Boundary, lead superheat.Axis, leadVal float64, p Property, y float64) (float64, error) {
	x := b.Quality(p.twoPhase(), y)
	switch {
	case x > 1+qualityTol:
		pt, err := r.lookupVapor(b, lead, leadVal, p.axis(), y)
		if err != nil {
			return x, err
		}
		w.fillSuperheated(pt)
		w.sat = &b
	case x >= -qualityTol:
		w.fillSaturated(b, math.Max(0, math.Min(1, x)))
	}
	return x, nil
}

// vaporReach is how far past the saturated vapor value a superheated
// lookup is carried across the strip between the sample hull and the
// saturation line. Superheated volumes follow the ideal-gas rule and do
// not meet vg, so volume gets none.
func vaporReach(a superheat.Axis) float64 {
	switch a {
	case superheat.Temperature:
		return 1
	case superheat.Enthalpy:
		return 5
	case superheat.Entropy:
		return 0.01
	}
	return 0
}

// lookupVapor is a superheated lookup anchored on the saturated vapor
// state of b.
func (r *Resolver) lookupVapor(b saturation.Boundary, lead superheat.Axis, leadVal float64, axis superheat.Axis, y float64) (superheat.Point, error) {
	g := superheat.Point{T: b.T, P: b.P, H: b.Hg, S: b.Sg, V: tables.IdealGasVolume(b.T, b.P)}
	return r.super.LookupFrom(g, lead, leadVal, axis, y, vaporReach(axis))
}

// subCooledFromEnthalpy finds the temperature whose compressed-liquid
// enthalpy at pressure p equals h. bp is the boundary at p.
func (r *Resolver) subCooledFromEnthalpy(w *work, p, h float64, bp saturation.Boundary) error {
	tMin, _ := r.sat.TemperatureRange()
	liquidH := func(t float64) (float64, error) {
		bt, err := r.sat.ByTemperature(t)
		if err != nil {
			return 0, err
		}
		return subCooledEnthalpy(p, bt), nil
	}

	floor, err := liquidH(tMin)
	if err != nil {
		return err
	}
	if h < floor {
		return &OutOfRangeError{Case: w.c, Quantity: "compressed liquid enthalpy", Value: h, Min: floor, Max: bp.Hf}
	}

	t0 := tMin
	if bl, err := r.sat.Liquid(saturation.Enthalpy, h); err == nil {
		t0 = bl.T
	}
	scale := math.Max(math.Abs(h), 1)
	opts := r.solverOpts
	opts.Lo, opts.Hi = tMin, bp.T
	res, err := solver.Solve(func(t float64) (float64, error) {
		v, err := liquidH(t)
		return (v - h) / scale, err
	}, t0, opts)
	if err != nil {
		return err
	}

	bt, err := r.sat.ByTemperature(res.X)
	if err != nil {
		return err
	}
	w.fillSubCooled(p, bt)
	w.out[Enthalpy] = h
	w.sat = &bp
	return nil
}

// subCooledFromEntropy locates the liquid line where sf(T) = s.
func (r *Resolver) subCooledFromEntropy(w *work, p, s float64, bp saturation.Boundary) error {
	bt, err := r.sat.Liquid(saturation.Entropy, s)
	if err != nil {
		return err
	}
	w.fillSubCooled(p, bt)
	w.sat = &bp
	return nil
}
