package steam

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/roach88/steam/internal/saturation"
	"github.com/roach88/steam/internal/solver"
	"github.com/roach88/steam/internal/tables"
)

const (
	// grazeTolerance is the quality mismatch accepted where the two implied
	// qualities touch without crossing. Interpolation noise on the
	// saturated-liquid line stays below it.
	grazeTolerance = 5e-6

	// twoPhaseScanFactor refines the solver grid for two-phase root
	// enumeration.
	twoPhaseScanFactor = 4

	methodLimit = "limit"
)

// resolveQualityLed solves x with v, h or s for the saturation pressure.
// The unknown is ln P so the solver works on the scale the curves vary on.
func (r *Resolver) resolveQualityLed(w *work, prop Property) error {
	x, y := w.given(Quality), w.given(prop)
	if err := checkQuality(w.c, x); err != nil {
		return err
	}

	sp := prop.twoPhase()
	scale := math.Max(math.Abs(y), 1e-12)
	pMin, pMax := r.sat.PressureRange()
	opts := r.solverOpts
	opts.Lo, opts.Hi = math.Log(pMin), math.Log(pMax)

	res, err := solver.Solve(func(lnP float64) (float64, error) {
		b, err := r.sat.ByPressure(math.Exp(lnP))
		if err != nil {
			return 0, err
		}
		return (y - b.Mix(sp, x)) / scale, nil
	}, math.Log(r.pressureGuess), opts)
	if err != nil {
		return err
	}
	r.traceSolve(w, res)

	b, err := r.sat.ByPressure(math.Exp(res.X))
	if err != nil {
		return err
	}
	w.fillSaturated(b, x)
	return nil
}

// resolveTwoProperty handles vh, vs and hs.
func (r *Resolver) resolveTwoProperty(w *work, primary, secondary Property) error {
	y1, y2 := w.given(primary), w.given(secondary)

	wet, err := r.underDome(primary, y1, secondary, y2)
	if err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{"case": w.c.String(), "two_phase": wet}).Debug("classified implicit state")

	if !wet {
		pt, err := r.super.Lookup(primary.axis(), y1, secondary.axis(), y2)
		if err != nil {
			return err
		}
		w.fillSuperheated(pt)
		return nil
	}
	return r.solveTwoPhase(w, primary, y1, secondary, y2)
}

// underDome decides whether (primary, secondary) lies in the two-phase
// region.
func (r *Resolver) underDome(primary Property, y1 float64, secondary Property, y2 float64) (bool, error) {
	p1, p2 := primary.twoPhase(), secondary.twoPhase()
	if y1 < r.sat.Top().Liquid(p1) {
		return true, nil
	}

	// hg is not monotonic along the curve, so an enthalpy-led pair is
	// located on the vapor line by its entropy.
	loc, locVal, cmp, cmpVal := p1, y1, p2, y2
	if p1 == saturation.Enthalpy {
		loc, locVal, cmp, cmpVal = p2, y2, p1, y1
	}

	b, err := r.sat.Vapor(loc, locVal)
	if err != nil {
		var re *tables.RangeError
		if !errors.As(err, &re) {
			return false, err
		}
		low, high := r.sat.VaporEnds(loc)
		offTop := (high < low && locVal < high) || (high > low && locVal > high)
		return offTop, nil
	}
	return cmpVal <= b.Vapor(cmp), nil
}

// solveTwoPhase finds the saturation temperature at which both given
// properties imply the same quality. The two extended quality lines also
// cross outside [0, 1], so roots are only sought below wetLimit, and of
// several admissible roots the hottest wins.
func (r *Resolver) solveTwoPhase(w *work, primary Property, y1 float64, secondary Property, y2 float64) error {
	p1, p2 := primary.twoPhase(), secondary.twoPhase()
	tMin, tMax := r.sat.TemperatureRange()
	hi := math.Min(r.wetLimit(p1, y1, p2, y2), tMax-1e-9*(tMax-tMin))

	residual := func(t float64) (float64, error) {
		b, err := r.sat.ByTemperature(t)
		if err != nil {
			return 0, err
		}
		return b.Quality(p1, y1) - b.Quality(p2, y2), nil
	}

	// On the saturated-liquid line the two qualities touch zero together at
	// the limit itself.
	if f, err := residual(hi); err == nil && math.Abs(f) <= grazeTolerance {
		return r.fillTwoPhase(w, p1, y1, solver.Result{X: hi, F: f, Method: methodLimit})
	}
	if hi <= tMin {
		return &OutOfRangeError{Case: w.c, Quantity: "saturation temperature", Value: hi, Min: tMin, Max: tMax}
	}

	opts := r.solverOpts
	if opts.ScanSteps <= 0 {
		opts.ScanSteps = solver.DefaultOptions().ScanSteps
	}
	opts.ScanSteps *= twoPhaseScanFactor
	opts.Lo, opts.Hi = tMin, hi
	roots, err := solver.Roots(residual, opts, grazeTolerance)
	if err != nil {
		return &ConvergenceError{Case: w.c, Err: err}
	}
	for i := len(roots) - 1; i >= 0; i-- {
		b, err := r.sat.ByTemperature(roots[i].X)
		if err != nil {
			return err
		}
		if x := b.Quality(p1, y1); x >= -implicitQualityTol && x <= 1+implicitQualityTol {
			return r.fillTwoPhase(w, p1, y1, roots[i])
		}
	}
	return &ConvergenceError{Case: w.c, Err: &solver.ConvergenceError{
		Method: solver.MethodBrent,
		X:      hi,
		F:      math.NaN(),
		Reason: fmt.Sprintf("no root with quality in [0, 1] in [%g, %g] °C (%d candidates)", tMin, hi, len(roots)),
	}}
}

func (r *Resolver) fillTwoPhase(w *work, p saturation.Prop, y float64, res solver.Result) error {
	b, err := r.sat.ByTemperature(res.X)
	if err != nil {
		return err
	}
	r.traceSolve(w, res)
	x := b.Quality(p, y)
	w.fillSaturated(b, math.Max(0, math.Min(1, x)))
	return nil
}

// wetLimit returns the highest saturation temperature at which the
// qualities implied by y1 and y2 can both lie in [0, 1]. Liquid values rise
// with temperature and vapor values fall, so every column with a monotone
// inverse bounds T from above. Lookups that fail leave the bound alone.
func (r *Resolver) wetLimit(p1 saturation.Prop, y1 float64, p2 saturation.Prop, y2 float64) float64 {
	_, limit := r.sat.TemperatureRange()
	for _, g := range []struct {
		p saturation.Prop
		y float64
	}{{p1, y1}, {p2, y2}} {
		if b, err := r.sat.Liquid(g.p, g.y); err == nil {
			limit = math.Min(limit, b.T)
		}
		if b, err := r.sat.Vapor(g.p, g.y); err == nil {
			limit = math.Min(limit, b.T)
		}
	}
	return limit
}

func (r *Resolver) traceSolve(w *work, res solver.Result) {
	r.log.WithFields(logrus.Fields{
		"case":       w.c.String(),
		"method":     res.Method,
		"iterations": res.Iterations,
		"root":       res.X,
	}).Debug("implicit solve converged")
}
