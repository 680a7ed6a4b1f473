package steam

import (
	"math"

	"github.com/roach88/steam/internal/superheat"
)

// handler resolves one Case into w.
type handler func(r *Resolver, w *work) error

var handlers = [numCases]handler{
	CasePT: (*Resolver).resolvePT,
	CasePx: (*Resolver).resolvePx,
	CasePv: pressureWith(Volume),
	CasePh: pressureWith(Enthalpy),
	CasePs: pressureWith(Entropy),
	CaseTx: (*Resolver).resolveTx,
	CaseTv: temperatureWith(Volume),
	CaseTh: temperatureWith(Enthalpy),
	CaseTs: temperatureWith(Entropy),
	CaseXV: qualityWith(Volume),
	CaseXH: qualityWith(Enthalpy),
	CaseXS: qualityWith(Entropy),
	CaseVH: twoProperty(Volume, Enthalpy),
	CaseVS: twoProperty(Volume, Entropy),
	CaseHS: twoProperty(Enthalpy, Entropy),
}

func (r *Resolver) resolvePT(w *work) error {
	p, t := w.given(Pressure), w.given(Temperature)
	b, err := r.sat.ByPressure(p)
	if err != nil {
		return err
	}

	switch {
	case math.Abs(t-b.T) <= saturationTempTol:
		w.fillSaturated(b, 1)
	case t > b.T:
		pt, err := r.lookupVapor(b, superheat.Pressure, p, superheat.Temperature, t)
		if err != nil {
			return err
		}
		w.fillSuperheated(pt)
		w.sat = &b
	default:
		bt, err := r.sat.ByTemperature(t)
		if err != nil {
			return err
		}
		w.fillSubCooled(p, bt)
		w.sat = &b
	}
	return nil
}

func (r *Resolver) resolvePx(w *work) error {
	x := w.given(Quality)
	if err := checkQuality(w.c, x); err != nil {
		return err
	}
	b, err := r.sat.ByPressure(w.given(Pressure))
	if err != nil {
		return err
	}
	w.fillSaturated(b, x)
	return nil
}

// pressureWith handles P with v, h or s. Below the liquid line h and s
// resolve as sub-cooled liquid; v is rejected.
func pressureWith(prop Property) handler {
	return func(r *Resolver, w *work) error {
		p, y := w.given(Pressure), w.given(prop)
		b, err := r.sat.ByPressure(p)
		if err != nil {
			return err
		}
		x, err := r.classifyAt(w, b, superheat.Pressure, p, prop, y)
		if err != nil || x >= -qualityTol {
			return err
		}

		switch prop {
		case Enthalpy:
			return r.subCooledFromEnthalpy(w, p, y, b)
		case Entropy:
			return r.subCooledFromEntropy(w, p, y, b)
		default:
			return &OutOfRangeError{Case: w.c, Quantity: "specific volume below saturated liquid", Value: y, Min: b.Vf, Max: b.Vg}
		}
	}
}

func (r *Resolver) resolveTx(w *work) error {
	x := w.given(Quality)
	if err := checkQuality(w.c, x); err != nil {
		return err
	}
	b, err := r.sat.ByTemperature(w.given(Temperature))
	if err != nil {
		return err
	}
	w.fillSaturated(b, x)
	return nil
}

// temperatureWith handles T with v, h or s. Above the highest saturation
// temperature only vapor exists. Liquid states are not resolvable from
// temperature alone.
func temperatureWith(prop Property) handler {
	return func(r *Resolver, w *work) error {
		t, y := w.given(Temperature), w.given(prop)
		if _, tMax := r.sat.TemperatureRange(); t > tMax {
			pt, err := r.super.Lookup(superheat.Temperature, t, prop.axis(), y)
			if err != nil {
				return err
			}
			w.fillSuperheated(pt)
			return nil
		}
		b, err := r.sat.ByTemperature(t)
		if err != nil {
			return err
		}
		x, err := r.classifyAt(w, b, superheat.Temperature, t, prop, y)
		if err != nil || x >= -qualityTol {
			return err
		}
		return &OutOfRangeError{
			Case:     w.c,
			Quantity: prop.twoPhase().String() + " below saturated liquid",
			Value:    y,
			Min:      b.Liquid(prop.twoPhase()),
			Max:      b.Vapor(prop.twoPhase()),
		}
	}
}

func qualityWith(prop Property) handler {
	return func(r *Resolver, w *work) error {
		return r.resolveQualityLed(w, prop)
	}
}

func twoProperty(primary, secondary Property) handler {
	return func(r *Resolver, w *work) error {
		return r.resolveTwoProperty(w, primary, secondary)
	}
}
