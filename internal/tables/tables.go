package tables

import (
	"errors"
	"fmt"
	"math"
)

// Gas constants used to derive superheated specific volume.
const (
	GasConstant  = 8.314 // kJ/(kmol·K)
	MolarMass    = 18.0  // kg/kmol
	KelvinOffset = 273.0

	// BarToKPa converts on-disk pressures to kPa.
	BarToKPa = 100.0
)

// ErrInvalidTable is wrapped by every validation failure returned from New.
var ErrInvalidTable = errors.New("invalid table")

// SatSample is one row of the saturation table.
type SatSample struct {
	T  float64 `json:"t"`
	P  float64 `json:"p"`
	Hf float64 `json:"hf"`
	Hg float64 `json:"hg"`
	Sf float64 `json:"sf"`
	Sg float64 `json:"sg"`
	Vf float64 `json:"vf"`
	Vg float64 `json:"vg"`
}

// SuperSample is one superheated sample. V is derived, never read from disk.
type SuperSample struct {
	T float64 `json:"t"`
	P float64 `json:"p"`
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// Tables is an immutable, validated pair of reference tables.
type Tables struct {
	sat   []SatSample
	super []SuperSample
}

// IdealGasVolume returns the specific volume of vapor at T (°C) and P (kPa).
func IdealGasVolume(t, p float64) float64 {
	return GasConstant / MolarMass * (t + KelvinOffset) / p
}

// New validates the samples and returns Tables owning copies of them.
//
// The saturation rows must be strictly increasing in both T and P and
// physically ordered (hf < hg, sf < sg, vf < vg). The superheated table needs
// at least three samples with positive pressure. Missing superheated volumes
// are filled from IdealGasVolume.
func New(sat []SatSample, super []SuperSample) (*Tables, error) {
	if len(sat) < 2 {
		return nil, fmt.Errorf("%w: saturation table needs at least 2 rows, got %d", ErrInvalidTable, len(sat))
	}
	if len(super) < 3 {
		return nil, fmt.Errorf("%w: superheated table needs at least 3 rows, got %d", ErrInvalidTable, len(super))
	}

	t := &Tables{
		sat:   make([]SatSample, len(sat)),
		super: make([]SuperSample, len(super)),
	}
	copy(t.sat, sat)
	copy(t.super, super)

	for i, row := range t.sat {
		if !finite(row.T, row.P, row.Hf, row.Hg, row.Sf, row.Sg, row.Vf, row.Vg) {
			return nil, fmt.Errorf("%w: saturation row %d has a non-finite value", ErrInvalidTable, i)
		}
		if row.P <= 0 || row.Vf <= 0 || row.Vg <= 0 {
			return nil, fmt.Errorf("%w: saturation row %d: pressure and volumes must be positive", ErrInvalidTable, i)
		}
		if row.Hf >= row.Hg || row.Sf >= row.Sg || row.Vf >= row.Vg {
			return nil, fmt.Errorf("%w: saturation row %d: liquid values must be below vapor values", ErrInvalidTable, i)
		}
		if i == 0 {
			continue
		}
		prev := t.sat[i-1]
		if row.T <= prev.T {
			return nil, fmt.Errorf("%w: saturation temperature not increasing at row %d (%g after %g)", ErrInvalidTable, i, row.T, prev.T)
		}
		if row.P <= prev.P {
			return nil, fmt.Errorf("%w: saturation pressure not increasing at row %d (%g after %g)", ErrInvalidTable, i, row.P, prev.P)
		}
	}

	for i := range t.super {
		row := &t.super[i]
		if !finite(row.T, row.P, row.H, row.S) {
			return nil, fmt.Errorf("%w: superheated row %d has a non-finite value", ErrInvalidTable, i)
		}
		if row.P <= 0 {
			return nil, fmt.Errorf("%w: superheated row %d: pressure must be positive", ErrInvalidTable, i)
		}
		if row.V == 0 {
			row.V = IdealGasVolume(row.T, row.P)
		}
	}

	return t, nil
}

// Saturation returns a copy of the saturation rows, ordered by temperature.
func (t *Tables) Saturation() []SatSample {
	out := make([]SatSample, len(t.sat))
	copy(out, t.sat)
	return out
}

// Superheated returns a copy of the superheated samples in file order.
func (t *Tables) Superheated() []SuperSample {
	out := make([]SuperSample, len(t.super))
	copy(out, t.super)
	return out
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
