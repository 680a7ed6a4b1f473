package superheat

import (
	"fmt"
	"math"
)

// Axis is one superheated property.
type Axis int

const (
	Temperature Axis = iota
	Pressure
	Enthalpy
	Entropy
	Volume
	numAxes
)

var axisSymbols = [numAxes]string{"T", "P", "h", "s", "v"}

func (a Axis) String() string {
	if a < 0 || a >= numAxes {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisSymbols[a]
}

// log reports whether the axis is interpolated in log space.
func (a Axis) log() bool {
	return a == Pressure || a == Volume
}

// Point is a fully specified superheated state.
type Point struct {
	T float64 `json:"t"`
	P float64 `json:"p"`
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

func (p *Point) set(a Axis, v float64) {
	switch a {
	case Temperature:
		p.T = v
	case Pressure:
		p.P = v
	case Enthalpy:
		p.H = v
	case Entropy:
		p.S = v
	case Volume:
		p.V = v
	}
}

func (p Point) get(a Axis) float64 {
	switch a {
	case Temperature:
		return p.T
	case Pressure:
		return p.P
	case Enthalpy:
		return p.H
	case Entropy:
		return p.S
	case Volume:
		return p.V
	}
	return math.NaN()
}
