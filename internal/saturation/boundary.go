package saturation

import "fmt"

// Prop selects one of the three two-phase properties.
type Prop int

const (
	Enthalpy Prop = iota
	Entropy
	Volume
	numProps
)

func (p Prop) String() string {
	switch p {
	case Enthalpy:
		return "enthalpy"
	case Entropy:
		return "entropy"
	case Volume:
		return "volume"
	default:
		return fmt.Sprintf("Prop(%d)", int(p))
	}
}

// Boundary is the saturation state at one pressure and temperature.
type Boundary struct {
	P  float64 `json:"p"`
	T  float64 `json:"t"`
	Hf float64 `json:"hf"`
	Hg float64 `json:"hg"`
	Sf float64 `json:"sf"`
	Sg float64 `json:"sg"`
	Vf float64 `json:"vf"`
	Vg float64 `json:"vg"`
}

// Liquid returns the saturated liquid value of p.
func (b Boundary) Liquid(p Prop) float64 {
	switch p {
	case Enthalpy:
		return b.Hf
	case Entropy:
		return b.Sf
	default:
		return b.Vf
	}
}

// Vapor returns the saturated vapor value of p.
func (b Boundary) Vapor(p Prop) float64 {
	switch p {
	case Enthalpy:
		return b.Hg
	case Entropy:
		return b.Sg
	default:
		return b.Vg
	}
}

// Mix returns yf + x(yg - yf).
func (b Boundary) Mix(p Prop, x float64) float64 {
	yf := b.Liquid(p)
	return yf + x*(b.Vapor(p)-yf)
}

// Quality returns (y - yf)/(yg - yf). The result is unbounded: below 0 the
// value lies on the liquid side, above 1 on the vapor side.
func (b Boundary) Quality(p Prop, y float64) float64 {
	yf := b.Liquid(p)
	return (y - yf) / (b.Vapor(p) - yf)
}
