package steam

import (
	"fmt"

	"github.com/roach88/steam/internal/saturation"
	"github.com/roach88/steam/internal/superheat"
)

// Property identifies one of the six state properties.
type Property int

const (
	Pressure Property = iota
	Temperature
	Quality
	Volume
	Enthalpy
	Entropy
	numProperties
)

var propertySymbols = [numProperties]string{"P", "T", "x", "v", "h", "s"}

var propertyUnits = [numProperties]string{"kPa", "°C", "", "m³/kg", "kJ/kg", "kJ/(kg·K)"}

// Properties returns all properties in canonical order.
func Properties() []Property {
	return []Property{Pressure, Temperature, Quality, Volume, Enthalpy, Entropy}
}

// String returns the property symbol.
func (p Property) String() string {
	if !p.valid() {
		return fmt.Sprintf("Property(%d)", int(p))
	}
	return propertySymbols[p]
}

// Unit returns the unit the property is expressed in.
func (p Property) Unit() string {
	if !p.valid() {
		return ""
	}
	return propertyUnits[p]
}

func (p Property) valid() bool {
	return p >= 0 && p < numProperties
}

// ParseProperty maps a symbol (P, T, x, v, h, s) to its Property.
func ParseProperty(sym string) (Property, error) {
	for i, s := range propertySymbols {
		if s == sym {
			return Property(i), nil
		}
	}
	return 0, fmt.Errorf("unknown property %q", sym)
}

// twoPhase maps a property to its saturation counterpart. Only volume,
// enthalpy and entropy have one.
func (p Property) twoPhase() saturation.Prop {
	switch p {
	case Enthalpy:
		return saturation.Enthalpy
	case Entropy:
		return saturation.Entropy
	default:
		return saturation.Volume
	}
}

func (p Property) axis() superheat.Axis {
	switch p {
	case Pressure:
		return superheat.Pressure
	case Temperature:
		return superheat.Temperature
	case Volume:
		return superheat.Volume
	case Enthalpy:
		return superheat.Enthalpy
	default:
		return superheat.Entropy
	}
}
