package tables

import "math"

// Span is a closed numeric interval.
type Span struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary describes the coverage of a pair of tables.
type Summary struct {
	SaturationRows   int  `json:"saturation_rows"`
	SuperheatedRows  int  `json:"superheated_rows"`
	SatPressure      Span `json:"sat_pressure_kpa"`
	SatTemperature   Span `json:"sat_temperature_c"`
	SuperPressure    Span `json:"super_pressure_kpa"`
	SuperTemperature Span `json:"super_temperature_c"`
	SuperEnthalpy    Span `json:"super_enthalpy"`
	SuperEntropy     Span `json:"super_entropy"`
}

// Summary reports row counts and the ranges covered by each table.
func (t *Tables) Summary() Summary {
	first, last := t.sat[0], t.sat[len(t.sat)-1]
	s := Summary{
		SaturationRows:   len(t.sat),
		SuperheatedRows:  len(t.super),
		SatPressure:      Span{first.P, last.P},
		SatTemperature:   Span{first.T, last.T},
		SuperPressure:    emptySpan(),
		SuperTemperature: emptySpan(),
		SuperEnthalpy:    emptySpan(),
		SuperEntropy:     emptySpan(),
	}
	for _, row := range t.super {
		s.SuperPressure.extend(row.P)
		s.SuperTemperature.extend(row.T)
		s.SuperEnthalpy.extend(row.H)
		s.SuperEntropy.extend(row.S)
	}
	return s
}

func emptySpan() Span {
	return Span{Min: math.Inf(1), Max: math.Inf(-1)}
}

func (s *Span) extend(v float64) {
	s.Min = math.Min(s.Min, v)
	s.Max = math.Max(s.Max, v)
}
