package steam

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/roach88/steam/internal/saturation"
)

// State is a named water/steam state. Properties are set individually;
// Resolve fills in the rest.
type State struct {
	Name string

	vals   [numProperties]float64
	known  [numProperties]bool
	region Region
	sat    *saturation.Boundary
}

// NewState returns an empty state.
func NewState(name string) *State {
	return &State{Name: name}
}

// Set assigns a property and returns the state for chaining.
func (s *State) Set(p Property, v float64) *State {
	if p.valid() {
		s.vals[p] = v
		s.known[p] = true
	}
	return s
}

// Value returns a property and whether it is known.
func (s *State) Value(p Property) (float64, bool) {
	if !p.valid() || !s.known[p] {
		return math.NaN(), false
	}
	return s.vals[p], true
}

// Known reports whether p is set.
func (s *State) Known(p Property) bool {
	return p.valid() && s.known[p]
}

func (s *State) get(p Property) float64 {
	v, _ := s.Value(p)
	return v
}

// Pressure returns P in kPa, or NaN when unknown.
func (s *State) Pressure() float64 { return s.get(Pressure) }

// Temperature returns T in °C, or NaN when unknown.
func (s *State) Temperature() float64 { return s.get(Temperature) }

// Quality returns x, or NaN when unknown.
func (s *State) Quality() float64 { return s.get(Quality) }

// Volume returns v in m³/kg, or NaN when unknown.
func (s *State) Volume() float64 { return s.get(Volume) }

// Enthalpy returns h in kJ/kg, or NaN when unknown.
func (s *State) Enthalpy() float64 { return s.get(Enthalpy) }

// Entropy returns s in kJ/(kg·K), or NaN when unknown.
func (s *State) Entropy() float64 { return s.get(Entropy) }

// Region returns the phase region, Unknown before resolution.
func (s *State) Region() Region { return s.region }

// Saturation returns the saturation boundary computed while resolving, if
// the handler needed one.
func (s *State) Saturation() (saturation.Boundary, bool) {
	if s.sat == nil {
		return saturation.Boundary{}, false
	}
	return *s.sat, true
}

// Case returns the input pair Resolve would use for s.
func (s *State) Case() (Case, error) {
	return Classify(s.known)
}

// Resolved reports whether every property is known.
func (s *State) Resolved() bool {
	for _, k := range s.known {
		if !k {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	if s.sat != nil {
		b := *s.sat
		c.sat = &b
	}
	return &c
}

// Format writes the state report.
func (s *State) Format(w io.Writer) error {
	var buf bytes.Buffer
	if s.Name != "" {
		fmt.Fprintf(&buf, "Name: %s\n", s.Name)
	}
	if s.region != Unknown {
		fmt.Fprintf(&buf, "Region: %s\n", s.region)
	}
	if v, ok := s.Value(Pressure); ok {
		fmt.Fprintf(&buf, "p = %.2f kPa\n", v)
	}
	if v, ok := s.Value(Temperature); ok {
		fmt.Fprintf(&buf, "T = %.1f degrees C\n", v)
	}
	if v, ok := s.Value(Enthalpy); ok {
		fmt.Fprintf(&buf, "h = %.2f kJ/kg\n", v)
	}
	if v, ok := s.Value(Entropy); ok {
		fmt.Fprintf(&buf, "s = %.4f kJ/(kg K)\n", v)
	}
	if v, ok := s.Value(Volume); ok {
		fmt.Fprintf(&buf, "v = %.6f m^3/kg\n", v)
	}
	if v, ok := s.Value(Quality); ok {
		fmt.Fprintf(&buf, "x = %.4f\n", v)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// String returns the state report.
func (s *State) String() string {
	var buf bytes.Buffer
	_ = s.Format(&buf)
	return buf.String()
}

// stateJSON is the wire form. Unknown properties are omitted.
type stateJSON struct {
	Name       string               `json:"name,omitempty"`
	Region     *Region              `json:"region,omitempty"`
	P          *float64             `json:"P,omitempty"`
	T          *float64             `json:"T,omitempty"`
	X          *float64             `json:"x,omitempty"`
	V          *float64             `json:"v,omitempty"`
	H          *float64             `json:"h,omitempty"`
	S          *float64             `json:"s,omitempty"`
	Saturation *saturation.Boundary `json:"saturation,omitempty"`
}

func (j *stateJSON) fields() [numProperties]**float64 {
	return [numProperties]**float64{&j.P, &j.T, &j.X, &j.V, &j.H, &j.S}
}

func (s *State) MarshalJSON() ([]byte, error) {
	j := stateJSON{Name: s.Name, Saturation: s.sat}
	if s.region != Unknown {
		r := s.region
		j.Region = &r
	}
	for p, f := range j.fields() {
		if s.known[p] {
			v := s.vals[p]
			*f = &v
		}
	}
	return json.Marshal(j)
}

func (s *State) UnmarshalJSON(data []byte) error {
	var j stateJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	out := State{Name: j.Name, sat: j.Saturation}
	if j.Region != nil {
		out.region = *j.Region
	}
	for p, f := range j.fields() {
		if *f != nil {
			out.Set(Property(p), **f)
		}
	}
	*s = out
	return nil
}

func (s *State) knownMask() [numProperties]bool {
	return s.known
}
