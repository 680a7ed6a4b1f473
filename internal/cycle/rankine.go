package cycle

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/steam/internal/steam"
)

// Defaults for a Rankine cycle.
const (
	DefaultPLow              = 8.0    // kPa
	DefaultPHigh             = 8000.0 // kPa
	DefaultQuality           = 1.0
	DefaultTurbineEfficiency = 0.95
)

// Rankine describes a simple Rankine cycle. THigh is optional; without it
// the turbine inlet is taken at PHigh with the given quality.
type Rankine struct {
	Name              string   `json:"name"`
	PLow              float64  `json:"p_low"`
	PHigh             float64  `json:"p_high"`
	THigh             *float64 `json:"t_high,omitempty"`
	Quality           float64  `json:"quality"`
	TurbineEfficiency float64  `json:"turbine_efficiency"`
}

// New returns a cycle with the default pressures and efficiency.
func New(name string) Rankine {
	return Rankine{
		Name:              name,
		PLow:              DefaultPLow,
		PHigh:             DefaultPHigh,
		Quality:           DefaultQuality,
		TurbineEfficiency: DefaultTurbineEfficiency,
	}
}

// Result holds the cycle states and energy balance. Energies are kJ/kg,
// Efficiency is a percentage.
type Result struct {
	Name string `json:"name"`

	Inlet          *steam.State `json:"turbine_inlet"`
	IsentropicExit *steam.State `json:"isentropic_exit"`
	Exit           *steam.State `json:"turbine_exit"`
	PumpInlet      *steam.State `json:"pump_inlet"`
	PumpExit       *steam.State `json:"pump_exit"`

	TurbineWork float64 `json:"turbine_work"`
	PumpWork    float64 `json:"pump_work"`
	HeatAdded   float64 `json:"heat_added"`
	Efficiency  float64 `json:"efficiency"`

	highLiquid *steam.State
	highVapor  *steam.State
}

// Validate checks the cycle parameters.
func (c Rankine) Validate() error {
	var errs []error
	if c.PLow <= 0 {
		errs = append(errs, fmt.Errorf("p_low must be positive, got %g", c.PLow))
	}
	if c.PHigh <= c.PLow {
		errs = append(errs, fmt.Errorf("p_high (%g) must exceed p_low (%g)", c.PHigh, c.PLow))
	}
	if c.THigh == nil && (c.Quality < 0 || c.Quality > 1) {
		errs = append(errs, fmt.Errorf("quality must be within [0, 1], got %g", c.Quality))
	}
	if c.TurbineEfficiency <= 0 || c.TurbineEfficiency > 1 {
		errs = append(errs, fmt.Errorf("turbine efficiency must be within (0, 1], got %g", c.TurbineEfficiency))
	}
	return errors.Join(errs...)
}

// Calc resolves the cycle states against r.
func (c Rankine) Calc(r *steam.Resolver) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	inlet := steam.NewState("Turbine Inlet").Set(steam.Pressure, c.PHigh)
	if c.THigh != nil {
		inlet.Set(steam.Temperature, *c.THigh)
	} else {
		inlet.Set(steam.Quality, c.Quality)
	}
	if err := resolve(r, inlet); err != nil {
		return nil, err
	}

	exitS := steam.NewState("Turbine Exit").
		Set(steam.Pressure, c.PLow).
		Set(steam.Entropy, inlet.Entropy())
	if err := resolve(r, exitS); err != nil {
		return nil, err
	}

	exit := exitS
	if c.TurbineEfficiency < 1 {
		h2 := inlet.Enthalpy() - c.TurbineEfficiency*(inlet.Enthalpy()-exitS.Enthalpy())
		exit = steam.NewState("Turbine Exit").Set(steam.Pressure, c.PLow).Set(steam.Enthalpy, h2)
		if err := resolve(r, exit); err != nil {
			return nil, err
		}
	}

	pumpIn := steam.NewState("Pump Inlet").Set(steam.Pressure, c.PLow).Set(steam.Quality, 0)
	if err := resolve(r, pumpIn); err != nil {
		return nil, err
	}

	h4 := pumpIn.Enthalpy() + pumpIn.Volume()*(c.PHigh-c.PLow)
	pumpOut := steam.NewState("Pump Exit").Set(steam.Pressure, c.PHigh).Set(steam.Enthalpy, h4)
	if err := resolve(r, pumpOut); err != nil {
		return nil, err
	}

	liquid := steam.NewState("").Set(steam.Pressure, c.PHigh).Set(steam.Quality, 0)
	vapor := steam.NewState("").Set(steam.Pressure, c.PHigh).Set(steam.Quality, 1)
	for _, s := range []*steam.State{liquid, vapor} {
		if err := resolve(r, s); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Name:           c.Name,
		Inlet:          inlet,
		IsentropicExit: exitS,
		Exit:           exit,
		PumpInlet:      pumpIn,
		PumpExit:       pumpOut,
		TurbineWork:    inlet.Enthalpy() - exit.Enthalpy(),
		PumpWork:       pumpOut.Enthalpy() - pumpIn.Enthalpy(),
		HeatAdded:      inlet.Enthalpy() - pumpOut.Enthalpy(),
		highLiquid:     liquid,
		highVapor:      vapor,
	}
	res.Efficiency = 100 * (res.TurbineWork - res.PumpWork) / res.HeatAdded
	return res, nil
}

func resolve(r *steam.Resolver, s *steam.State) error {
	if err := r.Resolve(s); err != nil {
		return fmt.Errorf("%s: %w", stateLabel(s), err)
	}
	return nil
}

func stateLabel(s *steam.State) string {
	if s.Name == "" {
		return "saturation point"
	}
	return s.Name
}

// Summary writes the energy balance followed by the reports of states 1
// to 4.
func (res *Result) Summary(w io.Writer) error {
	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "Cycle Summary for: %s\n", res.Name); err != nil {
		return err
	}
	p.Fprintf(w, "\tEfficiency: %.3f%%\n", res.Efficiency)
	p.Fprintf(w, "\tTurbine Work: %.3f kJ/kg\n", res.TurbineWork)
	p.Fprintf(w, "\tPump Work: %.3f kJ/kg\n", res.PumpWork)
	p.Fprintf(w, "\tHeat Added: %.3f kJ/kg\n", res.HeatAdded)
	for _, s := range []*steam.State{res.Inlet, res.Exit, res.PumpInlet, res.PumpExit} {
		if err := s.Format(w); err != nil {
			return err
		}
	}
	return nil
}

// TSPoint is one vertex of the cycle on a T-s diagram.
type TSPoint struct {
	S float64 `json:"s"`
	T float64 `json:"T"`
}

// TSPoints returns the closed cycle outline on a T-s diagram: pump inlet,
// pump exit, along the high isobar through the dome to the turbine inlet,
// turbine exit and back to the pump inlet.
func (res *Result) TSPoints() []TSPoint {
	states := []*steam.State{
		res.PumpInlet,
		res.PumpExit,
		res.highLiquid,
		res.highVapor,
		res.Inlet,
		res.Exit,
		res.PumpInlet,
	}
	pts := make([]TSPoint, 0, len(states))
	for _, s := range states {
		if s == nil {
			continue
		}
		pts = append(pts, TSPoint{S: s.Entropy(), T: s.Temperature()})
	}
	return pts
}
