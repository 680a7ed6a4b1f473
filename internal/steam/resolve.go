package steam

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/roach88/steam/internal/saturation"
	"github.com/roach88/steam/internal/solver"
	"github.com/roach88/steam/internal/superheat"
	"github.com/roach88/steam/internal/tables"
)

// Defaults for the resolver options.
const (
	DefaultTolerance     = 1e-3
	DefaultPressureGuess = 100.0 // kPa

	absoluteTolerance = 1e-6
)

// Resolver resolves states against one pair of reference tables.
type Resolver struct {
	tables *tables.Tables
	sat    *saturation.Locator
	super  *superheat.Interpolator

	solverOpts    solver.Options
	strict        bool
	tolerance     float64
	pressureGuess float64
	log           logrus.FieldLogger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSolverOptions sets the convergence controls for implicit cases. The
// search bounds are always taken from the tables.
func WithSolverOptions(o solver.Options) Option {
	return func(r *Resolver) { r.solverOpts = o }
}

// WithStrict enables the agreement check for supplied properties beyond
// the chosen pair.
func WithStrict(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

// WithTolerance sets the relative tolerance of the strict check.
func WithTolerance(rel float64) Option {
	return func(r *Resolver) {
		if rel > 0 {
			r.tolerance = rel
		}
	}
}

// WithPressureGuess sets the starting pressure (kPa) of quality-led
// solves. Where x with h or s has two saturation pressures, the guess
// decides which one is found.
func WithPressureGuess(p float64) Option {
	return func(r *Resolver) {
		if p > 0 {
			r.pressureGuess = p
		}
	}
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// NewResolver fits the saturation curves of t and prepares the superheated
// interpolator.
func NewResolver(t *tables.Tables, opts ...Option) (*Resolver, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tables")
	}
	sat, err := saturation.NewLocator(t)
	if err != nil {
		return nil, fmt.Errorf("build saturation locator: %w", err)
	}
	r := &Resolver{
		tables:        t,
		sat:           sat,
		super:         superheat.New(t),
		solverOpts:    solver.DefaultOptions(),
		tolerance:     DefaultTolerance,
		pressureGuess: DefaultPressureGuess,
		log:           logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
	defaultErr      error
)

// Default returns a shared resolver over the embedded tables.
func Default() (*Resolver, error) {
	defaultOnce.Do(func() {
		defaultResolver, defaultErr = NewResolver(tables.Default())
	})
	return defaultResolver, defaultErr
}

// Tables returns the reference tables the resolver was built from.
func (r *Resolver) Tables() *tables.Tables { return r.tables }

// Saturation returns the saturation locator.
func (r *Resolver) Saturation() *saturation.Locator { return r.sat }

// Superheat returns the superheated interpolator.
func (r *Resolver) Superheat() *superheat.Interpolator { return r.super }

// Resolve fills every unset property of s and its region. Supplied values
// are never changed. On error s is left exactly as it was.
func (r *Resolver) Resolve(s *State) error {
	if s.Resolved() && s.region != Unknown {
		return nil
	}
	c, err := Classify(s.knownMask())
	if err != nil {
		return err
	}

	log := r.log.WithFields(logrus.Fields{"case": c.String(), "state": s.Name})
	log.Debug("resolving state")

	w := newWork(c, s)
	if err := classify(c, handlers[c](r, w)); err != nil {
		log.WithError(err).Debug("resolution failed")
		return err
	}
	if r.strict {
		if err := r.checkAgreement(w, s); err != nil {
			return err
		}
	}

	for p := Property(0); p < numProperties; p++ {
		if !s.known[p] {
			s.vals[p] = w.out[p]
			s.known[p] = true
		}
	}
	s.region = w.region
	s.sat = w.sat
	log.WithField("region", w.region.String()).Debug("state resolved")
	return nil
}

// Calc resolves s and reports success. Failures are logged.
func (r *Resolver) Calc(s *State) bool {
	if err := r.Resolve(s); err != nil {
		r.log.WithFields(logrus.Fields{"state": s.Name, "code": CodeOf(err)}).WithError(err).Warn("state not resolved")
		return false
	}
	return true
}

// checkAgreement compares supplied properties outside the chosen pair with
// the resolved values.
func (r *Resolver) checkAgreement(w *work, s *State) error {
	if w.c == CasePT && w.region == Saturated {
		return nil
	}
	for p := Property(0); p < numProperties; p++ {
		if !s.known[p] || w.c.uses(p) {
			continue
		}
		given, resolved := s.vals[p], w.out[p]
		limit := r.tolerance*math.Max(math.Abs(given), math.Abs(resolved)) + absoluteTolerance
		if math.Abs(given-resolved) > limit {
			return &AmbiguousInputError{Case: w.c, Property: p, Given: given, Resolved: resolved}
		}
	}
	return nil
}
