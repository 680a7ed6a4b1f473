package solver

import (
	"errors"
	"fmt"
	"math"
)

// Func is a residual whose root is sought. An error marks x as outside the
// residual's domain; the solver steers away from such points.
type Func func(x float64) (float64, error)

// Method names reported in Result.
const (
	MethodSecant = "secant"
	MethodBrent  = "brent"
)

const epsilon = 2.220446049250313e-16

// Options controls convergence. Lo and Hi bound the search domain; the
// bracketing fallback only runs when both are finite.
type Options struct {
	Tol       float64 // accept when |f(x)| <= Tol
	XTol      float64 // relative step size treated as converged
	MaxIter   int
	ScanSteps int
	Lo        float64
	Hi        float64
}

// DefaultOptions returns the options used by the resolver.
func DefaultOptions() Options {
	return Options{
		Tol:       1e-10,
		XTol:      1e-12,
		MaxIter:   100,
		ScanSteps: 64,
		Lo:        math.Inf(-1),
		Hi:        math.Inf(1),
	}
}

// Result is a converged root.
type Result struct {
	X          float64
	F          float64
	Iterations int
	Method     string
}

// ConvergenceError reports a root that could not be found.
type ConvergenceError struct {
	Method     string
	Iterations int
	X          float64
	F          float64
	Reason     string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations (x=%g, f=%g): %s",
		e.Method, e.Iterations, e.X, e.F, e.Reason)
}

// IsConvergenceError reports whether err wraps a *ConvergenceError.
func IsConvergenceError(err error) bool {
	var ce *ConvergenceError
	return errors.As(err, &ce)
}

// Solve finds x with f(x) ≈ 0 starting from x0.
func Solve(f Func, x0 float64, opts Options) (Result, error) {
	opts = opts.withDefaults()

	res, ok := secant(f, x0, opts)
	if ok {
		return res, nil
	}
	if math.IsInf(opts.Lo, 0) || math.IsInf(opts.Hi, 0) {
		return Result{}, &ConvergenceError{
			Method:     MethodSecant,
			Iterations: res.Iterations,
			X:          res.X,
			F:          res.F,
			Reason:     "secant stalled and the domain is unbounded",
		}
	}

	a, b, fa, fb, found := scan(f, x0, opts)
	if !found {
		return Result{}, &ConvergenceError{
			Method:     MethodBrent,
			Iterations: res.Iterations,
			X:          res.X,
			F:          res.F,
			Reason:     fmt.Sprintf("no sign change in [%g, %g]", opts.Lo, opts.Hi),
		}
	}
	return brent(f, a, b, fa, fb, opts)
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tol <= 0 {
		o.Tol = d.Tol
	}
	if o.XTol <= 0 {
		o.XTol = d.XTol
	}
	if o.MaxIter <= 0 {
		o.MaxIter = d.MaxIter
	}
	if o.ScanSteps <= 0 {
		o.ScanSteps = d.ScanSteps
	}
	if o.Lo == 0 && o.Hi == 0 {
		o.Lo, o.Hi = d.Lo, d.Hi
	}
	return o
}

func (o Options) inDomain(x float64) bool {
	return x >= o.Lo && x <= o.Hi && !math.IsNaN(x)
}

// secant returns ok=false with the last iterate when it cannot finish.
func secant(f Func, x0 float64, opts Options) (Result, bool) {
	if !opts.inDomain(x0) {
		x0 = clamp(x0, opts.Lo, opts.Hi)
	}
	f0, err := f(x0)
	if err != nil {
		return Result{X: x0, F: math.NaN()}, false
	}
	if math.Abs(f0) <= opts.Tol {
		return Result{X: x0, F: f0, Method: MethodSecant}, true
	}

	h := 1e-4 * math.Max(1, math.Abs(x0))
	x1 := x0 + h
	if !opts.inDomain(x1) {
		x1 = x0 - h
	}
	f1, err := f(x1)
	if err != nil {
		return Result{X: x0, F: f0}, false
	}

	for i := 1; i <= opts.MaxIter; i++ {
		if math.Abs(f1) <= opts.Tol {
			return Result{X: x1, F: f1, Iterations: i, Method: MethodSecant}, true
		}
		if f1 == f0 {
			return Result{X: x1, F: f1, Iterations: i}, false
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		if !opts.inDomain(x2) {
			return Result{X: x1, F: f1, Iterations: i}, false
		}
		f2, err := f(x2)
		if err != nil {
			return Result{X: x1, F: f1, Iterations: i}, false
		}
		if math.Abs(x2-x1) <= opts.XTol*(1+math.Abs(x2)) && math.Abs(f2) <= math.Sqrt(opts.Tol) {
			return Result{X: x2, F: f2, Iterations: i, Method: MethodSecant}, true
		}
		x0, f0 = x1, f1
		x1, f1 = x2, f2
	}
	return Result{X: x1, F: f1, Iterations: opts.MaxIter}, false
}

// scan samples [Lo, Hi] and returns the sign-change cell nearest x0.
// Points the residual rejects are skipped.
func scan(f Func, x0 float64, opts Options) (a, b, fa, fb float64, found bool) {
	n := opts.ScanSteps
	step := (opts.Hi - opts.Lo) / float64(n)
	best := math.Inf(1)

	prevX, prevF, havePrev := 0.0, 0.0, false
	for i := 0; i <= n; i++ {
		x := opts.Lo + float64(i)*step
		if i == n {
			x = opts.Hi
		}
		fx, err := f(x)
		if err != nil || math.IsNaN(fx) {
			havePrev = false
			continue
		}
		if havePrev && (fx == 0 || math.Signbit(fx) != math.Signbit(prevF)) {
			d := math.Abs(0.5*(prevX+x) - x0)
			if d < best {
				best = d
				a, b, fa, fb, found = prevX, x, prevF, fx, true
			}
		}
		prevX, prevF, havePrev = x, fx, true
	}
	return a, b, fa, fb, found
}

// brent polishes a bracketed root.
func brent(f Func, a, b, fa, fb float64, opts Options) (Result, error) {
	if fa == 0 {
		return Result{X: a, F: 0, Method: MethodBrent}, nil
	}
	if fb == 0 {
		return Result{X: b, F: 0, Method: MethodBrent}, nil
	}

	c, fc := b, fb
	var d, e float64
	tol := opts.XTol * math.Max(1, math.Abs(b))

	for i := 1; i <= opts.MaxIter; i++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2*epsilon*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 || math.Abs(fb) <= opts.Tol {
			return Result{X: b, F: fb, Iterations: i, Method: MethodBrent}, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		var err error
		fb, err = f(b)
		if err != nil {
			return Result{}, &ConvergenceError{
				Method:     MethodBrent,
				Iterations: i,
				X:          b,
				F:          math.NaN(),
				Reason:     err.Error(),
			}
		}
	}
	return Result{}, &ConvergenceError{
		Method:     MethodBrent,
		Iterations: opts.MaxIter,
		X:          b,
		F:          fb,
		Reason:     "iteration limit reached",
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
