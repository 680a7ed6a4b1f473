package solver

import (
	"fmt"
	"math"
	"sort"
)

// MethodGolden names roots found where |f| grazes zero without a sign
// change.
const MethodGolden = "golden"

// goldenRatio is 1/φ.
var goldenRatio = (math.Sqrt(5) - 1) / 2

// Roots returns every root of f on [Lo, Hi] that a grid of ScanSteps cells
// reveals, in increasing order of x. Sign changes are polished with Brent.
// A grid point where |f| has a local minimum without a sign change is
// refined by golden-section search and kept when the minimum is at most
// graze; such points are tangent roots that no bracket contains.
//
// Points the residual rejects are skipped. An empty result is not an
// error.
func Roots(f Func, opts Options, graze float64) ([]Result, error) {
	opts = opts.withDefaults()
	if math.IsInf(opts.Lo, 0) || math.IsInf(opts.Hi, 0) || !(opts.Hi > opts.Lo) {
		return nil, fmt.Errorf("roots need a finite domain, got [%g, %g]", opts.Lo, opts.Hi)
	}

	n := opts.ScanSteps
	step := (opts.Hi - opts.Lo) / float64(n)
	xs := make([]float64, n+1)
	fs := make([]float64, n+1)
	ok := make([]bool, n+1)
	for i := range xs {
		xs[i] = opts.Lo + float64(i)*step
		if i == n {
			xs[i] = opts.Hi
		}
		fx, err := f(xs[i])
		fs[i], ok[i] = fx, err == nil && !math.IsNaN(fx)
	}

	var roots []Result
	for i := range xs {
		if ok[i] && fs[i] == 0 {
			roots = append(roots, Result{X: xs[i], Method: MethodBrent})
		}
	}
	for i := 1; i <= n; i++ {
		if !ok[i-1] || !ok[i] || fs[i-1]*fs[i] >= 0 {
			continue
		}
		res, err := brent(f, xs[i-1], xs[i], fs[i-1], fs[i], opts)
		if err != nil {
			continue
		}
		roots = append(roots, res)
	}
	if graze > 0 {
		for i := 1; i < n; i++ {
			if !ok[i-1] || !ok[i] || !ok[i+1] {
				continue
			}
			a, m, b := fs[i-1], fs[i], fs[i+1]
			if a*m <= 0 || m*b <= 0 {
				continue
			}
			if math.Abs(m) > math.Abs(a) || math.Abs(m) > math.Abs(b) {
				continue
			}
			res := golden(f, xs[i-1], xs[i+1], opts)
			if math.Abs(res.F) <= graze {
				roots = append(roots, res)
			}
		}
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].X < roots[j].X })
	return roots, nil
}

// golden minimizes |f| on [a, b].
func golden(f Func, a, b float64, opts Options) Result {
	abs := func(x float64) float64 {
		fx, err := f(x)
		if err != nil || math.IsNaN(fx) {
			return math.Inf(1)
		}
		return math.Abs(fx)
	}

	c := b - goldenRatio*(b-a)
	d := a + goldenRatio*(b-a)
	fc, fd := abs(c), abs(d)
	i := 1
	for ; i <= opts.MaxIter; i++ {
		if math.Abs(b-a) <= opts.XTol*(1+math.Abs(a)+math.Abs(b)) {
			break
		}
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - goldenRatio*(b-a)
			fc = abs(c)
		} else {
			a, c, fc = c, d, fd
			d = a + goldenRatio*(b-a)
			fd = abs(d)
		}
	}

	x := 0.5 * (a + b)
	fx, err := f(x)
	if err != nil {
		fx = math.NaN()
	}
	return Result{X: x, F: fx, Iterations: min(i, opts.MaxIter), Method: MethodGolden}
}
