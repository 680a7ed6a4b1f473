package superheat

import (
	"errors"
	"math"

	"github.com/roach88/steam/internal/tables"
)

// edgeBisections bounds the search for where the line a = av enters the
// hull.
const edgeBisections = 48

// LookupFrom is Lookup for queries next to a known boundary state g, such
// as saturated vapor. g must lie on the line where axis a equals av.
//
// Between two samples the hull edge is a chord that can pass just inside
// the true boundary, leaving a strip the mesh does not cover. A query in
// that strip, no further than reach from g along axis b, is blended
// linearly between g and the first hull state on the same line. Log axes
// blend in log space, as the mesh does. Queries the mesh covers are
// answered by Lookup unchanged.
func (ip *Interpolator) LookupFrom(g Point, a Axis, av float64, b Axis, bv float64, reach float64) (Point, error) {
	p, err := ip.Lookup(a, av, b, bv)
	var re *tables.RangeError
	if err == nil || !errors.As(err, &re) {
		return p, err
	}

	gb := g.get(b)
	d := bv - gb
	if !(reach > 0) || math.IsNaN(d) || math.Abs(d) > reach {
		return Point{}, err
	}
	if d == 0 {
		g.set(a, av)
		g.set(b, bv)
		return g, nil
	}

	// Walk away from g until the line enters the hull.
	out, in := bv, math.NaN()
	var hit Point
	for step := 2 * d; ; step *= 2 {
		last := math.Abs(step) >= reach
		if last {
			step = math.Copysign(reach, d)
		}
		if q, qerr := ip.Lookup(a, av, b, gb+step); qerr == nil {
			in, hit = gb+step, q
			break
		}
		out = gb + step
		if last {
			return Point{}, err
		}
	}
	for i := 0; i < edgeBisections; i++ {
		mid := 0.5 * (out + in)
		if mid == out || mid == in {
			break
		}
		if q, qerr := ip.Lookup(a, av, b, mid); qerr == nil {
			in, hit = mid, q
		} else {
			out = mid
		}
	}

	f := d / (in - gb)
	for ax := Axis(0); ax < numAxes; ax++ {
		lo, hi := g.get(ax), hit.get(ax)
		if ax.log() {
			p.set(ax, math.Exp(math.Log(lo)+f*(math.Log(hi)-math.Log(lo))))
		} else {
			p.set(ax, lo+f*(hi-lo))
		}
	}
	p.set(a, av)
	p.set(b, bv)
	if a != Volume && b != Volume {
		p.V = tables.IdealGasVolume(p.T, p.P)
	}
	return p, nil
}
