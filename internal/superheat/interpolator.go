package superheat

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/roach88/steam/internal/tables"
)

// weightTol accepts query points that sit on a triangle edge up to rounding.
const weightTol = 1e-9

// mesh is the triangulation of the samples projected onto one axis pair.
type mesh struct {
	once  sync.Once
	pts   []r2.Vec
	tris  [][3]int
	min   r2.Vec
	scale r2.Vec
}

// Interpolator answers two-property superheated lookups.
type Interpolator struct {
	// coords[a][i] is sample i on axis a, log transformed where needed.
	coords [numAxes][]float64
	meshes [numAxes][numAxes]*mesh
}

// New builds an Interpolator over the superheated samples of t and the
// saturated vapor rows of t that lie within the superheated pressure span.
// The vapor rows close the hull along the saturation line between
// tabulated isobars.
func New(t *tables.Tables) *Interpolator {
	samples := withVaporLine(t.Superheated(), t.Saturation())
	ip := &Interpolator{}
	for a := Axis(0); a < numAxes; a++ {
		ip.coords[a] = make([]float64, len(samples))
	}
	for i, s := range samples {
		vals := [numAxes]float64{s.T, s.P, s.H, s.S, s.V}
		for a, v := range vals {
			if Axis(a).log() {
				v = math.Log(v)
			}
			ip.coords[a][i] = v
		}
	}
	for a := Axis(0); a < numAxes; a++ {
		for b := a + 1; b < numAxes; b++ {
			ip.meshes[a][b] = &mesh{}
		}
	}
	return ip
}

// withVaporLine appends a saturated vapor sample for every row of sat
// inside the pressure span of super. Rows whose (T, P) is already a
// superheated sample are skipped. Volumes follow the ideal-gas rule like
// the rest of the superheated set.
func withVaporLine(super []tables.SuperSample, sat []tables.SatSample) []tables.SuperSample {
	type key struct{ t, p float64 }
	have := make(map[key]bool, len(super))
	pMin, pMax := math.Inf(1), math.Inf(-1)
	for _, s := range super {
		have[key{s.T, s.P}] = true
		pMin, pMax = math.Min(pMin, s.P), math.Max(pMax, s.P)
	}
	for _, r := range sat {
		if r.P < pMin || r.P > pMax || have[key{r.T, r.P}] {
			continue
		}
		super = append(super, tables.SuperSample{
			T: r.T,
			P: r.P,
			H: r.Hg,
			S: r.Sg,
			V: tables.IdealGasVolume(r.T, r.P),
		})
	}
	return super
}

// Lookup returns the superheated state with axis a at av and axis b at bv.
// The two given values are echoed exactly in the result.
func (ip *Interpolator) Lookup(a Axis, av float64, b Axis, bv float64) (Point, error) {
	if a < 0 || a >= numAxes || b < 0 || b >= numAxes {
		return Point{}, fmt.Errorf("superheat: unknown axis pair (%v, %v)", a, b)
	}
	if a == b {
		return Point{}, fmt.Errorf("superheat: axes must differ, got %v twice", a)
	}

	outside := &tables.RangeError{
		Quantity: fmt.Sprintf("superheated state (%v=%g, %v=%g)", a, av, b, bv),
		Value:    av,
	}
	qa, ok := coordinate(a, av)
	if !ok {
		return Point{}, outside
	}
	qb, ok := coordinate(b, bv)
	if !ok {
		return Point{}, outside
	}

	x, y := a, b
	qx, qy := qa, qb
	if x > y {
		x, y = y, x
		qx, qy = qy, qx
	}
	m := ip.mesh(x, y)
	q := r2.Vec{X: (qx - m.min.X) * m.scale.X, Y: (qy - m.min.Y) * m.scale.Y}

	tri, w, ok := m.locate(q)
	if !ok {
		return Point{}, outside
	}

	var p Point
	for ax := Axis(0); ax < numAxes; ax++ {
		c := ip.coords[ax]
		v := w[0]*c[tri[0]] + w[1]*c[tri[1]] + w[2]*c[tri[2]]
		if ax.log() {
			v = math.Exp(v)
		}
		p.set(ax, v)
	}
	p.set(a, av)
	p.set(b, bv)
	if a != Volume && b != Volume {
		p.V = tables.IdealGasVolume(p.T, p.P)
	}
	return p, nil
}

func coordinate(a Axis, v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if a.log() {
		if v <= 0 {
			return 0, false
		}
		return math.Log(v), true
	}
	return v, true
}

// mesh returns the triangulation for x < y, building it on first use.
func (ip *Interpolator) mesh(x, y Axis) *mesh {
	m := ip.meshes[x][y]
	m.once.Do(func() {
		xs, ys := ip.coords[x], ip.coords[y]
		m.min = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
		max := r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
		for i := range xs {
			m.min.X, max.X = math.Min(m.min.X, xs[i]), math.Max(max.X, xs[i])
			m.min.Y, max.Y = math.Min(m.min.Y, ys[i]), math.Max(max.Y, ys[i])
		}
		m.scale = r2.Vec{X: 1 / (max.X - m.min.X), Y: 1 / (max.Y - m.min.Y)}

		m.pts = make([]r2.Vec, len(xs))
		for i := range xs {
			m.pts[i] = r2.Vec{X: (xs[i] - m.min.X) * m.scale.X, Y: (ys[i] - m.min.Y) * m.scale.Y}
		}
		m.tris = triangulate(m.pts)
	})
	return m
}

// locate finds the triangle containing q. Among candidates within weightTol
// it prefers the one with the largest minimum weight.
func (m *mesh) locate(q r2.Vec) ([3]int, [3]float64, bool) {
	var (
		bestTri [3]int
		bestW   [3]float64
		bestMin = -weightTol
		found   bool
	)
	for _, t := range m.tris {
		w, ok := barycentric(q, m.pts[t[0]], m.pts[t[1]], m.pts[t[2]])
		if !ok {
			continue
		}
		lo := math.Min(w[0], math.Min(w[1], w[2]))
		if lo >= bestMin {
			bestTri, bestW, bestMin, found = t, w, lo, true
			if lo >= 0 {
				break
			}
		}
	}
	return bestTri, bestW, found
}

// Triangles reports the triangle count for an axis pair. Used by the
// tables describe command.
func (ip *Interpolator) Triangles(a, b Axis) int {
	if a > b {
		a, b = b, a
	}
	if a == b || a < 0 || b >= numAxes {
		return 0
	}
	return len(ip.mesh(a, b).tris)
}
