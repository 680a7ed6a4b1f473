package superheat

import (
	"math"

	"github.com/fogleman/delaunay"
	"gonum.org/v1/gonum/spatial/r2"
)

// triangulate returns the Delaunay triangles of pts as vertex indices.
// Coincident points keep only their first occurrence. Fewer than three
// points, or all of them on one line, give no triangles.
func triangulate(pts []r2.Vec) [][3]int {
	first := make(map[r2.Vec]bool, len(pts))
	in := make([]delaunay.Point, 0, len(pts))
	index := make([]int, 0, len(pts))
	for i, p := range pts {
		if first[p] {
			continue
		}
		first[p] = true
		in = append(in, delaunay.Point{X: p.X, Y: p.Y})
		index = append(index, i)
	}

	tri, err := delaunay.Triangulate(in)
	if err != nil {
		return nil
	}
	out := make([][3]int, 0, len(tri.Triangles)/3)
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		t := tri.Triangles[i : i+3]
		out = append(out, [3]int{index[t[0]], index[t[1]], index[t[2]]})
	}
	return out
}

// barycentric returns the weights of p with respect to a, b, c.
// ok is false for a degenerate triangle.
func barycentric(p, a, b, c r2.Vec) (w [3]float64, ok bool) {
	d := r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
	if math.Abs(d) < 1e-14 {
		return w, false
	}
	w[0] = r2.Cross(r2.Sub(b, p), r2.Sub(c, p)) / d
	w[1] = r2.Cross(r2.Sub(c, p), r2.Sub(a, p)) / d
	w[2] = 1 - w[0] - w[1]
	return w, true
}
