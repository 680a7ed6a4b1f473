package cycle

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/roach88/steam/internal/saturation"
)

// Figure size of the T-s diagram.
const (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// domeSamples is the number of saturation temperatures sampled per side of
// the dome.
const domeSamples = 60

// SaturationDome samples the saturated-liquid and saturated-vapor lines on
// a T-s diagram, from the lowest tabulated temperature up to the highest
// and back down the vapor side.
func SaturationDome(loc *saturation.Locator) ([]TSPoint, error) {
	tMin, tMax := loc.TemperatureRange()
	liquid := make([]TSPoint, 0, domeSamples)
	vapor := make([]TSPoint, 0, domeSamples)
	for i := 0; i < domeSamples; i++ {
		t := tMin + (tMax-tMin)*float64(i)/float64(domeSamples-1)
		if i == domeSamples-1 {
			t = tMax
		}
		b, err := loc.ByTemperature(t)
		if err != nil {
			return nil, fmt.Errorf("saturation dome at %g: %w", t, err)
		}
		liquid = append(liquid, TSPoint{S: b.Sf, T: b.T})
		vapor = append(vapor, TSPoint{S: b.Sg, T: b.T})
	}
	for i := len(vapor) - 1; i >= 0; i-- {
		liquid = append(liquid, vapor[i])
	}
	return liquid, nil
}

func xys(pts []TSPoint) plotter.XYs {
	xy := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xy[i].X = p.S
		xy[i].Y = p.T
	}
	return xy
}

// PlotTS draws the cycle outline over the saturation dome. The dome may
// be nil.
func (res *Result) PlotTS(dome []TSPoint) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("T-s diagram: %s", res.Name)
	p.X.Label.Text = "s (kJ/(kg K))"
	p.Y.Label.Text = "T (degrees C)"
	p.Add(plotter.NewGrid())

	if len(dome) > 0 {
		l, err := plotter.NewLine(xys(dome))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = color.RGBA{B: 200, A: 255}
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		p.Legend.Add("saturation", l)
	}

	outline := xys(res.TSPoints())
	l, err := plotter.NewLine(outline)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = color.RGBA{R: 200, A: 255}
	l.LineStyle.Width = vg.Points(1.5)
	s, err := plotter.NewScatter(outline)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
	p.Add(l, s)
	p.Legend.Add("cycle", l, s)
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// WritePlot renders the T-s diagram to w in the given format (png, svg,
// pdf, eps, jpg or tiff).
func (res *Result) WritePlot(w io.Writer, dome []TSPoint, format string) error {
	p, err := res.PlotTS(dome)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePlot writes the T-s diagram to path; the extension picks the format.
func (res *Result) SavePlot(path string, dome []TSPoint) error {
	p, err := res.PlotTS(dome)
	if err != nil {
		return err
	}
	return p.Save(PlotWidth, PlotHeight, path)
}
