package export

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cwbudde/algo-speaker/speaker/sim"
)

// Plot dimensions.
const (
	PlotWidth       = 8 * vg.Inch
	PlotPanelHeight = 3 * vg.Inch
)

// curve is one named trace of a panel.
type curve struct {
	name string
	x, y []float64
}

// panel builds one plot with a logarithmic frequency axis unless linear is
// set.
func panel(title, xlabel, ylabel string, linear bool, curves ...curve) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	if !linear {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		pts := xys(c.x, c.y)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("export: %s: %w", c.name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		if len(curves) > 1 {
			p.Legend.Add(c.name, line)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// xys drops non-finite points, which the plotters reject.
func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	return pts
}

// Plot renders SPL, impedance, excursion and, when present, the step
// response as stacked panels into a PNG.
func Plot(w io.Writer, res *sim.Results) error {
	spl := []curve{{"total", res.Freq, res.SPL}}
	if res.SPLCone != nil && res.SPLPort != nil {
		spl = append(spl, curve{"cone", res.Freq, res.SPLCone}, curve{"port", res.Freq, res.SPLPort})
	}

	var plots []*plot.Plot
	add := func(p *plot.Plot, err error) error {
		if err != nil {
			return err
		}
		plots = append(plots, p)
		return nil
	}
	if err := add(panel("Sound pressure level", "f [Hz]", "SPL [dB]", false, spl...)); err != nil {
		return err
	}
	if err := add(panel("Input impedance", "f [Hz]", "|Z| [Ω]", false, curve{"|Z|", res.Freq, res.ZMag})); err != nil {
		return err
	}
	if err := add(panel("Cone excursion", "f [Hz]", "x [mm]", false, curve{"x", res.Freq, res.DisplacementMM})); err != nil {
		return err
	}
	if res.Step != nil {
		n := len(res.Step.X) / 2
		if err := add(panel("Step response", "t [ms]", "x / max|x|", true,
			curve{"step", res.Step.TimeMS[:n], res.Step.X[:n]})); err != nil {
			return err
		}
	}

	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	img := vgimg.New(PlotWidth, PlotPanelHeight*vg.Length(len(plots)))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 2 * vg.Millimeter,
	}
	canvases := plot.Align(rows, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("export: writing png: %w", err)
	}
	return nil
}
