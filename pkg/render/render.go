// Package render draws the J-V and power-density curves of a solved sweep
// into an image file, with the classic annotations: open-circuit, short-
// circuit, and maximum power point markers.
package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"solarcell/pkg/sweep"
)

// Options controls the rendered figure.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions mirrors the 10×7 inch reference figure.
func DefaultOptions() Options {
	return Options{
		Title:  "Current-Voltage (J-V) Characteristics",
		Width:  10 * vg.Inch,
		Height: 7 * vg.Inch,
	}
}

// JV renders the curve and its derived metrics to path. The image format
// follows the file extension (.png, .svg, .pdf).
func JV(curve sweep.Curve, m sweep.Metrics, path string, opts Options) error {
	if len(curve) == 0 {
		return fmt.Errorf("cannot render an empty curve")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Voltage (V)"
	p.Y.Label.Text = "Current Density (mA/cm²) / Power Density (mW/cm²)"
	p.Add(plotter.NewGrid())

	jvXYs := make(plotter.XYs, len(curve))
	powerXYs := make(plotter.XYs, len(curve))
	for i, op := range curve {
		jvXYs[i] = plotter.XY{X: op.V, Y: op.J}
		powerXYs[i] = plotter.XY{X: op.V, Y: op.Power()}
	}

	jvLine, err := plotter.NewLine(jvXYs)
	if err != nil {
		return fmt.Errorf("building J-V line: %w", err)
	}
	jvLine.LineStyle.Width = vg.Points(2)
	jvLine.LineStyle.Color = color.RGBA{B: 255, A: 255}

	powerLine, err := plotter.NewLine(powerXYs)
	if err != nil {
		return fmt.Errorf("building power line: %w", err)
	}
	powerLine.LineStyle.Width = vg.Points(1.5)
	powerLine.LineStyle.Color = color.RGBA{R: 255, A: 255}
	powerLine.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}

	markers, err := plotter.NewScatter(plotter.XYs{
		{X: m.Voc, Y: 0},
		{X: 0, Y: m.Jsc},
		{X: m.VMPP, Y: m.JMPP},
	})
	if err != nil {
		return fmt.Errorf("building markers: %w", err)
	}
	markers.GlyphStyle.Radius = vg.Points(4)
	markers.GlyphStyle.Color = color.RGBA{R: 200, G: 80, A: 255}

	p.Add(jvLine, powerLine, markers)
	p.Legend.Add("J-V curve", jvLine)
	p.Legend.Add("Power density", powerLine)
	p.Legend.Add(fmt.Sprintf("Voc=%.3f V, Jsc=%.2f, MPP %.3f V", m.Voc, m.Jsc, m.VMPP), markers)
	p.Legend.Top = true

	p.X.Min, p.X.Max = curve[0].V, curve[len(curve)-1].V
	p.Y.Min, p.Y.Max = -2, m.Jsc*1.1

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("saving figure to %s: %w", path, err)
	}
	return nil
}
