package renderers

import (
	"fmt"
	"image/color"

	"github.com/knitvis/knitvis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	legThickness = 1.0
	stitchHeight = 2.0
)

// FabricOptions configure FabricFigure and RasterizeFabric.
type FabricOptions struct {
	Ratio    float64 // displayed height of one row relative to the width of one column
	Padding  float64 // gap between legs and rows, in cells
	Outlines bool
	Width    vg.Length // figure width
}

// DefaultFabricOptions are the fabric options of knitvis.DefaultSettings.
var DefaultFabricOptions = NewFabricOptions(knitvis.DefaultSettings())

// NewFabricOptions returns the fabric options for the given settings.
func NewFabricOptions(s knitvis.Settings) FabricOptions {
	return FabricOptions{
		Ratio:    s.Fabric.Ratio,
		Padding:  s.Fabric.Padding,
		Outlines: s.Fabric.Outlines,
		Width:    vg.Points(s.Fabric.Width),
	}
}

// leg is a quadrilateral in fabric coordinates: x in columns, y in rows from the bottom.
type leg [4][2]float64

// stitchLegs returns the left and right leg of the V shape of the knit stitch in column j
// whose bottom edge lies at y. Legs are two rows high so that each row overlaps the one
// below it.
func stitchLegs(j int, y, padding float64) (leg, leg) {
	x := float64(j)
	yPad, xPad := 2.0*padding, padding
	left := leg{
		{x + 0.5 - xPad, y + yPad},
		{x + 0.5 - xPad, y + legThickness - yPad},
		{x + xPad, y + stitchHeight - yPad},
		{x + xPad, y + stitchHeight - legThickness + yPad},
	}
	right := leg{
		{x + 0.5 + xPad, y + yPad},
		{x + 0.5 + xPad, y + legThickness - yPad},
		{x + 1.0 - xPad, y + stitchHeight - yPad},
		{x + 1.0 - xPad, y + stitchHeight - legThickness + yPad},
	}
	return left, right
}

// checkKnitOnly returns ErrUnsupportedStitch for the first stitch that is not a knit.
func checkKnitOnly(ch *knitvis.Chart) error {
	stitches, err := ch.Stitches(knitvis.All, knitvis.All)
	if err != nil {
		return err
	}
	for i, row := range stitches {
		for j, s := range row {
			if s != knitvis.Knit {
				return fmt.Errorf("%w: %v at row %d column %d, only knit stitches can be rendered as fabric", knitvis.ErrUnsupportedStitch, s, i, j)
			}
		}
	}
	return nil
}

// fabricPlotter draws the chart bottom-up, chart row rows-1 at y=0, so that upper rows
// cover the top half of the row below.
type fabricPlotter struct {
	colors [][]color.RGBA
	opts   FabricOptions
}

func (p *fabricPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	edge := draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}

	rows := len(p.colors)
	for i := 0; i < rows; i++ {
		row := p.colors[rows-1-i]
		for j, rgba := range row {
			left, right := stitchLegs(j, float64(i), p.opts.Padding)
			for _, l := range []leg{left, right} {
				poly := make([]vg.Point, 0, 5)
				for _, pt := range l {
					poly = append(poly, vg.Point{X: trX(pt[0]), Y: trY(pt[1])})
				}
				c.FillPolygon(rgba, poly)
				if p.opts.Outlines {
					c.StrokeLines(edge, append(poly, poly[0]))
				}
			}
		}
	}
}

func (p *fabricPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	cols := 0
	if 0 < len(p.colors) {
		cols = len(p.colors[0])
	}
	const margin = 0.05
	return -margin, float64(cols) + margin, -margin, float64(len(p.colors)) + stitchHeight + margin
}

// FabricFigure returns a figure that simulates the knitted fabric of the chart, with every
// stitch drawn as a V of two colored legs. Only knit stitches are supported.
func FabricFigure(ch *knitvis.Chart, opts FabricOptions) (*Figure, error) {
	if err := checkKnitOnly(ch); err != nil {
		return nil, err
	}
	colors, err := ch.Colors(knitvis.All, knitvis.All)
	if err != nil {
		return nil, err
	}
	if opts.Ratio <= 0.0 {
		opts.Ratio = DefaultFabricOptions.Ratio
	}
	if opts.Width <= 0.0 {
		opts.Width = DefaultFabricOptions.Width
	}

	p := newFigurePlot("")
	p.HideAxes()
	p.Add(&fabricPlotter{colors: colors, opts: opts})

	rows, cols := ch.Size()
	height := opts.Width
	if 0 < cols {
		height = opts.Width * vg.Length(opts.Ratio*(float64(rows)+stitchHeight)/float64(cols))
	}
	knitvis.Logger().Debug("fabric figure", "rows", rows, "cols", cols)
	return &Figure{
		Plot:   p,
		Width:  opts.Width,
		Height: height,
	}, nil
}
