package knitvis

import (
	"fmt"
	"image/color"
)

// DoubleKnitting is a double-knitted fabric made of two layers. The front grid tells which
// color shows on the front face, the back grid which color shows on the back face. Every
// column of the fabric is worked as a pair of stitches: a knit stitch for the front layer
// followed by a purl stitch for the back layer.
type DoubleKnitting struct {
	front, back *Pattern
}

// NewDoubleKnitting returns a double-knitted fabric. When back is nil the back face is the
// inverse of the front face, as in regular double knitting. The colors of front are used.
func NewDoubleKnitting(front, back *Pattern) (*DoubleKnitting, error) {
	if back == nil {
		back = front.Invert()
	} else if back.rows != front.rows || back.cols != front.cols {
		return nil, fmt.Errorf("%w: back pattern %dx%d does not match front pattern %dx%d", ErrFormat, back.rows, back.cols, front.rows, front.cols)
	} else {
		back = back.Clone()
		back.SetColors(front.Colors())
	}
	return &DoubleKnitting{front: front.Clone(), back: back}, nil
}

// NewDoubleKnittingFromPattern returns a double-knitted fabric for a pattern resized to
// rows×cols. Pass the pattern's own size to skip resizing.
func NewDoubleKnittingFromPattern(p *Pattern, rows, cols int) (*DoubleKnitting, error) {
	if rows != p.rows || cols != p.cols {
		var err error
		if p, err = p.Resize(rows, cols); err != nil {
			return nil, err
		}
	}
	return NewDoubleKnitting(p, nil)
}

// Size returns the number of rows and columns of each face.
func (d *DoubleKnitting) Size() (int, int) {
	return d.front.Size()
}

// Front returns the front face.
func (d *DoubleKnitting) Front() *Pattern {
	return d.front
}

// Back returns the back face.
func (d *DoubleKnitting) Back() *Pattern {
	return d.back
}

// FrontChart returns the chart of the front layer: all knit stitches, colored by the front grid.
func (d *DoubleKnitting) FrontChart() (*Chart, error) {
	return layerChart(d.front, Knit)
}

// BackChart returns the chart of the back layer: all purl stitches, colored by the back grid.
func (d *DoubleKnitting) BackChart() (*Chart, error) {
	return layerChart(d.back, Purl)
}

func layerChart(p *Pattern, s Stitch) (*Chart, error) {
	colors, err := p.ColorGrid()
	if err != nil {
		return nil, err
	}
	stitches := make([][]Stitch, p.rows)
	for i := range stitches {
		stitches[i] = make([]Stitch, p.cols)
		for j := range stitches[i] {
			stitches[i][j] = s
		}
	}
	return NewChart(stitches, colors)
}

// Interleaved returns the stitches as worked: rows×2·cols where column 2j is the front stitch
// and column 2j+1 the back stitch of fabric column j.
func (d *DoubleKnitting) Interleaved() [][]Stitch {
	out := make([][]Stitch, d.front.rows)
	for i := range out {
		out[i] = make([]Stitch, 2*d.front.cols)
		for j := 0; j < d.front.cols; j++ {
			out[i][2*j] = Knit
			out[i][2*j+1] = Purl
		}
	}
	return out
}

// KnittingChart returns the interleaved chart with the yarn color of every stitch.
func (d *DoubleKnitting) KnittingChart() (*Chart, error) {
	front, err := d.front.ColorGrid()
	if err != nil {
		return nil, err
	}
	back, err := d.back.ColorGrid()
	if err != nil {
		return nil, err
	}

	colors := make([][]color.RGBA, d.front.rows)
	for i := range colors {
		colors[i] = make([]color.RGBA, 2*d.front.cols)
		for j := 0; j < d.front.cols; j++ {
			colors[i][2*j] = front[i][j]
			colors[i][2*j+1] = back[i][j]
		}
	}
	return NewChart(d.Interleaved(), colors)
}
