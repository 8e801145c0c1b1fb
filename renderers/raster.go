package renderers

import (
	"fmt"
	"image"
	"image/color"

	"github.com/knitvis/knitvis"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RasterOptions configure Rasterize and RasterizeFabric.
type RasterOptions struct {
	CellPixels int         // width and height of a cell in pixels
	Glyphs     bool        // draw the ASCII stitch symbol in each cell
	GridColor  color.Color // nil draws no grid lines
}

// DefaultRasterOptions are the raster options of knitvis.DefaultSettings.
var DefaultRasterOptions = NewRasterOptions(knitvis.DefaultSettings())

// NewRasterOptions returns the raster options for the given settings.
func NewRasterOptions(s knitvis.Settings) RasterOptions {
	return RasterOptions{
		CellPixels: s.Raster.CellPixels,
		Glyphs:     s.Raster.Glyphs,
		GridColor:  color.Black,
	}
}

// Rasterize draws the chart directly into a bitmap, one square of CellPixels per cell. It
// needs no fonts other than the built-in fixed face and is suited for quick previews.
func Rasterize(ch *knitvis.Chart, opts RasterOptions) (*image.RGBA, error) {
	if opts.CellPixels <= 0 {
		return nil, fmt.Errorf("invalid cell size: %d", opts.CellPixels)
	}
	colors, err := ch.Colors(knitvis.All, knitvis.All)
	if err != nil {
		return nil, err
	}
	stitches, err := ch.Stitches(knitvis.All, knitvis.All)
	if err != nil {
		return nil, err
	}

	rows, cols := ch.Size()
	n := opts.CellPixels
	img := image.NewRGBA(image.Rect(0, 0, cols*n+1, rows*n+1))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	metrics := face.Metrics()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			cell := image.Rect(j*n, i*n, (j+1)*n, (i+1)*n)
			draw.Draw(img, cell, image.NewUniform(colors[i][j]), image.Point{}, draw.Src)
			if !opts.Glyphs {
				continue
			}

			symbol := stitches[i][j].ASCII()
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(knitvis.TextColor(colors[i][j])),
				Face: face,
			}
			w := d.MeasureString(symbol)
			x := fixed.I(cell.Min.X) + (fixed.I(n)-w)/2
			y := fixed.I(cell.Min.Y) + (fixed.I(n)+metrics.Ascent-metrics.Descent)/2
			d.Dot = fixed.Point26_6{X: x, Y: y}
			d.DrawString(symbol)
		}
	}

	if opts.GridColor != nil {
		grid := image.NewUniform(opts.GridColor)
		for i := 0; i <= rows; i++ {
			draw.Draw(img, image.Rect(0, i*n, cols*n+1, i*n+1), grid, image.Point{}, draw.Src)
		}
		for j := 0; j <= cols; j++ {
			draw.Draw(img, image.Rect(j*n, 0, j*n+1, rows*n+1), grid, image.Point{}, draw.Src)
		}
	}
	return img, nil
}

// RasterizeFabric draws the fabric simulation of the chart into a bitmap. Columns are
// CellPixels wide and rows are Ratio times as high. Only knit stitches are supported.
func RasterizeFabric(ch *knitvis.Chart, fopts FabricOptions, opts RasterOptions) (*image.RGBA, error) {
	if opts.CellPixels <= 0 {
		return nil, fmt.Errorf("invalid cell size: %d", opts.CellPixels)
	}
	if err := checkKnitOnly(ch); err != nil {
		return nil, err
	}
	colors, err := ch.Colors(knitvis.All, knitvis.All)
	if err != nil {
		return nil, err
	}
	if fopts.Ratio <= 0.0 {
		fopts.Ratio = DefaultFabricOptions.Ratio
	}

	rows, cols := ch.Size()
	dx := float32(opts.CellPixels)
	dy := dx * float32(fopts.Ratio)
	w := cols * opts.CellPixels
	h := int(dy*float32(rows+stitchHeight) + 0.5)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == 0 || h == 0 {
		return img, nil
	}

	ras := vector.NewRasterizer(w, h)
	for i := 0; i < rows; i++ {
		row := colors[rows-1-i]
		for j, rgba := range row {
			left, right := stitchLegs(j, float64(i), fopts.Padding)
			for _, l := range []leg{left, right} {
				ras.Reset(w, h)
				ras.MoveTo(float32(l[0][0])*dx, float32(h)-float32(l[0][1])*dy)
				for _, pt := range l[1:] {
					ras.LineTo(float32(pt[0])*dx, float32(h)-float32(pt[1])*dy)
				}
				ras.ClosePath()
				ras.Draw(img, img.Bounds(), image.NewUniform(rgba), image.Point{})
			}
		}
	}
	return img, nil
}
