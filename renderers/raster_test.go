package renderers

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knitvis/knitvis"
	"github.com/tdewolff/test"
)

func TestRasterize(t *testing.T) {
	opts := RasterOptions{CellPixels: 16, Glyphs: true, GridColor: color.RGBA{0, 0, 255, 255}}
	img, err := Rasterize(checkerChart(t), opts)
	test.Error(t, err)
	test.T(t, img.Bounds().Dx(), 33)
	test.T(t, img.Bounds().Dy(), 33)

	test.T(t, img.RGBAAt(2, 2), white)
	test.T(t, img.RGBAAt(18, 2), black)
	test.T(t, img.RGBAAt(18, 18), white)
	test.T(t, img.RGBAAt(0, 5), color.RGBA{0, 0, 255, 255})
	test.T(t, img.RGBAAt(16, 5), color.RGBA{0, 0, 255, 255})
	test.T(t, img.RGBAAt(32, 32), color.RGBA{0, 0, 255, 255})

	// the glyph is drawn in the contrasting color somewhere inside the cell
	found := false
	for y := 1; y < 16; y++ {
		for x := 1; x < 16; x++ {
			if img.RGBAAt(x, y) != white {
				found = true
			}
		}
	}
	test.That(t, found, "glyph must be drawn")

	opts.Glyphs = false
	opts.GridColor = nil
	img, err = Rasterize(checkerChart(t), opts)
	test.Error(t, err)
	test.T(t, img.RGBAAt(0, 0), white)
	test.T(t, img.RGBAAt(8, 8), white)

	_, err = Rasterize(checkerChart(t), RasterOptions{})
	test.That(t, err != nil)
}

func TestRasterizeFabric(t *testing.T) {
	ch, err := knitvis.NewChart([][]knitvis.Stitch{
		{knitvis.Knit, knitvis.Knit},
		{knitvis.Knit, knitvis.Knit},
	}, [][]color.RGBA{{black, black}, {red, black}})
	test.Error(t, err)

	fopts := FabricOptions{Ratio: 0.5, Padding: 0.01}
	img, err := RasterizeFabric(ch, fopts, RasterOptions{CellPixels: 10})
	test.Error(t, err)
	test.T(t, img.Bounds().Dx(), 20)
	test.T(t, img.Bounds().Dy(), 20)

	// the left leg of the bottom row, first column
	px := img.RGBAAt(2, 15)
	test.That(t, 250 <= px.R && px.G <= 5 && px.B <= 5, "expected red, got", px)
	test.T(t, img.RGBAAt(10, 0), white)

	_, err = RasterizeFabric(checkerChart(t), fopts, RasterOptions{CellPixels: 10})
	test.That(t, errors.Is(err, knitvis.ErrUnsupportedStitch))
}

func TestWriteImage(t *testing.T) {
	img, err := Rasterize(checkerChart(t), DefaultRasterOptions)
	test.Error(t, err)

	dir := t.TempDir()
	for _, ext := range []string{".png", ".jpg", ".gif", ".tif"} {
		test.Error(t, WriteImage(filepath.Join(dir, "chart"+ext), img))
	}
	test.That(t, WriteImage(filepath.Join(dir, "chart.svg"), img) != nil)
}

func TestUsageChart(t *testing.T) {
	ch := checkerChart(t)
	buf := &bytes.Buffer{}
	test.Error(t, UsageChart(buf, ch, ColorUsage, "png", 320, 240))
	img, err := png.Decode(buf)
	test.Error(t, err)
	test.T(t, img.Bounds().Dx(), 320)
	test.T(t, img.Bounds().Dy(), 240)

	buf.Reset()
	test.Error(t, UsageChart(buf, ch, StitchUsage, "svg", 320, 240))
	test.That(t, strings.Contains(buf.String(), "<svg"))

	bars := usageBars(ch, StitchUsage)
	test.T(t, len(bars), 2)
	test.String(t, bars[0].Label, "K")
	test.Float(t, bars[0].Value, 2.0)
	bars = usageBars(ch, ColorUsage)
	test.String(t, bars[1].Label, "W")

	test.That(t, UsageChart(buf, ch, ColorUsage, "pdf", 320, 240) != nil)

	empty, err := knitvis.NewChart(nil, nil)
	test.Error(t, err)
	test.That(t, errors.Is(UsageChart(buf, empty, ColorUsage, "png", 320, 240), knitvis.ErrFormat))
}

func TestParseUsageKind(t *testing.T) {
	kind, err := ParseUsageKind("stitch")
	test.Error(t, err)
	test.T(t, kind, StitchUsage)
	test.String(t, kind.String(), "stitch")

	kind, err = ParseUsageKind("")
	test.Error(t, err)
	test.T(t, kind, ColorUsage)

	_, err = ParseUsageKind("yarn")
	test.That(t, err != nil)
}
