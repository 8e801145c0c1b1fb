package knitvis

import (
	"errors"
	"image/color"
	"testing"

	"github.com/tdewolff/test"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func checkerChart(t *testing.T) *Chart {
	ch, err := NewChart([][]Stitch{{Knit, Purl}, {Purl, Knit}}, [][]color.RGBA{{white, black}, {black, white}})
	test.Error(t, err)
	return ch
}

func TestStitch(t *testing.T) {
	test.T(t, len(Stitches()), 9)
	for _, s := range Stitches() {
		p, err := ParseStitch(s.String())
		test.Error(t, err)
		test.T(t, p, s)
	}
	_, err := ParseStitch("k")
	test.That(t, errors.Is(err, ErrUnknownStitch))

	test.String(t, Purl.Symbol(), "●")
	test.String(t, Purl.ASCII(), "o")
	test.String(t, SlipSlip.String(), "SSK")
	test.String(t, Stitch(9).String(), "Unknown")
	test.String(t, Stitch(-1).Symbol(), "?")
	test.That(t, !Stitch(9).Valid())
}

func TestChartNew(t *testing.T) {
	ch := checkerChart(t)
	test.T(t, ch.Rows(), 2)
	test.T(t, ch.Cols(), 2)
	test.T(t, ch.Palette().Colors(), []color.RGBA{black, white})

	s, col, err := ch.At(1, 0)
	test.Error(t, err)
	test.T(t, s, Purl)
	test.T(t, col, black)

	idx, err := ch.ColorIndex(0, 0)
	test.Error(t, err)
	test.T(t, idx, 1)

	_, _, err = ch.At(2, 0)
	test.That(t, errors.Is(err, ErrOutOfRange))

	ch, err = NewChart([][]Stitch{{Knit, YarnOver}}, nil)
	test.Error(t, err)
	_, col, _ = ch.At(0, 1)
	test.T(t, col, DefaultChartColor)
	test.T(t, ch.Palette().Tag(0), "Gy")

	_, err = NewChart([][]Stitch{{Knit}, {Knit, Knit}}, nil)
	test.That(t, errors.Is(err, ErrFormat))
	_, err = NewChart([][]Stitch{{Knit, Knit}}, [][]color.RGBA{{white}})
	test.That(t, errors.Is(err, ErrFormat))
	_, err = NewChart([][]Stitch{{Stitch(12)}}, nil)
	test.That(t, errors.Is(err, ErrUnknownStitch))

	ch, err = NewUniformChart([][]Stitch{{Knit, Knit}}, color.RGBA{0, 0, 255, 255})
	test.Error(t, err)
	test.T(t, ch.Palette().Len(), 1)
	test.T(t, ch.Palette().Tag(0), "Bl")
}

func TestChartSet(t *testing.T) {
	ch := checkerChart(t)
	test.Error(t, ch.Set(0, 0, CableFront))
	s, _, _ := ch.At(0, 0)
	test.T(t, s, CableFront)
	test.That(t, errors.Is(ch.Set(0, 0, Stitch(20)), ErrUnknownStitch))
	test.That(t, errors.Is(ch.Set(0, 5, Knit), ErrOutOfRange))

	test.Error(t, ch.SetColor(0, 0, red))
	test.T(t, ch.Palette().Len(), 3)
	_, col, _ := ch.At(0, 0)
	test.T(t, col, red)

	// white is no longer used once the last white cell is recolored
	test.Error(t, ch.SetColor(1, 1, red))
	test.T(t, ch.Palette().Colors(), []color.RGBA{black, red})
	test.T(t, ch.Palette().Tags(), []string{"B", "R"})
}

func TestChartOptimizePalette(t *testing.T) {
	ch := checkerChart(t)
	test.That(t, !ch.OptimizePalette())

	ch.palette.Add(red)
	test.T(t, ch.Palette().Len(), 3)
	test.That(t, ch.OptimizePalette())
	test.T(t, ch.Palette().Len(), 2)
	_, col, _ := ch.At(0, 0)
	test.T(t, col, white)
}

func TestChartViews(t *testing.T) {
	ch, err := NewChart([][]Stitch{
		{Knit, Purl, YarnOver},
		{Knit2Tog, SlipSlip, BindOff},
	}, nil)
	test.Error(t, err)

	names, err := ch.Names(All, Range{1, 3})
	test.Error(t, err)
	test.T(t, names, [][]string{{"P", "YO"}, {"SSK", "BO"}})

	symbols, err := ch.Symbols(Range{1, 2}, All)
	test.Error(t, err)
	test.T(t, symbols, [][]string{{"/", "\\", "-"}})

	tags, err := ch.Tags(Range{0, 1}, Range{0, 1})
	test.Error(t, err)
	test.T(t, tags, [][]string{{"Gy"}})

	_, err = ch.Stitches(Range{0, 3}, All)
	test.That(t, errors.Is(err, ErrOutOfRange))
	_, err = ch.Colors(All, Range{2, 1})
	test.That(t, errors.Is(err, ErrOutOfRange))

	sub, err := ch.Sub(Range{1, 2}, Range{0, 2})
	test.Error(t, err)
	stitches, _ := sub.Stitches(All, All)
	test.T(t, stitches, [][]Stitch{{Knit2Tog, SlipSlip}})

	// the zero Range is the whole axis, an empty selection starts past index zero
	symbols, err = ch.Symbols(Range{0, 0}, All)
	test.Error(t, err)
	test.T(t, len(symbols), 2)
	symbols, err = ch.Symbols(Range{2, 2}, All)
	test.Error(t, err)
	test.T(t, len(symbols), 0)
	symbols, err = ch.Symbols(All, Range{1, 1})
	test.Error(t, err)
	test.T(t, symbols, [][]string{{}, {}})
}

func TestChartPaste(t *testing.T) {
	ch := checkerChart(t)
	src, err := NewUniformChart([][]Stitch{{YarnOver}}, red)
	test.Error(t, err)

	test.Error(t, ch.Paste(1, 1, src))
	s, col, _ := ch.At(1, 1)
	test.T(t, s, YarnOver)
	test.T(t, col, red)
	test.T(t, ch.Palette().Colors(), []color.RGBA{black, white, red})

	test.That(t, errors.Is(ch.Paste(2, 0, src), ErrFormat))
	test.That(t, errors.Is(ch.Paste(-1, 0, src), ErrFormat))
}

func TestChartCopyEqual(t *testing.T) {
	ch := checkerChart(t)
	cp := ch.Copy()
	test.That(t, cp.Equal(ch))
	test.Error(t, cp.SetColor(0, 0, red))
	test.That(t, !cp.Equal(ch))
	_, col, _ := ch.At(0, 0)
	test.T(t, col, white)
}

func TestChartUsage(t *testing.T) {
	ch := checkerChart(t)
	test.Error(t, ch.Set(0, 1, Knit))
	test.T(t, ch.ColorUsage(), []int{2, 2})
	test.T(t, ch.StitchUsage(), []int{3, 1, 0, 0, 0, 0, 0, 0, 0})
}

func TestChartString(t *testing.T) {
	ch := checkerChart(t)
	test.String(t, ch.String(), "Knitting Chart:\nV ●\n● V\n\nColor Chart:\nW B\nB W\n\nColor Palette:\n  B: (0, 0, 0)\n  W: (255, 255, 255)\n")
}
