package knitvis

import (
	"errors"
	"image/color"
	"testing"

	"github.com/tdewolff/test"
)

func TestDoubleKnitting(t *testing.T) {
	front := MustPattern([][]bool{{true, false}, {false, false}})
	dk, err := NewDoubleKnitting(front, nil)
	test.Error(t, err)
	test.That(t, dk.Front().Equal(front))
	test.T(t, dk.Back().Cells(), [][]bool{{false, true}, {true, true}})

	rows, cols := dk.Size()
	test.T(t, rows, 2)
	test.T(t, cols, 2)

	// later edits of the input do not leak into the fabric
	test.Error(t, front.Set(1, 1, true))
	v, _ := dk.Front().At(1, 1)
	test.That(t, !v)

	back := MustPattern([][]bool{{true, true}, {true, true}}, WithColors("red", "blue"))
	dk, err = NewDoubleKnitting(front, back)
	test.Error(t, err)
	f, b := dk.Back().Colors()
	test.T(t, f, White)
	test.T(t, b, Black)

	_, err = NewDoubleKnitting(front, NewEmptyPattern(3, 2))
	test.That(t, errors.Is(err, ErrFormat))
}

func TestDoubleKnittingFromPattern(t *testing.T) {
	p := MustPattern([][]bool{
		{false, false, false},
		{false, true, false},
		{false, false, false},
	})
	dk, err := NewDoubleKnittingFromPattern(p, 6, 6)
	test.Error(t, err)
	rows, cols := dk.Size()
	test.T(t, rows, 6)
	test.T(t, cols, 6)
	v, _ := dk.Front().At(2, 3)
	test.That(t, v)
	v, _ = dk.Back().At(2, 3)
	test.That(t, !v)

	dk, err = NewDoubleKnittingFromPattern(p, 3, 3)
	test.Error(t, err)
	test.That(t, dk.Front().Equal(p))
}

func TestDoubleKnittingCharts(t *testing.T) {
	dk, err := NewDoubleKnitting(MustPattern([][]bool{{true, false}}), nil)
	test.Error(t, err)

	front, err := dk.FrontChart()
	test.Error(t, err)
	names, _ := front.Names(All, All)
	test.T(t, names, [][]string{{"K", "K"}})
	tags, _ := front.Tags(All, All)
	test.T(t, tags, [][]string{{"W", "B"}})

	back, err := dk.BackChart()
	test.Error(t, err)
	names, _ = back.Names(All, All)
	test.T(t, names, [][]string{{"P", "P"}})
	tags, _ = back.Tags(All, All)
	test.T(t, tags, [][]string{{"B", "W"}})

	test.T(t, dk.Interleaved(), [][]Stitch{{Knit, Purl, Knit, Purl}})

	ch, err := dk.KnittingChart()
	test.Error(t, err)
	test.T(t, ch.Cols(), 4)
	colors, _ := ch.Colors(All, All)
	w, b := color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255}
	test.T(t, colors, [][]color.RGBA{{w, b, b, w}})
}
