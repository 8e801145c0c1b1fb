package knitvis

import (
	"image/color"
	"testing"

	"github.com/tdewolff/test"
)

func TestPatternSymbols(t *testing.T) {
	p := MustPattern([][]bool{{true, false}, {false, true}})
	test.T(t, p.Symbols(DefaultGlyphs), [][]string{{"K", "P"}, {"P", "K"}})
	test.T(t, p.Symbols(DefaultGlyphs), p.Symbols(DefaultGlyphs))
	test.T(t, p.Symbols(Glyphs{Front: "#", Back: "."}), [][]string{{"#", "."}, {".", "#"}})
	test.String(t, FormatSymbols(p.Symbols(DefaultGlyphs)), "K P\nP K\n")
	test.String(t, FormatSymbols(nil), "")
}

func TestPatternColorGrid(t *testing.T) {
	p := MustPattern([][]bool{{true, false}}, WithColors("blue", "grey"))
	colors, err := p.ColorGrid()
	test.Error(t, err)
	test.T(t, colors, [][]color.RGBA{{{0, 0, 255, 255}, {128, 128, 128, 255}}})

	p.SetColors("blue", "nocolor")
	_, err = p.ColorGrid()
	test.That(t, err != nil)
}

func TestPatternChart(t *testing.T) {
	p := MustPattern([][]bool{{true, false}, {false, true}})
	ch, err := p.Chart()
	test.Error(t, err)
	names, _ := ch.Names(All, All)
	test.T(t, names, [][]string{{"K", "P"}, {"P", "K"}})
	tags, _ := ch.Tags(All, All)
	test.T(t, tags, [][]string{{"W", "B"}, {"B", "W"}})
}
