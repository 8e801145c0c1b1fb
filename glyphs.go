package knitvis

import (
	"image/color"
	"strings"
)

// Glyphs are the printable symbols for the two cell values of a pattern.
type Glyphs struct {
	Front string `toml:"front" yaml:"front" json:"front"` // symbol of cells showing the front color
	Back  string `toml:"back" yaml:"back" json:"back"`    // symbol of cells showing the back color
}

// DefaultGlyphs shows knit for front cells and purl for back cells.
var DefaultGlyphs = Glyphs{Front: "K", Back: "P"}

// Symbol returns the glyph for a cell value.
func (g Glyphs) Symbol(front bool) string {
	if front {
		return g.Front
	}
	return g.Back
}

// Symbols returns the symbolic chart of the pattern, one glyph per cell.
func (p *Pattern) Symbols(g Glyphs) [][]string {
	out := make([][]string, p.rows)
	for i := range out {
		out[i] = make([]string, p.cols)
		for j := range out[i] {
			out[i][j] = g.Symbol(p.cells[i*p.cols+j])
		}
	}
	return out
}

// ColorGrid returns the color of every cell: the front color for true and the back color
// for false.
func (p *Pattern) ColorGrid() ([][]color.RGBA, error) {
	front, err := p.front.RGBA()
	if err != nil {
		return nil, err
	}
	back, err := p.back.RGBA()
	if err != nil {
		return nil, err
	}

	out := make([][]color.RGBA, p.rows)
	for i := range out {
		out[i] = make([]color.RGBA, p.cols)
		for j := range out[i] {
			if p.cells[i*p.cols+j] {
				out[i][j] = front
			} else {
				out[i][j] = back
			}
		}
	}
	return out, nil
}

// Chart returns the pattern as a stitch chart: knit stitches where the front color shows and
// purl stitches elsewhere, colored by the front and back colors.
func (p *Pattern) Chart() (*Chart, error) {
	colors, err := p.ColorGrid()
	if err != nil {
		return nil, err
	}
	stitches := make([][]Stitch, p.rows)
	for i := range stitches {
		stitches[i] = make([]Stitch, p.cols)
		for j := range stitches[i] {
			if !p.cells[i*p.cols+j] {
				stitches[i][j] = Purl
			}
		}
	}
	return NewChart(stitches, colors)
}

// FormatSymbols joins a symbol grid into lines of space-separated symbols.
func FormatSymbols(symbols [][]string) string {
	sb := strings.Builder{}
	for _, row := range symbols {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}
