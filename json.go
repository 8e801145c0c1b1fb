package knitvis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
)

type patternDocument struct {
	Rows       *int       `json:"rows"`
	Cols       *int       `json:"cols"`
	Cells      *[][]*bool `json:"cells"`
	FrontColor *string    `json:"front_color"`
	BackColor  *string    `json:"back_color"`
}

// MarshalJSON encodes the pattern as
// {"rows":int,"cols":int,"cells":[[bool,...],...],"front_color":str,"back_color":str}.
func (p *Pattern) MarshalJSON() ([]byte, error) {
	cells := make([][]*bool, p.rows)
	for i := range cells {
		cells[i] = make([]*bool, p.cols)
		for j := range cells[i] {
			cells[i][j] = &p.cells[i*p.cols+j]
		}
	}
	front, back := string(p.front), string(p.back)
	return json.Marshal(patternDocument{
		Rows:       &p.rows,
		Cols:       &p.cols,
		Cells:      &cells,
		FrontColor: &front,
		BackColor:  &back,
	})
}

// UnmarshalJSON decodes a pattern document. All five fields are required and the cells must
// have the declared shape, otherwise an ErrFormat error is returned.
func (p *Pattern) UnmarshalJSON(b []byte) error {
	doc := patternDocument{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}

	missing := []string{}
	if doc.Rows == nil {
		missing = append(missing, "rows")
	}
	if doc.Cols == nil {
		missing = append(missing, "cols")
	}
	if doc.Cells == nil {
		missing = append(missing, "cells")
	}
	if doc.FrontColor == nil {
		missing = append(missing, "front_color")
	}
	if doc.BackColor == nil {
		missing = append(missing, "back_color")
	}
	if len(missing) != 0 {
		return fmt.Errorf("%w: missing fields %v", ErrFormat, missing)
	}

	rows, cols, cells := *doc.Rows, *doc.Cols, *doc.Cells
	if rows < 0 || cols < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrFormat, rows, cols)
	} else if len(cells) != rows {
		return fmt.Errorf("%w: cells have %d rows, declared %d", ErrFormat, len(cells), rows)
	}
	for i, row := range cells {
		if row == nil {
			return fmt.Errorf("%w: cells row %d is null", ErrFormat, i)
		} else if len(row) != cols {
			return fmt.Errorf("%w: cells row %d has %d columns, declared %d", ErrFormat, i, len(row), cols)
		}
		for j, cell := range row {
			if cell == nil {
				return fmt.Errorf("%w: cell (%d,%d) is null", ErrFormat, i, j)
			}
		}
	}

	*p = *newPattern(rows, cols)
	for i, row := range cells {
		for j, cell := range row {
			p.cells[i*cols+j] = *cell
		}
	}
	p.front, p.back = Color(*doc.FrontColor), Color(*doc.BackColor)
	return nil
}

// WritePattern writes the JSON document of a pattern.
func WritePattern(w io.Writer, p *Pattern) error {
	b, err := p.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// ReadPattern reads a pattern from a JSON document.
func ReadPattern(r io.Reader) (*Pattern, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &Pattern{}
	if err := p.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return p, nil
}

// SavePattern writes the pattern to a JSON file.
func SavePattern(filename string, p *Pattern) error {
	return writeFile(filename, func(w io.Writer) error { return WritePattern(w, p) })
}

// LoadPattern reads a pattern from a JSON file.
func LoadPattern(filename string) (*Pattern, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ReadPattern(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return p, nil
}

func writeFile(filename string, write func(io.Writer) error) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := f.Close(); err == nil {
			err = errClose
		}
	}()
	return write(f)
}

////////////////////////////////////////////////////////////////

type paletteDocument struct {
	Colors    [][3]uint8 `json:"colors"`
	FullNames []string   `json:"full_names"`
	ShortTags []string   `json:"short_tags"`
}

func (p *Palette) document() paletteDocument {
	doc := paletteDocument{
		Colors:    make([][3]uint8, len(p.colors)),
		FullNames: append([]string{}, p.names...),
		ShortTags: append([]string{}, p.tags...),
	}
	for i, c := range p.colors {
		doc.Colors[i] = [3]uint8{c.R, c.G, c.B}
	}
	return doc
}

func (doc paletteDocument) palette() (*Palette, error) {
	if len(doc.FullNames) != len(doc.Colors) || len(doc.ShortTags) != len(doc.Colors) {
		return nil, fmt.Errorf("%w: palette has %d colors, %d full names, and %d short tags", ErrFormat, len(doc.Colors), len(doc.FullNames), len(doc.ShortTags))
	}
	p := &Palette{
		colors: make([]color.RGBA, len(doc.Colors)),
		names:  append([]string{}, doc.FullNames...),
		tags:   append([]string{}, doc.ShortTags...),
	}
	for i, c := range doc.Colors {
		p.colors[i] = color.RGBA{c[0], c[1], c[2], 0xff}
	}
	return p, nil
}

// MarshalJSON encodes the palette as {"colors":[[r,g,b],...],"full_names":[...],"short_tags":[...]}.
func (p *Palette) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.document())
}

// UnmarshalJSON decodes a palette document. Names and tags are taken from the document.
func (p *Palette) UnmarshalJSON(b []byte) error {
	doc := paletteDocument{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	q, err := doc.palette()
	if err != nil {
		return err
	}
	*p = *q
	return nil
}

// SavePalette writes the palette to an indented JSON file.
func SavePalette(filename string, p *Palette) error {
	return writeFile(filename, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p.document())
	})
}

// LoadPalette reads a palette from a JSON file.
func LoadPalette(filename string) (*Palette, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	p := &Palette{}
	if err := p.UnmarshalJSON(b); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return p, nil
}

////////////////////////////////////////////////////////////////

type chartDocument struct {
	Pattern   [][]string       `json:"pattern"`
	ColorTags [][]string       `json:"color_tags"`
	Palette   *paletteDocument `json:"palette"`
}

// MarshalJSON encodes the chart with stitch names and color tags:
// {"pattern":[["K",...],...],"color_tags":[["W",...],...],"palette":{...}}.
// Every grid row is written on its own line.
func (c *Chart) MarshalJSON() ([]byte, error) {
	names, _ := c.Names(All, All)
	tags, _ := c.Tags(All, All)
	doc := c.palette.document()

	buf := &bytes.Buffer{}
	buf.WriteString("{\n  \"pattern\": ")
	writeGrid(buf, names, "  ")
	buf.WriteString(",\n  \"color_tags\": ")
	writeGrid(buf, tags, "  ")
	buf.WriteString(",\n  \"palette\": {\n    \"colors\": ")
	writeGrid(buf, doc.Colors, "    ")
	buf.WriteString(",\n    \"full_names\": ")
	writeJSON(buf, doc.FullNames)
	buf.WriteString(",\n    \"short_tags\": ")
	writeJSON(buf, doc.ShortTags)
	buf.WriteString("\n  }\n}")
	return buf.Bytes(), nil
}

func writeGrid[T any](buf *bytes.Buffer, rows []T, indent string) {
	if len(rows) == 0 {
		buf.WriteString("[]")
		return
	}
	buf.WriteString("[\n")
	for i, row := range rows {
		buf.WriteString(indent + "  ")
		writeJSON(buf, row)
		if i < len(rows)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString(indent + "]")
}

func writeJSON(buf *bytes.Buffer, v any) {
	b, _ := json.Marshal(v)
	buf.Write(b)
}

// UnmarshalJSON decodes a chart document. Tags not found in the palette get DefaultChartColor.
func (c *Chart) UnmarshalJSON(b []byte) error {
	doc := chartDocument{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	} else if doc.Pattern == nil || doc.ColorTags == nil || doc.Palette == nil {
		return fmt.Errorf("%w: chart requires pattern, color_tags, and palette", ErrFormat)
	}
	palette, err := doc.Palette.palette()
	if err != nil {
		return err
	}

	rows, cols, err := gridShape(doc.Pattern)
	if err != nil {
		return err
	} else if trows, tcols, err := gridShape(doc.ColorTags); err != nil {
		return err
	} else if trows != rows || (0 < rows && tcols != cols) {
		return fmt.Errorf("%w: color_tags have shape %dx%d, pattern %dx%d", ErrFormat, trows, tcols, rows, cols)
	}

	stitches := make([][]Stitch, rows)
	colors := make([][]color.RGBA, rows)
	for i := range stitches {
		stitches[i] = make([]Stitch, cols)
		colors[i] = make([]color.RGBA, cols)
		for j := range stitches[i] {
			if stitches[i][j], err = ParseStitch(doc.Pattern[i][j]); err != nil {
				return fmt.Errorf("%w: %v", ErrFormat, err)
			}
			var ok bool
			if colors[i][j], ok = palette.ByTag(doc.ColorTags[i][j]); !ok {
				colors[i][j] = DefaultChartColor
			}
		}
	}

	chart, err := NewChart(stitches, colors)
	if err != nil {
		return err
	}
	chart.adoptNames(palette)
	*c = *chart
	return nil
}

// adoptNames takes over the names and tags of colors that are present in p. A tag already held by
// another entry is not taken over, so that tags stay unique.
func (c *Chart) adoptNames(p *Palette) {
	for i, col := range c.palette.colors {
		k := p.Index(col)
		if k == -1 || c.palette.tags[i] == p.tags[k] {
			continue
		} else if c.palette.hasTag(p.tags[k]) {
			Logger().Warn("palette tag already in use", "tag", p.tags[k], "color", col)
			continue
		}
		c.palette.names[i] = p.names[k]
		c.palette.tags[i] = p.tags[k]
	}
}

// SaveChart writes the chart to a JSON file.
func SaveChart(filename string, c *Chart) error {
	return writeFile(filename, func(w io.Writer) error {
		b, err := c.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	})
}

// LoadChart reads a chart from a JSON file.
func LoadChart(filename string) (*Chart, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	c := &Chart{}
	if err := c.UnmarshalJSON(b); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

// IsFormatError returns true if err is caused by a malformed document.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormat)
}
