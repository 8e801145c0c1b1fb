package knitvis

import (
	"fmt"
	"image/color"
	"slices"
	"strings"
)

// Range is a half-open index range [Start,End) along one axis of a grid. The zero Range is All
// and selects the whole axis, so Range{0, 0} is never empty. Select no indices with Range{n, n}
// for some 0 < n <= size.
type Range struct {
	Start, End int
}

// All selects the whole axis.
var All = Range{}

func (r Range) resolve(n int) (Range, error) {
	if r == All {
		return Range{0, n}, nil
	} else if r.Start < 0 || n < r.End || r.End < r.Start {
		return Range{}, fmt.Errorf("%w: range [%d,%d) for size %d", ErrOutOfRange, r.Start, r.End, n)
	}
	return r, nil
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Chart is a knitting chart: a grid of stitches where every cell has a yarn color. Colors
// are stored as indices into a Palette that only contains colors in use.
type Chart struct {
	rows, cols int
	stitches   []Stitch
	indices    []int
	palette    *Palette
}

// NewChart returns a chart for the stitch grid. The colors grid must have the same shape, or
// be nil in which case all cells get DefaultChartColor.
func NewChart(stitches [][]Stitch, colors [][]color.RGBA) (*Chart, error) {
	rows, cols, err := gridShape(stitches)
	if err != nil {
		return nil, err
	}
	if colors != nil {
		if crows, ccols, err := gridShape(colors); err != nil {
			return nil, err
		} else if crows != rows || (0 < rows && ccols != cols) {
			return nil, fmt.Errorf("%w: colors have shape %dx%d, stitches %dx%d", ErrFormat, crows, ccols, rows, cols)
		}
	}

	c := &Chart{
		rows:     rows,
		cols:     cols,
		stitches: make([]Stitch, rows*cols),
		indices:  make([]int, rows*cols),
	}
	flat := make([]color.RGBA, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if !stitches[i][j].Valid() {
				return nil, fmt.Errorf("%w: %d at (%d, %d)", ErrUnknownStitch, int(stitches[i][j]), i, j)
			}
			c.stitches[i*cols+j] = stitches[i][j]
			if colors == nil {
				flat[i*cols+j] = DefaultChartColor
			} else {
				flat[i*cols+j] = toRGBA(colors[i][j])
			}
		}
	}
	c.setColors(flat)
	return c, nil
}

// NewUniformChart returns a chart where every cell has the same color.
func NewUniformChart(stitches [][]Stitch, col color.Color) (*Chart, error) {
	rows, cols, err := gridShape(stitches)
	if err != nil {
		return nil, err
	}
	colors := make([][]color.RGBA, rows)
	for i := range colors {
		colors[i] = slices.Repeat([]color.RGBA{toRGBA(col)}, cols)
	}
	return NewChart(stitches, colors)
}

// setColors rebuilds the palette from the distinct colors in sorted order.
func (c *Chart) setColors(flat []color.RGBA) {
	unique := slices.Clone(flat)
	slices.SortFunc(unique, compareRGBA)
	unique = slices.Compact(unique)
	c.palette = NewPalette(unique)
	for k, col := range flat {
		c.indices[k] = c.palette.Index(col)
	}
}

func compareRGBA(a, b color.RGBA) int {
	if a.R != b.R {
		return int(a.R) - int(b.R)
	} else if a.G != b.G {
		return int(a.G) - int(b.G)
	}
	return int(a.B) - int(b.B)
}

func gridShape[T any](grid [][]T) (int, int, error) {
	rows := len(grid)
	if rows == 0 {
		return 0, 0, nil
	}
	cols := len(grid[0])
	for i, row := range grid {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrFormat, i, len(row), cols)
		}
	}
	return rows, cols, nil
}

// Rows returns the number of rows.
func (c *Chart) Rows() int {
	return c.rows
}

// Cols returns the number of columns.
func (c *Chart) Cols() int {
	return c.cols
}

// Size returns the number of rows and columns.
func (c *Chart) Size() (int, int) {
	return c.rows, c.cols
}

// Palette returns the chart's palette. It must not be modified.
func (c *Chart) Palette() *Palette {
	return c.palette
}

func (c *Chart) check(row, col int) error {
	if row < 0 || c.rows <= row || col < 0 || c.cols <= col {
		return fmt.Errorf("%w: position (%d, %d) for chart of size %dx%d", ErrOutOfRange, row, col, c.rows, c.cols)
	}
	return nil
}

// At returns the stitch and color at a position.
func (c *Chart) At(row, col int) (Stitch, color.RGBA, error) {
	if err := c.check(row, col); err != nil {
		return 0, color.RGBA{}, err
	}
	k := row*c.cols + col
	rgba, _ := c.palette.Color(c.indices[k])
	return c.stitches[k], rgba, nil
}

// ColorIndex returns the palette index of the color at a position.
func (c *Chart) ColorIndex(row, col int) (int, error) {
	if err := c.check(row, col); err != nil {
		return 0, err
	}
	return c.indices[row*c.cols+col], nil
}

// Set sets the stitch at a position.
func (c *Chart) Set(row, col int, s Stitch) error {
	if err := c.check(row, col); err != nil {
		return err
	} else if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownStitch, int(s))
	}
	c.stitches[row*c.cols+col] = s
	return nil
}

// SetColor sets the color at a position, adding it to the palette if needed. A color that is
// no longer used afterwards is removed from the palette.
func (c *Chart) SetColor(row, col int, rgb color.Color) error {
	if err := c.check(row, col); err != nil {
		return err
	}
	k := row*c.cols + col
	prev := c.indices[k]
	c.indices[k] = c.palette.Add(rgb)
	if c.indices[k] != prev && !slices.Contains(c.indices, prev) {
		c.OptimizePalette()
	}
	return nil
}

// OptimizePalette removes unused colors from the palette and renumbers the cells. Names and
// tags of the remaining colors are kept. It returns true if any color was removed.
func (c *Chart) OptimizePalette() bool {
	used := slices.Clone(c.indices)
	slices.Sort(used)
	used = slices.Compact(used)
	if len(used) == c.palette.Len() {
		return false
	}

	mapping := make(map[int]int, len(used))
	for i, idx := range used {
		mapping[idx] = i
	}
	for k, idx := range c.indices {
		c.indices[k] = mapping[idx]
	}
	c.palette = c.palette.subset(used)
	Logger().Debug("chart palette optimized", "colors", c.palette.Len())
	return true
}

// ColorUsage returns the number of cells of each palette color, indexed like the palette.
func (c *Chart) ColorUsage() []int {
	counts := make([]int, c.palette.Len())
	for _, idx := range c.indices {
		counts[idx]++
	}
	return counts
}

// StitchUsage returns the number of cells of each stitch kind, indexed by Stitch.
func (c *Chart) StitchUsage() []int {
	counts := make([]int, len(stitchNames))
	for _, s := range c.stitches {
		counts[s]++
	}
	return counts
}

func (c *Chart) view(rows, cols Range, f func(k int) string) ([][]string, error) {
	rows, err := rows.resolve(c.rows)
	if err != nil {
		return nil, err
	}
	cols, err = cols.resolve(c.cols)
	if err != nil {
		return nil, err
	}
	out := make([][]string, rows.Len())
	for i := range out {
		out[i] = make([]string, cols.Len())
		for j := range out[i] {
			out[i][j] = f((rows.Start+i)*c.cols + cols.Start + j)
		}
	}
	return out, nil
}

// Symbols returns the chart symbols of the cells within the given ranges.
func (c *Chart) Symbols(rows, cols Range) ([][]string, error) {
	return c.view(rows, cols, func(k int) string { return c.stitches[k].Symbol() })
}

// Names returns the stitch abbreviations of the cells within the given ranges.
func (c *Chart) Names(rows, cols Range) ([][]string, error) {
	return c.view(rows, cols, func(k int) string { return c.stitches[k].String() })
}

// Tags returns the palette tags of the cells within the given ranges.
func (c *Chart) Tags(rows, cols Range) ([][]string, error) {
	return c.view(rows, cols, func(k int) string { return c.palette.Tag(c.indices[k]) })
}

// Stitches returns the stitches of the cells within the given ranges.
func (c *Chart) Stitches(rows, cols Range) ([][]Stitch, error) {
	rows, err := rows.resolve(c.rows)
	if err != nil {
		return nil, err
	}
	cols, err = cols.resolve(c.cols)
	if err != nil {
		return nil, err
	}
	out := make([][]Stitch, rows.Len())
	for i := range out {
		start := (rows.Start+i)*c.cols + cols.Start
		out[i] = slices.Clone(c.stitches[start : start+cols.Len()])
	}
	return out, nil
}

// Colors returns the colors of the cells within the given ranges.
func (c *Chart) Colors(rows, cols Range) ([][]color.RGBA, error) {
	rows, err := rows.resolve(c.rows)
	if err != nil {
		return nil, err
	}
	cols, err = cols.resolve(c.cols)
	if err != nil {
		return nil, err
	}
	out := make([][]color.RGBA, rows.Len())
	for i := range out {
		out[i] = make([]color.RGBA, cols.Len())
		for j := range out[i] {
			out[i][j], _ = c.palette.Color(c.indices[(rows.Start+i)*c.cols+cols.Start+j])
		}
	}
	return out, nil
}

// Sub returns a new chart with the cells within the given ranges.
func (c *Chart) Sub(rows, cols Range) (*Chart, error) {
	stitches, err := c.Stitches(rows, cols)
	if err != nil {
		return nil, err
	}
	colors, err := c.Colors(rows, cols)
	if err != nil {
		return nil, err
	}
	return NewChart(stitches, colors)
}

// Paste overwrites the cells starting at (row,col) with the cells of src. The target area
// must lie within the chart.
func (c *Chart) Paste(row, col int, src *Chart) error {
	if row < 0 || col < 0 || c.rows < row+src.rows || c.cols < col+src.cols {
		return fmt.Errorf("%w: %dx%d chart at (%d, %d) does not fit in %dx%d", ErrFormat, src.rows, src.cols, row, col, c.rows, c.cols)
	}
	for i := 0; i < src.rows; i++ {
		for j := 0; j < src.cols; j++ {
			s, rgba, _ := src.At(i, j)
			k := (row+i)*c.cols + col + j
			c.stitches[k] = s
			c.indices[k] = c.palette.Add(rgba)
		}
	}
	c.OptimizePalette()
	return nil
}

// Copy returns a deep copy.
func (c *Chart) Copy() *Chart {
	return &Chart{
		rows:     c.rows,
		cols:     c.cols,
		stitches: slices.Clone(c.stitches),
		indices:  slices.Clone(c.indices),
		palette:  c.palette.Copy(),
	}
}

// Equal returns true when both charts have the same stitches and colors.
func (c *Chart) Equal(o *Chart) bool {
	if c.rows != o.rows || c.cols != o.cols || !slices.Equal(c.stitches, o.stitches) {
		return false
	}
	for k := range c.indices {
		a, _ := c.palette.Color(c.indices[k])
		b, _ := o.palette.Color(o.indices[k])
		if a != b {
			return false
		}
	}
	return true
}

func (c *Chart) String() string {
	sb := strings.Builder{}
	sb.WriteString("Knitting Chart:\n")
	symbols, _ := c.Symbols(All, All)
	sb.WriteString(FormatSymbols(symbols))

	sb.WriteString("\nColor Chart:\n")
	tags, _ := c.Tags(All, All)
	sb.WriteString(FormatSymbols(tags))

	sb.WriteString("\nColor Palette:\n")
	for i := 0; i < c.palette.Len(); i++ {
		rgba, _ := c.palette.Color(i)
		fmt.Fprintf(&sb, "  %s: (%d, %d, %d)\n", c.palette.Tag(i), rgba.R, rgba.G, rgba.B)
	}
	return sb.String()
}
