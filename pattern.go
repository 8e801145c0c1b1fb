package knitvis

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"golang.org/x/image/draw"
)

// Pattern is a double-knitting pattern: a grid of rows×cols stitches where true means the
// front color shows on the front face and false means the back color shows. The shape is
// fixed at construction, individual cells may be changed with Set.
type Pattern struct {
	rows, cols int
	cells      []bool
	front      Color
	back       Color
}

// PatternOption configures a pattern at construction.
type PatternOption func(*Pattern)

// WithColors sets the front and back colors.
func WithColors(front, back Color) PatternOption {
	return func(p *Pattern) {
		p.front = front
		p.back = back
	}
}

// NewPattern returns a pattern for a rows×cols matrix. The matrix is copied and must not be
// ragged. Front and back colors default to white and black.
func NewPattern(cells [][]bool, opts ...PatternOption) (*Pattern, error) {
	rows, cols, err := gridShape(cells)
	if err != nil {
		return nil, err
	}
	p := newPattern(rows, cols)
	for i, row := range cells {
		copy(p.cells[i*cols:], row)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewEmptyPattern returns a rows×cols pattern with all cells showing the back color.
func NewEmptyPattern(rows, cols int, opts ...PatternOption) *Pattern {
	if rows < 0 || cols < 0 {
		panic("knitvis: negative pattern size")
	}
	p := newPattern(rows, cols)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func newPattern(rows, cols int) *Pattern {
	return &Pattern{
		rows:  rows,
		cols:  cols,
		cells: make([]bool, rows*cols),
		front: White,
		back:  Black,
	}
}

// MustPattern is like NewPattern but panics on error.
func MustPattern(cells [][]bool, opts ...PatternOption) *Pattern {
	p, err := NewPattern(cells, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Rows returns the number of rows.
func (p *Pattern) Rows() int {
	return p.rows
}

// Cols returns the number of columns.
func (p *Pattern) Cols() int {
	return p.cols
}

// Size returns the number of rows and columns.
func (p *Pattern) Size() (int, int) {
	return p.rows, p.cols
}

func (p *Pattern) check(row, col int) error {
	if row < 0 || p.rows <= row || col < 0 || p.cols <= col {
		return fmt.Errorf("%w: position (%d, %d) for pattern of size %dx%d", ErrOutOfRange, row, col, p.rows, p.cols)
	}
	return nil
}

// At returns whether the front color shows at a position.
func (p *Pattern) At(row, col int) (bool, error) {
	if err := p.check(row, col); err != nil {
		return false, err
	}
	return p.cells[row*p.cols+col], nil
}

// Set sets the cell at a position. On error the pattern is unchanged.
func (p *Pattern) Set(row, col int, front bool) error {
	if err := p.check(row, col); err != nil {
		return err
	}
	p.cells[row*p.cols+col] = front
	return nil
}

// Toggle flips the cell at a position.
func (p *Pattern) Toggle(row, col int) error {
	if err := p.check(row, col); err != nil {
		return err
	}
	p.cells[row*p.cols+col] = !p.cells[row*p.cols+col]
	return nil
}

// Cells returns a copy of the grid.
func (p *Pattern) Cells() [][]bool {
	cells := make([][]bool, p.rows)
	for i := range cells {
		cells[i] = slices.Clone(p.cells[i*p.cols : (i+1)*p.cols])
	}
	return cells
}

// Colors returns the front and back colors.
func (p *Pattern) Colors() (Color, Color) {
	return p.front, p.back
}

// SetColors sets the front and back colors.
func (p *Pattern) SetColors(front, back Color) {
	p.front = front
	p.back = back
}

// Clone returns a deep copy.
func (p *Pattern) Clone() *Pattern {
	q := *p
	q.cells = slices.Clone(p.cells)
	return &q
}

// Invert returns the complementary pattern with the same colors, i.e. the pattern as seen on
// the back face of the fabric.
func (p *Pattern) Invert() *Pattern {
	q := p.Clone()
	for k := range q.cells {
		q.cells[k] = !q.cells[k]
	}
	return q
}

// Equal returns true when shape, cells, and colors are equal.
func (p *Pattern) Equal(q *Pattern) bool {
	return p.rows == q.rows && p.cols == q.cols && p.front == q.front && p.back == q.back && slices.Equal(p.cells, q.cells)
}

// Resize returns the pattern scaled to rows×cols with nearest-neighbour sampling.
func (p *Pattern) Resize(rows, cols int) (*Pattern, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrOutOfRange, rows, cols)
	}
	q := newPattern(rows, cols)
	q.front, q.back = p.front, p.back
	if rows == 0 || cols == 0 || p.rows == 0 || p.cols == 0 {
		return q, nil
	}

	src := p.mask()
	dst := image.NewGray(image.Rect(0, 0, cols, rows))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			q.cells[i*cols+j] = 128 <= dst.GrayAt(j, i).Y
		}
	}
	Logger().Debug("pattern resized", "from", fmt.Sprintf("%dx%d", p.rows, p.cols), "to", fmt.Sprintf("%dx%d", rows, cols))
	return q, nil
}

// mask returns the pattern as a grayscale image, white where the front color shows.
func (p *Pattern) mask() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.cols, p.rows))
	for i := 0; i < p.rows; i++ {
		for j := 0; j < p.cols; j++ {
			if p.cells[i*p.cols+j] {
				img.SetGray(j, i, color.Gray{255})
			}
		}
	}
	return img
}
