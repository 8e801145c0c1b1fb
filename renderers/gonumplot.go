package renderers

import (
	"fmt"
	"image/color"
	"strconv"
	"sync"

	"github.com/knitvis/knitvis"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ChartOptions configure ChartFigure.
type ChartOptions struct {
	Rows, Cols knitvis.Range // cells to draw, the zero Range draws the whole axis

	FontSize   float64 // glyph size in points, zero hides the glyphs
	Bold       bool
	CellSize   vg.Length // size of one cell in the figure
	TickEvery  int       // tick every n rows/columns, zero hides the ticks
	LabelEvery int       // label ticks whose number is a multiple of n, zero labels none
	EdgeColor  color.Color
	Title      string
}

// DefaultChartOptions are the chart options of knitvis.DefaultSettings.
var DefaultChartOptions = NewChartOptions(knitvis.DefaultSettings())

// NewChartOptions returns the chart options for the given settings.
func NewChartOptions(s knitvis.Settings) ChartOptions {
	return ChartOptions{
		FontSize:   s.Chart.FontSize,
		Bold:       s.Chart.Bold,
		CellSize:   vg.Points(s.Chart.CellSize),
		TickEvery:  s.Chart.TickEvery,
		LabelEvery: s.Chart.LabelEvery,
		EdgeColor:  color.Black,
	}
}

// boldFont is the bold serif face registered under its own variant with normal weight. The PDF
// backend registers every face without a style and fails to find it again when the weight is bold.
var boldFont = sync.OnceValue(func() font.Font {
	bold := plot.DefaultFont
	bold.Weight = xfont.WeightBold
	face := font.DefaultCache.Lookup(bold, 0)

	fnt := font.Font{Typeface: plot.DefaultFont.Typeface, Variant: plot.DefaultFont.Variant + "Bold"}
	font.DefaultCache.Add(font.Collection{{Font: fnt, Face: face.Face}})
	return fnt
})

// glyphFont returns the serif font at the given size in points.
func glyphFont(size float64, bold bool) font.Font {
	if bold {
		return font.From(boldFont(), vg.Points(size))
	}
	return font.From(plot.DefaultFont, vg.Points(size))
}

// chartPlotter draws chart cells as filled squares with the stitch symbol on top. Cell (i,j)
// covers [j+0.5,j+1.5]×[i+0.5,i+1.5] in data coordinates so that tick n sits at the center of
// row or column n counting from one.
type chartPlotter struct {
	symbols [][]string
	colors  [][]color.RGBA
	rows    knitvis.Range
	cols    knitvis.Range
	opts    ChartOptions
}

func (p *chartPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	textStyle := draw.TextStyle{
		Font:    glyphFont(p.opts.FontSize, p.opts.Bold),
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
		Handler: plot.DefaultTextHandler,
	}
	edge := draw.LineStyle{Color: p.opts.EdgeColor, Width: vg.Points(0.5)}

	for i, row := range p.symbols {
		for j, symbol := range row {
			x := float64(p.cols.Start + j)
			y := float64(p.rows.Start + i)
			x0, x1 := trX(x+0.5), trX(x+1.5)
			y0, y1 := trY(y+0.5), trY(y+1.5)
			rect := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}

			rgba := p.colors[i][j]
			c.FillPolygon(rgba, rect)
			if p.opts.EdgeColor != nil {
				c.StrokeLines(edge, append(rect, rect[0]))
			}
			if 0.0 < p.opts.FontSize {
				textStyle.Color = knitvis.TextColor(rgba)
				c.FillText(textStyle, vg.Point{X: (x0 + x1) / 2.0, Y: (y0 + y1) / 2.0}, symbol)
			}
		}
	}
}

func (p *chartPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	return float64(p.cols.Start) + 0.5, float64(p.cols.End) + 0.5, float64(p.rows.Start) + 0.5, float64(p.rows.End) + 0.5
}

// axisTicks returns ticks at every n-th number in [start+1,end], labelled when the number is
// a multiple of label.
func axisTicks(start, end, n, label int) []plot.Tick {
	if n <= 0 {
		return []plot.Tick{}
	}
	ticks := []plot.Tick{}
	for v := start + 1; v <= end; v += n {
		tick := plot.Tick{Value: float64(v)}
		if 0 < label && v%label == 0 {
			tick.Label = strconv.Itoa(v)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

func newFigurePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.LineStyle.Width = 0
	p.Y.LineStyle.Width = 0
	return p
}

// ChartFigure returns a figure of the chart: colored cells with stitch symbols, row 1 at
// the top, and numbered rows and columns.
func ChartFigure(ch *knitvis.Chart, opts ChartOptions) (*Figure, error) {
	opts.resolve(ch.Size())
	symbols, err := ch.Symbols(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}
	colors, err := ch.Colors(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}
	return symbolFigure(symbols, colors, opts), nil
}

func (opts *ChartOptions) resolve(rows, cols int) {
	if opts.Rows == knitvis.All {
		opts.Rows = knitvis.Range{Start: 0, End: rows}
	}
	if opts.Cols == knitvis.All {
		opts.Cols = knitvis.Range{Start: 0, End: cols}
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultChartOptions.CellSize
	}
}

// FontSizeLength returns the glyph size, or 12pt when glyphs are hidden, to size the margins.
func (opts ChartOptions) FontSizeLength() vg.Length {
	if opts.FontSize <= 0.0 {
		return vg.Points(12.0)
	}
	return vg.Points(opts.FontSize)
}

// PatternFigure returns the chart figure of a double-knitting pattern. Cells get the glyphs
// g and the front or back color.
func PatternFigure(pat *knitvis.Pattern, g knitvis.Glyphs, opts ChartOptions) (*Figure, error) {
	colors, err := pat.ColorGrid()
	if err != nil {
		return nil, err
	}
	rows, cols := pat.Size()
	opts.resolve(rows, cols)
	if opts.Rows.Start < 0 || rows < opts.Rows.End || opts.Rows.End < opts.Rows.Start || opts.Cols.Start < 0 || cols < opts.Cols.End || opts.Cols.End < opts.Cols.Start {
		return nil, fmt.Errorf("%w: range outside %dx%d pattern", knitvis.ErrOutOfRange, rows, cols)
	}

	symbols := pat.Symbols(g)
	for i := range symbols {
		symbols[i] = symbols[i][opts.Cols.Start:opts.Cols.End]
		colors[i] = colors[i][opts.Cols.Start:opts.Cols.End]
	}
	symbols = symbols[opts.Rows.Start:opts.Rows.End]
	colors = colors[opts.Rows.Start:opts.Rows.End]

	return symbolFigure(symbols, colors, opts), nil
}

func symbolFigure(symbols [][]string, colors [][]color.RGBA, opts ChartOptions) *Figure {
	p := newFigurePlot(opts.Title)
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.X.Tick.Marker = plot.ConstantTicks(axisTicks(opts.Cols.Start, opts.Cols.End, opts.TickEvery, opts.LabelEvery))
	p.Y.Tick.Marker = plot.ConstantTicks(axisTicks(opts.Rows.Start, opts.Rows.End, opts.TickEvery, opts.LabelEvery))
	p.Add(&chartPlotter{
		symbols: symbols,
		colors:  colors,
		rows:    opts.Rows,
		cols:    opts.Cols,
		opts:    opts,
	})

	margin := 4 * opts.FontSizeLength()
	fig := &Figure{
		Plot:   p,
		Width:  vg.Length(opts.Cols.Len())*opts.CellSize + margin,
		Height: vg.Length(opts.Rows.Len())*opts.CellSize + margin,
		text:   knitvis.FormatSymbols(symbols),
	}
	if opts.Title != "" {
		fig.Height += 2 * opts.FontSizeLength()
	}
	knitvis.Logger().Debug("chart figure", "rows", opts.Rows.Len(), "cols", opts.Cols.Len())
	return fig
}

// paletteSwatches draws one square per palette color with its tag underneath.
type paletteSwatches struct {
	palette *knitvis.Palette
}

func (s *paletteSwatches) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	textStyle := draw.TextStyle{
		Color:   color.Black,
		Font:    glyphFont(10.0, true),
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
		Handler: plot.DefaultTextHandler,
	}
	edge := draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}

	for i := 0; i < s.palette.Len(); i++ {
		rgba, _ := s.palette.Color(i)
		x0, x1 := trX(float64(i)), trX(float64(i+1))
		y0, y1 := trY(0.0), trY(1.0)
		rect := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		c.FillPolygon(rgba, rect)
		c.StrokeLines(edge, append(rect, rect[0]))
		c.FillText(textStyle, vg.Point{X: trX(float64(i) + 0.5), Y: trY(-0.2)}, s.palette.Tag(i))
	}
}

func (s *paletteSwatches) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0.0, float64(s.palette.Len()), -0.4, 1.0
}

// PaletteFigure returns a figure with a swatch per palette color labelled by its tag.
func PaletteFigure(p *knitvis.Palette) *Figure {
	plt := newFigurePlot("")
	plt.HideAxes()
	plt.Add(&paletteSwatches{palette: p})
	n := max(p.Len(), 1)
	return &Figure{
		Plot:   plt,
		Width:  vg.Length(n) * 0.8 * vg.Inch,
		Height: 1.5 * vg.Inch,
		text:   p.String() + "\n",
	}
}
