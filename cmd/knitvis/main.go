package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knitvis/knitvis"
	"github.com/knitvis/knitvis/renderers"
	"github.com/tdewolff/argp"
)

type Main struct{}

type Chart struct {
	Rows       string `short:"r" desc:"Rows to draw, 1-based and inclusive, e.g. 3:10"`
	Cols       string `short:"c" desc:"Columns to draw, 1-based and inclusive"`
	Title      string `short:"t" desc:"Figure title"`
	Resolution int    `default:"96" desc:"Dots per inch of bitmap output"`
	Raster     bool   `desc:"Draw bitmaps directly instead of through the plot"`
	Minify     bool   `desc:"Minify SVG output"`
	Show       bool   `desc:"Open the result in the system viewer"`
	Settings   string `short:"s" desc:"Settings file (.toml, .yaml, or .json)"`
	Verbose    bool   `short:"v" desc:"Verbose"`
	Output     string `short:"o" desc:"Output file (.png, .jpg, .gif, .tif, .svg, .pdf, .eps, .tex, or .txt)"`
	Input      string `index:"0" desc:"Pattern or chart file"`
}

type Fabric struct {
	Outlines   bool   `desc:"Outline every stitch"`
	Resolution int    `default:"96" desc:"Dots per inch of bitmap output"`
	Raster     bool   `desc:"Draw bitmaps directly instead of through the plot"`
	Show       bool   `desc:"Open the result in the system viewer"`
	Settings   string `short:"s" desc:"Settings file (.toml, .yaml, or .json)"`
	Verbose    bool   `short:"v" desc:"Verbose"`
	Output     string `short:"o" desc:"Output file"`
	Input      string `index:"0" desc:"Pattern or chart file"`
}

type Text struct {
	Ascii    bool   `short:"a" desc:"Use ASCII stitch symbols for charts"`
	Settings string `short:"s" desc:"Settings file (.toml, .yaml, or .json)"`
	Verbose  bool   `short:"v" desc:"Verbose"`
	Input    string `index:"0" desc:"Pattern or chart file"`
}

type Palette struct {
	Show     bool   `desc:"Open the result in the system viewer"`
	Settings string `short:"s" desc:"Settings file (.toml, .yaml, or .json)"`
	Verbose  bool   `short:"v" desc:"Verbose"`
	Output   string `short:"o" desc:"Output file, .json writes the palette document"`
	Input    string `index:"0" desc:"Pattern or chart file"`
}

type Usage struct {
	Kind     string `short:"k" default:"color" desc:"Count cells per color or per stitch"`
	Width    int    `default:"640" desc:"Image width in pixels"`
	Height   int    `default:"400" desc:"Image height in pixels"`
	Show     bool   `desc:"Open the result in the system viewer"`
	Settings string `short:"s" desc:"Settings file (.toml, .yaml, or .json)"`
	Verbose  bool   `short:"v" desc:"Verbose"`
	Output   string `short:"o" desc:"Output file (.png or .svg)"`
	Input    string `index:"0" desc:"Pattern or chart file"`
}

type Log struct {
	Row       int    `short:"r" desc:"First row of the pair just knitted"`
	Section   string `short:"s" default:"main" desc:"Section of the pattern"`
	Direction string `short:"d" default:"forward" desc:"Knitting direction"`
	Verbose   bool   `short:"v" desc:"Verbose"`
	File      string `index:"0" desc:"Progress log file"`
}

type Convert struct {
	Layer    string `short:"l" default:"front" desc:"Chart to write: front, back, or interleaved"`
	Settings string `short:"s" desc:"Settings file (.toml, .yaml, or .json)"`
	Verbose  bool   `short:"v" desc:"Verbose"`
	Output   string `short:"o" desc:"Output chart file"`
	Input    string `index:"0" desc:"Pattern file"`
}

type Resize struct {
	Rows    int    `short:"r" desc:"Number of rows"`
	Cols    int    `short:"c" desc:"Number of columns"`
	Verbose bool   `short:"v" desc:"Verbose"`
	Output  string `short:"o" desc:"Output pattern file, defaults to the input"`
	Input   string `index:"0" desc:"Pattern file"`
}

type New struct {
	Rows     int    `short:"r" default:"10" desc:"Number of rows"`
	Cols     int    `short:"c" default:"10" desc:"Number of columns"`
	Front    string `desc:"Front color, defaults to the settings"`
	Back     string `desc:"Back color, defaults to the settings"`
	Settings string `short:"s" desc:"Settings file (.toml, .yaml, or .json)"`
	Verbose  bool   `short:"v" desc:"Verbose"`
	Output   string `index:"0" desc:"Output pattern file"`
}

type Settings struct {
	Output string `index:"0" desc:"Output settings file (.toml, .yaml, or .json)"`
}

func main() {
	root := argp.NewCmd(&Main{}, "Double-knitting pattern toolkit")
	root.AddCmd(&Chart{}, "chart", "Render the chart of a pattern or stitch chart")
	root.AddCmd(&Fabric{}, "fabric", "Render the knitted fabric of a pattern or stitch chart")
	root.AddCmd(&Text{}, "text", "Print the symbolic chart")
	root.AddCmd(&Palette{}, "palette", "Print or render the color palette")
	root.AddCmd(&Usage{}, "usage", "Render a bar chart of cells per color or stitch")
	root.AddCmd(&Log{}, "log", "Append a progress entry")
	root.AddCmd(&Convert{}, "convert", "Convert a pattern to a stitch chart")
	root.AddCmd(&Resize{}, "resize", "Resize a pattern")
	root.AddCmd(&New{}, "new", "Create an empty pattern")
	root.AddCmd(&Settings{}, "settings", "Write the default settings")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Main) Run() error {
	return argp.ShowUsage
}

func setup(settings string, verbose bool) (knitvis.Settings, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	knitvis.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if settings == "" {
		return knitvis.DefaultSettings(), nil
	}
	return knitvis.LoadSettings(settings)
}

// load reads a pattern file, or a stitch chart file if it is not a pattern. The pattern is
// nil for stitch charts.
func load(filename string) (*knitvis.Chart, *knitvis.Pattern, error) {
	pat, err := knitvis.LoadPattern(filename)
	if err == nil {
		ch, err := pat.Chart()
		return ch, pat, err
	} else if !knitvis.IsFormatError(err) {
		return nil, nil, err
	}

	ch, errChart := knitvis.LoadChart(filename)
	if errChart != nil {
		return nil, nil, fmt.Errorf("neither a pattern nor a chart: %w", err)
	}
	return ch, nil, nil
}

// parseRange parses a 1-based inclusive range "a:b", "a:", ":b", or "a".
func parseRange(s string) (knitvis.Range, error) {
	if s == "" {
		return knitvis.All, nil
	}
	start, end, found := strings.Cut(s, ":")
	if !found {
		end = start
	}
	r := knitvis.Range{Start: 0, End: -1}
	if start != "" {
		n, err := strconv.Atoi(start)
		if err != nil || n < 1 {
			return r, fmt.Errorf("invalid range: %s", s)
		}
		r.Start = n - 1
	}
	if end != "" {
		n, err := strconv.Atoi(end)
		if err != nil || n < r.Start+1 {
			return r, fmt.Errorf("invalid range: %s", s)
		}
		r.End = n
	}
	return r, nil
}

func extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

func isBitmap(ext string) bool {
	switch ext {
	case "png", "jpg", "jpeg", "gif", "tif", "tiff":
		return true
	}
	return false
}

// output writes the figure to filename and opens it when show is set. Without filename the
// figure is written to a temporary PNG file, which requires show.
func output(filename string, show bool, fig *renderers.Figure, opts ...interface{}) error {
	if filename == "" {
		if !show {
			return fmt.Errorf("output file required")
		}
		_, err := renderers.Show(fig, "png", opts...)
		return err
	}
	if err := renderers.Write(filename, fig, opts...); err != nil {
		return err
	}
	if show {
		return renderers.ShowFile(filename)
	}
	return nil
}

func (cmd *Chart) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	settings, err := setup(cmd.Settings, cmd.Verbose)
	if err != nil {
		return err
	}
	ch, pat, err := load(cmd.Input)
	if err != nil {
		return err
	}

	opts := renderers.NewChartOptions(settings)
	opts.Title = cmd.Title
	if opts.Rows, err = parseRange(cmd.Rows); err != nil {
		return err
	} else if opts.Cols, err = parseRange(cmd.Cols); err != nil {
		return err
	}
	if opts.Rows.End == -1 {
		opts.Rows.End = ch.Rows()
	}
	if opts.Cols.End == -1 {
		opts.Cols.End = ch.Cols()
	}

	if cmd.Raster && isBitmap(extension(cmd.Output)) {
		sub, err := ch.Sub(opts.Rows, opts.Cols)
		if err != nil {
			return err
		}
		img, err := renderers.Rasterize(sub, renderers.NewRasterOptions(settings))
		if err != nil {
			return err
		}
		return writeImage(cmd.Output, cmd.Show, img)
	}

	var fig *renderers.Figure
	if pat != nil {
		fig, err = renderers.PatternFigure(pat, settings.Glyphs, opts)
	} else {
		fig, err = renderers.ChartFigure(ch, opts)
	}
	if err != nil {
		return err
	}
	return output(cmd.Output, cmd.Show, fig, renderers.Resolution(cmd.Resolution), &renderers.SVGOptions{Minify: cmd.Minify})
}

func writeImage(filename string, show bool, img image.Image) error {
	if err := renderers.WriteImage(filename, img); err != nil {
		return err
	}
	if show {
		return renderers.ShowFile(filename)
	}
	return nil
}

// fabricChart returns the chart whose fabric is drawn: the front layer of a pattern, or a
// stitch chart as is.
func fabricChart(filename string) (*knitvis.Chart, error) {
	ch, pat, err := load(filename)
	if err != nil {
		return nil, err
	} else if pat == nil {
		return ch, nil
	}
	dk, err := knitvis.NewDoubleKnitting(pat, nil)
	if err != nil {
		return nil, err
	}
	return dk.FrontChart()
}

func (cmd *Fabric) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	settings, err := setup(cmd.Settings, cmd.Verbose)
	if err != nil {
		return err
	}
	ch, err := fabricChart(cmd.Input)
	if err != nil {
		return err
	}

	opts := renderers.NewFabricOptions(settings)
	opts.Outlines = opts.Outlines || cmd.Outlines
	if cmd.Raster && isBitmap(extension(cmd.Output)) {
		img, err := renderers.RasterizeFabric(ch, opts, renderers.NewRasterOptions(settings))
		if err != nil {
			return err
		}
		return writeImage(cmd.Output, cmd.Show, img)
	}

	fig, err := renderers.FabricFigure(ch, opts)
	if err != nil {
		return err
	}
	return output(cmd.Output, cmd.Show, fig, renderers.Resolution(cmd.Resolution))
}

func (cmd *Text) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	settings, err := setup(cmd.Settings, cmd.Verbose)
	if err != nil {
		return err
	}
	ch, pat, err := load(cmd.Input)
	if err != nil {
		return err
	}

	if pat != nil {
		fmt.Print(knitvis.FormatSymbols(pat.Symbols(settings.Glyphs)))
	} else if cmd.Ascii {
		stitches, err := ch.Stitches(knitvis.All, knitvis.All)
		if err != nil {
			return err
		}
		symbols := make([][]string, len(stitches))
		for i, row := range stitches {
			symbols[i] = make([]string, len(row))
			for j, s := range row {
				symbols[i][j] = s.ASCII()
			}
		}
		fmt.Print(knitvis.FormatSymbols(symbols))
	} else {
		fmt.Print(ch)
	}
	return nil
}

func (cmd *Palette) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	if _, err := setup(cmd.Settings, cmd.Verbose); err != nil {
		return err
	}
	ch, _, err := load(cmd.Input)
	if err != nil {
		return err
	}

	p := ch.Palette()
	if cmd.Output == "" && !cmd.Show {
		fmt.Println(p)
		return nil
	} else if extension(cmd.Output) == "json" {
		return knitvis.SavePalette(cmd.Output, p)
	}
	return output(cmd.Output, cmd.Show, renderers.PaletteFigure(p))
}

func (cmd *Usage) Run() error {
	if cmd.Input == "" || cmd.Output == "" {
		return argp.ShowUsage
	}
	if _, err := setup(cmd.Settings, cmd.Verbose); err != nil {
		return err
	}
	kind, err := renderers.ParseUsageKind(cmd.Kind)
	if err != nil {
		return err
	}
	ch, _, err := load(cmd.Input)
	if err != nil {
		return err
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	if err := renderers.UsageChart(f, ch, kind, extension(cmd.Output), cmd.Width, cmd.Height); err != nil {
		f.Close()
		return err
	} else if err := f.Close(); err != nil {
		return err
	}
	if cmd.Show {
		return renderers.ShowFile(cmd.Output)
	}
	return nil
}

func (cmd *Log) Run() error {
	if cmd.File == "" || cmd.Row < 1 {
		return argp.ShowUsage
	}
	if _, err := setup("", cmd.Verbose); err != nil {
		return err
	}
	return knitvis.AppendProgress(cmd.File, cmd.Row, cmd.Section, cmd.Direction)
}

func (cmd *Convert) Run() error {
	if cmd.Input == "" || cmd.Output == "" {
		return argp.ShowUsage
	}
	if _, err := setup(cmd.Settings, cmd.Verbose); err != nil {
		return err
	}
	pat, err := knitvis.LoadPattern(cmd.Input)
	if err != nil {
		return err
	}
	dk, err := knitvis.NewDoubleKnitting(pat, nil)
	if err != nil {
		return err
	}

	var ch *knitvis.Chart
	switch cmd.Layer {
	case "front":
		ch, err = dk.FrontChart()
	case "back":
		ch, err = dk.BackChart()
	case "interleaved":
		ch, err = dk.KnittingChart()
	default:
		return fmt.Errorf("unknown layer: %s", cmd.Layer)
	}
	if err != nil {
		return err
	}
	return knitvis.SaveChart(cmd.Output, ch)
}

func (cmd *Resize) Run() error {
	if cmd.Input == "" || cmd.Rows < 1 || cmd.Cols < 1 {
		return argp.ShowUsage
	}
	if _, err := setup("", cmd.Verbose); err != nil {
		return err
	}
	pat, err := knitvis.LoadPattern(cmd.Input)
	if err != nil {
		return err
	}
	pat, err = pat.Resize(cmd.Rows, cmd.Cols)
	if err != nil {
		return err
	}
	if cmd.Output == "" {
		cmd.Output = cmd.Input
	}
	return knitvis.SavePattern(cmd.Output, pat)
}

func (cmd *New) Run() error {
	if cmd.Output == "" || cmd.Rows < 0 || cmd.Cols < 0 {
		return argp.ShowUsage
	}
	settings, err := setup(cmd.Settings, cmd.Verbose)
	if err != nil {
		return err
	}
	front, back := settings.FrontColor, settings.BackColor
	if cmd.Front != "" {
		front = knitvis.Color(cmd.Front)
	}
	if cmd.Back != "" {
		back = knitvis.Color(cmd.Back)
	}
	if _, err := front.RGBA(); err != nil {
		return err
	} else if _, err := back.RGBA(); err != nil {
		return err
	}
	return knitvis.SavePattern(cmd.Output, knitvis.NewEmptyPattern(cmd.Rows, cmd.Cols, knitvis.WithColors(front, back)))
}

func (cmd *Settings) Run() error {
	if cmd.Output == "" {
		return argp.ShowUsage
	}
	return knitvis.SaveSettings(cmd.Output, knitvis.DefaultSettings())
}
