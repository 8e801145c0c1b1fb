package renderers

import (
	"fmt"
	"image/color"
	"io"

	"github.com/knitvis/knitvis"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// UsageKind selects what UsageChart counts.
type UsageKind int

const (
	ColorUsage UsageKind = iota
	StitchUsage
)

func (k UsageKind) String() string {
	if k == StitchUsage {
		return "stitch"
	}
	return "color"
}

// ParseUsageKind parses "color" or "stitch".
func ParseUsageKind(s string) (UsageKind, error) {
	switch s {
	case "color", "colour", "":
		return ColorUsage, nil
	case "stitch":
		return StitchUsage, nil
	}
	return 0, fmt.Errorf("unknown usage kind: %s", s)
}

func drawingColor(c color.Color) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// usageBars returns a bar per palette color or per stitch kind in use. Colors are filled with
// themselves, stitches with the default chart color.
func usageBars(ch *knitvis.Chart, kind UsageKind) []chart.Value {
	stroke := chart.Style{StrokeColor: drawing.ColorBlack, StrokeWidth: 1.0}
	bars := []chart.Value{}
	if kind == StitchUsage {
		for s, n := range ch.StitchUsage() {
			if n == 0 {
				continue
			}
			style := stroke
			style.FillColor = drawingColor(knitvis.DefaultChartColor)
			bars = append(bars, chart.Value{Value: float64(n), Label: knitvis.Stitch(s).String(), Style: style})
		}
		return bars
	}

	p := ch.Palette()
	for i, n := range ch.ColorUsage() {
		if n == 0 {
			continue
		}
		rgba, _ := p.Color(i)
		style := stroke
		style.FillColor = drawingColor(rgba)
		bars = append(bars, chart.Value{Value: float64(n), Label: p.Tag(i), Style: style})
	}
	return bars
}

// UsageChart writes a bar chart of the number of cells per color or per stitch to w, as a
// PNG or SVG image depending on format.
func UsageChart(w io.Writer, ch *knitvis.Chart, kind UsageKind, format string, width, height int) error {
	var provider chart.RendererProvider
	switch format {
	case "png":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("unknown usage chart format: %s", format)
	}

	bars := usageBars(ch, kind)
	if len(bars) == 0 {
		return fmt.Errorf("%w: empty chart", knitvis.ErrFormat)
	}
	most := 1.0
	for _, bar := range bars {
		most = max(most, bar.Value)
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Cells per %v", kind),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      width,
		Height:     height,
		BarWidth:   40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0.0, Max: most},
		},
		Bars: bars,
	}
	knitvis.Logger().Debug("usage chart", "kind", kind.String(), "bars", len(bars))
	return graph.Render(provider, w)
}
