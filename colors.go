package knitvis

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// Color is a color identifier as stored in pattern documents: a CSS color name such as "blue",
// a hexadecimal value such as "#00f" or "#0000ff", or a functional value such as "rgb(0, 0, 255)".
type Color string

const (
	White Color = "white"
	Black Color = "black"
	Grey  Color = "grey"
)

// DefaultChartColor is the cell color of charts created without colors.
var DefaultChartColor = color.RGBA{128, 128, 128, 255}

// RGB returns the hexadecimal color identifier for red, green, and blue ∈ [0,255].
func RGB(r, g, b uint8) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// RGBA resolves the identifier to an opaque color.
func (c Color) RGBA() (color.RGBA, error) {
	return ParseColor(string(c))
}

func (c Color) String() string {
	return string(c)
}

// ParseColor parses a CSS color: a named color, #rgb, #rrggbb, rgb(r,g,b) with integer or
// percentage components. The alpha channel is always opaque.
func ParseColor(s string) (color.RGBA, error) {
	fold := cases.Fold()
	l := css.NewLexer(parse.NewInputString(strings.TrimSpace(s)))
	tt, data := next(l)
	switch tt {
	case css.IdentToken:
		name := fold.String(string(data))
		if col, ok := colornames.Map[name]; ok {
			if end, _ := next(l); end == css.ErrorToken {
				return col, nil
			}
		}
	case css.HashToken:
		if col, ok := parseHex(string(data[1:])); ok {
			if end, _ := next(l); end == css.ErrorToken {
				return col, nil
			}
		}
	case css.FunctionToken:
		name := fold.String(string(data[:len(data)-1]))
		if name == "rgb" || name == "rgba" {
			if col, ok := parseRGBFunc(l); ok {
				return col, nil
			}
		}
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
}

// next returns the next token that is not whitespace.
func next(l *css.Lexer) (css.TokenType, []byte) {
	for {
		tt, data := l.Next()
		if tt != css.WhitespaceToken {
			return tt, data
		}
	}
}

func parseHex(s string) (color.RGBA, bool) {
	h := make([]uint8, len(s))
	for i, c := range s {
		if '0' <= c && c <= '9' {
			h[i] = uint8(c - '0')
		} else if 'a' <= c && c <= 'f' {
			h[i] = 10 + uint8(c-'a')
		} else if 'A' <= c && c <= 'F' {
			h[i] = 10 + uint8(c-'A')
		} else {
			return color.RGBA{}, false
		}
	}
	if len(s) == 3 {
		return color.RGBA{h[0]*16 + h[0], h[1]*16 + h[1], h[2]*16 + h[2], 0xff}, true
	} else if len(s) == 6 {
		return color.RGBA{h[0]*16 + h[1], h[2]*16 + h[3], h[4]*16 + h[5], 0xff}, true
	}
	return color.RGBA{}, false
}

// parseRGBFunc parses the arguments of rgb( up to and including the closing parenthesis.
// A fourth (alpha) argument is accepted and ignored.
func parseRGBFunc(l *css.Lexer) (color.RGBA, bool) {
	vals := []float64{}
	for {
		tt, data := next(l)
		switch tt {
		case css.NumberToken:
			f, err := strconv.ParseFloat(string(data), 64)
			if err != nil {
				return color.RGBA{}, false
			}
			vals = append(vals, f)
		case css.PercentageToken:
			f, err := strconv.ParseFloat(string(data[:len(data)-1]), 64)
			if err != nil {
				return color.RGBA{}, false
			}
			vals = append(vals, f*255.0/100.0)
		case css.CommaToken:
		case css.RightParenthesisToken:
			if len(vals) != 3 && len(vals) != 4 {
				return color.RGBA{}, false
			}
			if end, _ := next(l); end != css.ErrorToken {
				return color.RGBA{}, false
			}
			return color.RGBA{clamp(vals[0]), clamp(vals[1]), clamp(vals[2]), 0xff}, true
		default:
			return color.RGBA{}, false
		}
	}
}

func clamp(f float64) uint8 {
	return uint8(math.Max(0.0, math.Min(255.0, math.Round(f))))
}

// Luminance returns the relative luminance of a color in [0,255].
func Luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return 0.2126*float64(r>>8) + 0.7152*float64(g>>8) + 0.0722*float64(b>>8)
}

// TextColor returns black or white, whichever is readable on top of the given color.
func TextColor(c color.Color) color.RGBA {
	if 128.0 < Luminance(c) {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}

// toRGBA converts any color to opaque 8-bit RGB.
func toRGBA(c color.Color) color.RGBA {
	r, g, b, _ := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0xff}
}
