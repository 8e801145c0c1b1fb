package knitvis

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ReferenceColor is a named yarn color used to derive palette names and tags.
type ReferenceColor struct {
	Name  string
	Tag   string
	Color color.RGBA
}

// ReferenceColors are the yarn colors palette entries are named after. The tag of Green is
// "Gr" to avoid a clash with Gray, and the tag of Blue is "Bl" so that "B" stays for Black.
var ReferenceColors = []ReferenceColor{
	{"White", "W", color.RGBA{255, 255, 255, 255}},
	{"Black", "B", color.RGBA{0, 0, 0, 255}},
	{"Gray", "Gy", color.RGBA{128, 128, 128, 255}},
	{"Red", "R", color.RGBA{255, 0, 0, 255}},
	{"Orange", "O", color.RGBA{255, 165, 0, 255}},
	{"Yellow", "Y", color.RGBA{255, 255, 0, 255}},
	{"Green", "Gr", color.RGBA{0, 128, 0, 255}},
	{"Blue", "Bl", color.RGBA{0, 0, 255, 255}},
	{"Navy", "N", color.RGBA{0, 0, 128, 255}},
	{"Purple", "P", color.RGBA{128, 0, 128, 255}},
	{"Pink", "Pi", color.RGBA{255, 182, 193, 255}},
	{"Brown", "Br", color.RGBA{165, 42, 42, 255}},
}

// NearestReference returns the index into ReferenceColors closest to c in RGB space.
func NearestReference(c color.Color) int {
	src, _ := colorful.MakeColor(toRGBA(c))
	best, bestDist := 0, -1.0
	for i, ref := range ReferenceColors {
		dst, _ := colorful.MakeColor(ref.Color)
		if d := src.DistanceRgb(dst); bestDist < 0.0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Palette is an ordered list of distinct yarn colors. Each color has a full name (e.g. "Red2")
// and a short tag (e.g. "R2") derived from its nearest reference color; repeated shades of
// the same reference get a counter suffix.
type Palette struct {
	colors []color.RGBA
	names  []string
	tags   []string
}

// NewPalette returns a palette for the given colors in order. Duplicates are kept.
func NewPalette(colors []color.RGBA) *Palette {
	p := &Palette{}
	for _, c := range colors {
		p.push(toRGBA(c))
	}
	return p
}

func (p *Palette) push(c color.RGBA) int {
	base := NearestReference(c)
	name, tag := ReferenceColors[base].Name, ReferenceColors[base].Tag
	for n := 2; p.hasTag(tag); n++ {
		name = ReferenceColors[base].Name + strconv.Itoa(n)
		tag = ReferenceColors[base].Tag + strconv.Itoa(n)
	}
	p.colors = append(p.colors, c)
	p.names = append(p.names, name)
	p.tags = append(p.tags, tag)
	return len(p.colors) - 1
}

func (p *Palette) hasTag(tag string) bool {
	for _, t := range p.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Len returns the number of colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Color returns the color at index i.
func (p *Palette) Color(i int) (color.RGBA, bool) {
	if i < 0 || len(p.colors) <= i {
		return color.RGBA{}, false
	}
	return p.colors[i], true
}

// Colors returns a copy of all colors.
func (p *Palette) Colors() []color.RGBA {
	return append([]color.RGBA{}, p.colors...)
}

// Names returns a copy of all full names.
func (p *Palette) Names() []string {
	return append([]string{}, p.names...)
}

// Tags returns a copy of all short tags.
func (p *Palette) Tags() []string {
	return append([]string{}, p.tags...)
}

// Name returns the full name at index i, or the empty string.
func (p *Palette) Name(i int) string {
	if i < 0 || len(p.names) <= i {
		return ""
	}
	return p.names[i]
}

// Tag returns the short tag at index i, or the empty string.
func (p *Palette) Tag(i int) string {
	if i < 0 || len(p.tags) <= i {
		return ""
	}
	return p.tags[i]
}

// Index returns the index of c, or -1 when c is not in the palette.
func (p *Palette) Index(c color.Color) int {
	rgba := toRGBA(c)
	for i, col := range p.colors {
		if col == rgba {
			return i
		}
	}
	return -1
}

// ByName returns the color with the given full name.
func (p *Palette) ByName(name string) (color.RGBA, bool) {
	for i, n := range p.names {
		if n == name {
			return p.colors[i], true
		}
	}
	return color.RGBA{}, false
}

// ByTag returns the color with the given short tag.
func (p *Palette) ByTag(tag string) (color.RGBA, bool) {
	for i, t := range p.tags {
		if t == tag {
			return p.colors[i], true
		}
	}
	return color.RGBA{}, false
}

// Add adds c to the palette and returns its index. If c is already present its existing
// index is returned.
func (p *Palette) Add(c color.Color) int {
	if i := p.Index(c); i != -1 {
		return i
	}
	return p.push(toRGBA(c))
}

// Copy returns a deep copy.
func (p *Palette) Copy() *Palette {
	return &Palette{
		colors: append([]color.RGBA{}, p.colors...),
		names:  append([]string{}, p.names...),
		tags:   append([]string{}, p.tags...),
	}
}

// subset returns a palette with the entries at the given indices, keeping their names and tags.
func (p *Palette) subset(indices []int) *Palette {
	q := &Palette{}
	for _, i := range indices {
		q.colors = append(q.colors, p.colors[i])
		q.names = append(q.names, p.names[i])
		q.tags = append(q.tags, p.tags[i])
	}
	return q
}

func (p *Palette) String() string {
	sb := strings.Builder{}
	for i, c := range p.colors {
		if i != 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%-8s -> %-3s -> (%d, %d, %d)", p.names[i], p.tags[i], c.R, c.G, c.B)
	}
	return sb.String()
}
