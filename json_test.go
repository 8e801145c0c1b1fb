package knitvis

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestPatternJSON(t *testing.T) {
	p := MustPattern([][]bool{{true, false}, {false, true}}, WithColors("blue", "grey"))
	b, err := p.MarshalJSON()
	test.Error(t, err)
	test.String(t, string(b), `{"rows":2,"cols":2,"cells":[[true,false],[false,true]],"front_color":"blue","back_color":"grey"}`)

	q := &Pattern{}
	test.Error(t, q.UnmarshalJSON(b))
	test.That(t, q.Equal(p))

	e := NewEmptyPattern(0, 3)
	b, err = e.MarshalJSON()
	test.Error(t, err)
	test.String(t, string(b), `{"rows":0,"cols":3,"cells":[],"front_color":"white","back_color":"black"}`)
	test.Error(t, q.UnmarshalJSON(b))
	test.That(t, q.Equal(e))
}

func TestPatternJSONRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	colors := []Color{White, Black, "navy", "#ff8800", "rgb(10, 20, 30)"}
	for _, shape := range randomShapes(50) {
		rows, cols := shape[0], shape[1]
		t.Run(fmt.Sprintf("%dx%d", rows, cols), func(t *testing.T) {
			p := NewEmptyPattern(rows, cols, WithColors(colors[rng.IntN(len(colors))], colors[rng.IntN(len(colors))]))
			for i, row := range randomCells(rng, rows, cols) {
				for j, v := range row {
					test.Error(t, p.Set(i, j, v))
				}
			}

			b, err := p.MarshalJSON()
			test.Error(t, err)
			q := &Pattern{}
			test.Error(t, q.UnmarshalJSON(b))
			test.That(t, q.Equal(p), string(b))
		})
	}
}

func TestPatternJSONErrors(t *testing.T) {
	var tts = []struct {
		name string
		doc  string
	}{
		{"syntax", `{"rows":1,`},
		{"missing rows", `{"cols":1,"cells":[[true]],"front_color":"white","back_color":"black"}`},
		{"missing cols", `{"rows":1,"cells":[[true]],"front_color":"white","back_color":"black"}`},
		{"missing cells", `{"rows":1,"cols":1,"front_color":"white","back_color":"black"}`},
		{"missing front", `{"rows":1,"cols":1,"cells":[[true]],"back_color":"black"}`},
		{"missing back", `{"rows":1,"cols":1,"cells":[[true]],"front_color":"white"}`},
		{"wrong type", `{"rows":"1","cols":1,"cells":[[true]],"front_color":"white","back_color":"black"}`},
		{"wrong cell type", `{"rows":1,"cols":1,"cells":[[1]],"front_color":"white","back_color":"black"}`},
		{"null cell", `{"rows":1,"cols":2,"cells":[[true,null]],"front_color":"white","back_color":"black"}`},
		{"null row", `{"rows":1,"cols":0,"cells":[null],"front_color":"white","back_color":"black"}`},
		{"null colors", `{"rows":1,"cols":1,"cells":[[true]],"front_color":null,"back_color":"black"}`},
		{"negative", `{"rows":-1,"cols":1,"cells":[],"front_color":"white","back_color":"black"}`},
		{"too few rows", `{"rows":2,"cols":1,"cells":[[true]],"front_color":"white","back_color":"black"}`},
		{"ragged", `{"rows":2,"cols":2,"cells":[[true,false],[true]],"front_color":"white","back_color":"black"}`},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pattern{}
			err := p.UnmarshalJSON([]byte(tt.doc))
			test.That(t, errors.Is(err, ErrFormat), "expected format error, got", err)
		})
	}
}

func TestPatternFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "pattern.json")
	p := MustPattern([][]bool{{true, true, false}}, WithColors("#ff0000", "rgb(0, 0, 0)"))
	test.Error(t, SavePattern(filename, p))

	q, err := LoadPattern(filename)
	test.Error(t, err)
	test.That(t, q.Equal(p))

	_, err = LoadPattern(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(t.TempDir(), "bad.json")
	test.Error(t, os.WriteFile(bad, []byte(`{"rows":1}`), 0644))
	_, err = LoadPattern(bad)
	test.That(t, IsFormatError(err))
	test.That(t, strings.Contains(err.Error(), "bad.json"))
}

func TestPatternStream(t *testing.T) {
	p := MustPattern([][]bool{{false}, {true}})
	buf := &bytes.Buffer{}
	test.Error(t, WritePattern(buf, p))
	q, err := ReadPattern(buf)
	test.Error(t, err)
	test.That(t, q.Equal(p))
}

func TestPaletteJSON(t *testing.T) {
	p := NewPalette([]color.RGBA{{255, 0, 0, 255}, {250, 10, 10, 255}, {0, 0, 0, 255}})
	b, err := p.MarshalJSON()
	test.Error(t, err)

	q := &Palette{}
	test.Error(t, q.UnmarshalJSON(b))
	test.T(t, q.Colors(), p.Colors())
	test.T(t, q.Tag(1), "R2")
	test.T(t, q.Name(1), "Red2")

	err = q.UnmarshalJSON([]byte(`{"colors":[[0,0,0]],"full_names":["Black","White"],"short_tags":["B"]}`))
	test.That(t, errors.Is(err, ErrFormat))

	filename := filepath.Join(t.TempDir(), "palette.json")
	test.Error(t, SavePalette(filename, p))
	q, err = LoadPalette(filename)
	test.Error(t, err)
	test.T(t, q.String(), p.String())
}

func TestChartJSON(t *testing.T) {
	ch, err := NewChart([][]Stitch{{Knit, Purl}, {YarnOver, Knit2Tog}}, [][]color.RGBA{
		{{255, 255, 255, 255}, {0, 0, 0, 255}},
		{{0, 0, 0, 255}, {255, 0, 0, 255}},
	})
	test.Error(t, err)

	b, err := ch.MarshalJSON()
	test.Error(t, err)
	test.That(t, strings.Contains(string(b), "\n    [\"K\",\"P\"],\n"), string(b))
	test.That(t, strings.Contains(string(b), "\n    [\"YO\",\"K2tog\"]\n"), string(b))

	q := &Chart{}
	test.Error(t, q.UnmarshalJSON(b))
	test.That(t, q.Equal(ch))
	test.T(t, q.Palette().String(), ch.Palette().String())

	filename := filepath.Join(t.TempDir(), "chart.json")
	test.Error(t, SaveChart(filename, ch))
	q, err = LoadChart(filename)
	test.Error(t, err)
	test.That(t, q.Equal(ch))
}

func TestChartJSONTagCollision(t *testing.T) {
	// a document tag that equals the generated tag of the fallback color
	fallback := &Palette{}
	fallback.push(DefaultChartColor)
	tag := fallback.Tags()[0]

	doc := fmt.Sprintf(`{"pattern":[["K","K"]],"color_tags":[[%q,"XX"]],"palette":{"colors":[[10,200,30]],"full_names":["Grass"],"short_tags":[%q]}}`, tag, tag)
	ch := &Chart{}
	test.Error(t, ch.UnmarshalJSON([]byte(doc)))
	colors, err := ch.Colors(All, All)
	test.Error(t, err)
	test.T(t, colors, [][]color.RGBA{{{10, 200, 30, 255}, DefaultChartColor}})

	tags := ch.Palette().Tags()
	test.T(t, len(tags), 2)
	test.That(t, tags[0] != tags[1], "tags must be unique", tags)

	b, err := ch.MarshalJSON()
	test.Error(t, err)
	q := &Chart{}
	test.Error(t, q.UnmarshalJSON(b))
	test.That(t, q.Equal(ch), string(b))
	colors, err = q.Colors(All, All)
	test.Error(t, err)
	test.T(t, colors, [][]color.RGBA{{{10, 200, 30, 255}, DefaultChartColor}})
}

func TestChartJSONErrors(t *testing.T) {
	q := &Chart{}
	err := q.UnmarshalJSON([]byte(`{"pattern":[["K"]],"color_tags":[["W"]]}`))
	test.That(t, errors.Is(err, ErrFormat))

	err = q.UnmarshalJSON([]byte(`{"pattern":[["Q"]],"color_tags":[["W"]],"palette":{"colors":[[255,255,255]],"full_names":["White"],"short_tags":["W"]}}`))
	test.That(t, errors.Is(err, ErrFormat))

	err = q.UnmarshalJSON([]byte(`{"pattern":[["K","K"]],"color_tags":[["W"]],"palette":{"colors":[[255,255,255]],"full_names":["White"],"short_tags":["W"]}}`))
	test.That(t, errors.Is(err, ErrFormat))

	// unknown tags fall back to the default color
	test.Error(t, q.UnmarshalJSON([]byte(`{"pattern":[["K","P"]],"color_tags":[["W","X"]],"palette":{"colors":[[255,255,255]],"full_names":["White"],"short_tags":["W"]}}`)))
	_, rgba, err := q.At(0, 1)
	test.Error(t, err)
	test.T(t, rgba, DefaultChartColor)
}
