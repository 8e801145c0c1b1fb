package renderers

import (
	"io"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

var svgMinifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("image/svg+xml", svg.Minify)
	return m
}()

// MinifySVG copies an SVG document from r to w with whitespace, comments, and redundant
// attributes removed and path data shortened.
func MinifySVG(w io.Writer, r io.Reader) error {
	return svgMinifier.Minify("image/svg+xml", w, r)
}
