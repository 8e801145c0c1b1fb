package renderers

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knitvis/knitvis"
	"golang.org/x/image/tiff"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure is a plot together with its intended size.
type Figure struct {
	Plot          *plot.Plot
	Width, Height vg.Length

	text string // symbolic rendering for .txt output, if any
}

// Resolution is the number of dots per inch of bitmap output.
type Resolution int

// Size overrides the figure size.
type Size struct {
	Width, Height vg.Length
}

// SVGOptions are options for SVG output.
type SVGOptions struct {
	Minify bool
}

// Options are the output options collected from the arguments to Write.
type Options struct {
	Resolution
	Size *Size
	JPG  *jpeg.Options
	GIF  *gif.Options
	SVG  *SVGOptions
}

func parseOptions(opts []interface{}) (Options, error) {
	options := Options{
		Resolution: 96,
		SVG:        &SVGOptions{},
	}
	for _, opt := range opts {
		switch o := opt.(type) {
		case Resolution:
			if o <= 0 {
				return options, fmt.Errorf("invalid resolution: %d", o)
			}
			options.Resolution = o
		case Size:
			options.Size = &o
		case *jpeg.Options:
			options.JPG = o
		case *gif.Options:
			options.GIF = o
		case *SVGOptions:
			options.SVG = o
		default:
			return options, fmt.Errorf("unknown option: %v", opt)
		}
	}
	return options, nil
}

// Write writes the figure to a file, choosing the format by the file extension: .png, .jpg,
// .jpeg, .gif, .tif, .tiff, .svg, .pdf, .eps, .tex, or .txt (symbolic charts only). Options
// are of type Resolution, Size, *jpeg.Options, *gif.Options, and *SVGOptions.
func Write(filename string, fig *Figure, opts ...interface{}) (err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := f.Close(); err == nil {
			err = errClose
		}
	}()
	return Encode(f, strings.TrimPrefix(ext, "."), fig, opts...)
}

// Encode writes the figure in the given format, see Write.
func Encode(w io.Writer, format string, fig *Figure, opts ...interface{}) error {
	options, err := parseOptions(opts)
	if err != nil {
		return err
	}
	width, height := fig.Width, fig.Height
	if options.Size != nil {
		width, height = options.Size.Width, options.Size.Height
	}
	knitvis.Logger().Debug("writing figure", "format", format, "width", width, "height", height)

	switch format {
	case "png", "jpg", "jpeg", "gif", "tif", "tiff":
		c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(int(options.Resolution)))
		fig.Plot.Draw(draw.New(c))
		switch format {
		case "png":
			_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		case "jpg", "jpeg":
			err = jpeg.Encode(w, c.Image(), options.JPG)
		case "gif":
			err = gif.Encode(w, c.Image(), options.GIF)
		case "tif", "tiff":
			_, err = vgimg.TiffCanvas{Canvas: c}.WriteTo(w)
		}
		return err
	case "svg":
		wt, err := fig.Plot.WriterTo(width, height, "svg")
		if err != nil {
			return err
		}
		if !options.SVG.Minify {
			_, err = wt.WriteTo(w)
			return err
		}
		buf := &bytes.Buffer{}
		if _, err := wt.WriteTo(buf); err != nil {
			return err
		}
		return MinifySVG(w, buf)
	case "pdf", "eps", "tex":
		wt, err := fig.Plot.WriterTo(width, height, format)
		if err != nil {
			return err
		}
		_, err = wt.WriteTo(w)
		return err
	case "txt":
		if fig.text == "" {
			return fmt.Errorf("figure has no text representation")
		}
		_, err = io.WriteString(w, fig.text)
		return err
	}
	return fmt.Errorf("unknown file extension: .%v", format)
}

// WriteImage writes a bitmap to a .png, .jpg, .jpeg, .gif, .tif, or .tiff file.
func WriteImage(filename string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".gif" && ext != ".tif" && ext != ".tiff" {
		return fmt.Errorf("output extension must be PNG, JPG, GIF, or TIFF")
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := f.Close(); err == nil {
			err = errClose
		}
	}()

	switch ext {
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, nil)
	case ".gif":
		return gif.Encode(f, img, nil)
	default:
		return tiff.Encode(f, img, nil)
	}
}
