package renderers

import (
	"os"

	"github.com/knitvis/knitvis"
	"github.com/pkg/browser"
)

// Show writes the figure to a temporary file with the given extension and opens it with the
// system viewer. It returns the filename so that the caller may remove it.
func Show(fig *Figure, ext string, opts ...interface{}) (string, error) {
	f, err := os.CreateTemp("", "knitvis-*."+ext)
	if err != nil {
		return "", err
	}
	filename := f.Name()
	if err := f.Close(); err != nil {
		return filename, err
	}
	if err := Write(filename, fig, opts...); err != nil {
		return filename, err
	}
	return filename, ShowFile(filename)
}

// ShowFile opens an existing file with the system viewer.
func ShowFile(filename string) error {
	knitvis.Logger().Info("opening viewer", "file", filename)
	return browser.OpenFile(filename)
}
