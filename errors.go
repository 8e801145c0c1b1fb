package knitvis

import "errors"

var (
	// ErrOutOfRange is returned when a row or column index lies outside the grid.
	ErrOutOfRange = errors.New("index out of range")

	// ErrFormat is returned for malformed documents and mismatched shapes.
	ErrFormat = errors.New("invalid format")

	// ErrColor is returned when a color identifier cannot be parsed.
	ErrColor = errors.New("invalid color")

	// ErrUnknownStitch is returned for stitch names not in the stitch table.
	ErrUnknownStitch = errors.New("unknown stitch")

	// ErrUnsupportedStitch is returned by renderers that cannot draw a stitch kind.
	ErrUnsupportedStitch = errors.New("unsupported stitch")
)
