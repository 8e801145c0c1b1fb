package knitvis

import "fmt"

// Stitch is a stitch kind. The numeric values are fixed and used as indices in charts.
type Stitch int

const (
	Knit      Stitch = iota // K
	Purl                    // P
	YarnOver                // YO
	Knit2Tog                // K2tog, right-leaning decrease
	SlipSlip                // SSK, left-leaning decrease
	CableFront              // C4F
	CableBack               // C4B
	BindOff                 // BO
	CastOn                  // CO
)

var stitchNames = [...]string{"K", "P", "YO", "K2tog", "SSK", "C4F", "C4B", "BO", "CO"}
var stitchSymbols = [...]string{"V", "●", "O", "/", "\\", "X", "X", "-", "_"}
var stitchASCII = [...]string{"V", "o", "O", "/", "\\", "X", "X", "-", "_"}

// Stitches returns all stitch kinds in order.
func Stitches() []Stitch {
	s := make([]Stitch, len(stitchNames))
	for i := range s {
		s[i] = Stitch(i)
	}
	return s
}

// ParseStitch returns the stitch for an abbreviation such as "K" or "K2tog".
func ParseStitch(name string) (Stitch, error) {
	for i, n := range stitchNames {
		if n == name {
			return Stitch(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStitch, name)
}

// Valid returns true for the known stitch kinds.
func (s Stitch) Valid() bool {
	return 0 <= s && int(s) < len(stitchNames)
}

// String returns the abbreviation, or "Unknown".
func (s Stitch) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return stitchNames[s]
}

// Symbol returns the chart symbol, or "?".
func (s Stitch) Symbol() string {
	if !s.Valid() {
		return "?"
	}
	return stitchSymbols[s]
}

// ASCII returns a chart symbol restricted to ASCII, for bitmap fonts.
func (s Stitch) ASCII() string {
	if !s.Valid() {
		return "?"
	}
	return stitchASCII[s]
}
