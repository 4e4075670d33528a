// Package palette generates default label colors for sankey diagrams.
//
// When the caller supplies no color map, every distinct label gets a
// color from an evenly hue-spaced HSL wheel, so neighboring labels stay
// visually distinct regardless of how many there are.
package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Saturation and lightness of generated colors. Hue is spread evenly
// over the full wheel.
const (
	saturation = 0.65
	lightness  = 0.60
)

// Generate returns n hex colors evenly spaced in hue, in a fixed
// deterministic order.
func Generate(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		hue := 360 * float64(i) / float64(n)
		colors[i] = colorful.Hsl(hue, saturation, lightness).Hex()
	}
	return colors
}

// Normalize parses a hex color, with or without a leading '#', and
// returns it in canonical lowercase "#rrggbb" form.
func Normalize(hex string) (string, error) {
	s := hex
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// RGB parses a normalized hex color into its red, green, and blue
// components in [0, 1]. It panics on malformed input; use [Normalize]
// first for untrusted strings.
func RGB(hex string) (r, g, b float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic("palette: malformed color " + hex)
	}
	return c.R, c.G, c.B
}
