// Package fonts provides the parsed text fonts used for raster
// rendering.
//
// The Go Regular typeface ships embedded in the golang.org/x/image
// module, so no external font files are needed. Parsing the TTF data is
// not free; this package parses it once and caches the result.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font.
// The result is cached after first parse.
func Regular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// RegularFace builds a font.Face for Go Regular at the given size in
// points, rendered at 72 DPI with full hinting.
func RegularFace(size float64) (font.Face, error) {
	fnt, err := Regular()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
