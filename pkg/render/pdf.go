package render

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/mlortz/sankey/pkg/sankey"
)

// RenderPDF renders the diagram as PDF by generating SVG and converting
// it with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(d *sankey.Diagram, opts ...Option) ([]byte, error) {
	return rsvgConvert(RenderSVG(d, opts...), "pdf")
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
