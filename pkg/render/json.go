package render

import (
	"encoding/json"

	"github.com/mlortz/sankey/pkg/sankey"
)

type jsonOutput struct {
	TopEdge     float64           `json:"top_edge"`
	XMax        float64           `json:"x_max"`
	LeftLabels  []string          `json:"left_labels"`
	RightLabels []string          `json:"right_labels"`
	Colors      map[string]string `json:"colors"`
	Percent     bool              `json:"percent,omitempty"`
	LeftBands   []jsonBand        `json:"left_bands"`
	RightBands  []jsonBand        `json:"right_bands"`
	Strips      []jsonStrip       `json:"strips"`
}

type jsonBand struct {
	Label  string  `json:"label"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
	Total  float64 `json:"total"`
}

type jsonStrip struct {
	Left       string    `json:"left"`
	Right      string    `json:"right"`
	LeftSum    float64   `json:"left_sum"`
	RightSum   float64   `json:"right_sum"`
	Color      string    `json:"color"`
	ValueLabel bool      `json:"value_label"`
	X          []float64 `json:"x"`
	Lower      []float64 `json:"lower"`
	Upper      []float64 `json:"upper"`
}

// RenderJSON exports the full diagram geometry as a pretty-printed JSON
// document: band extents, strip boundary curves, resolved label orders,
// and the resolved color map. The output is deterministic for a given
// diagram, making it suitable for caching and for golden-file tests of
// external consumers.
func RenderJSON(d *sankey.Diagram) ([]byte, error) {
	out := jsonOutput{
		TopEdge:     d.TopEdge,
		XMax:        d.XMax,
		LeftLabels:  d.LeftLabels,
		RightLabels: d.RightLabels,
		Colors:      d.Colors,
		Percent:     d.PercentValues,
		LeftBands:   buildJSONBands(d.LeftBands),
		RightBands:  buildJSONBands(d.RightBands),
		Strips:      buildJSONStrips(d.Strips),
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONBands(bands []sankey.Band) []jsonBand {
	out := make([]jsonBand, len(bands))
	for i, b := range bands {
		out[i] = jsonBand{Label: b.Label, Bottom: b.Bottom, Top: b.Top, Total: b.Total}
	}
	return out
}

func buildJSONStrips(strips []sankey.Strip) []jsonStrip {
	out := make([]jsonStrip, len(strips))
	for i, s := range strips {
		out[i] = jsonStrip{
			Left:       s.Left,
			Right:      s.Right,
			LeftSum:    s.LeftSum,
			RightSum:   s.RightSum,
			Color:      s.Color,
			ValueLabel: s.HasValueLabel(),
			X:          s.X,
			Lower:      s.Lower,
			Upper:      s.Upper,
		}
	}
	return out
}
