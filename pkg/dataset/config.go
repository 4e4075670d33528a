package dataset

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mlortz/sankey/pkg/errors"
	"github.com/mlortz/sankey/pkg/render"
	"github.com/mlortz/sankey/pkg/sankey"
)

// Config is the TOML diagram configuration. Every field is optional;
// zero values defer to the core and renderer defaults.
//
//	left_order = ["coal", "solar"]
//	right_order = ["industry", "homes"]
//	aspect = 4.0
//	gap_fraction = 0.02
//	percent_values = false
//	right_color = false
//	left_title = "2019"
//	right_title = "2023"
//	flow_alpha = 0.6
//	font_size = 14.0
//
//	[colors]
//	coal = "#555555"
//	solar = "#e6ab02"
type Config struct {
	LeftOrder     []string          `toml:"left_order"`
	RightOrder    []string          `toml:"right_order"`
	Colors        map[string]string `toml:"colors"`
	Aspect        float64           `toml:"aspect"`
	GapFraction   float64           `toml:"gap_fraction"`
	RightColor    bool              `toml:"right_color"`
	PercentValues bool              `toml:"percent_values"`

	LeftTitle  string  `toml:"left_title"`
	RightTitle string  `toml:"right_title"`
	FlowAlpha  float64 `toml:"flow_alpha"`
	FontSize   float64 `toml:"font_size"`
}

// LoadConfig reads a TOML diagram configuration from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML configuration bytes.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return c, nil
}

// DiagramOptions converts the config's layout fields to core options.
func (c Config) DiagramOptions() sankey.Options {
	return sankey.Options{
		LeftOrder:     c.LeftOrder,
		RightOrder:    c.RightOrder,
		Colors:        c.Colors,
		Aspect:        c.Aspect,
		GapFraction:   c.GapFraction,
		RightColor:    c.RightColor,
		PercentValues: c.PercentValues,
	}
}

// RenderOptions converts the config's appearance fields to render
// options. Unset numeric fields are skipped so renderer defaults apply.
func (c Config) RenderOptions() []render.Option {
	var opts []render.Option
	if c.LeftTitle != "" || c.RightTitle != "" {
		opts = append(opts, render.WithTitles(c.LeftTitle, c.RightTitle))
	}
	if c.FlowAlpha > 0 {
		opts = append(opts, render.WithFlowAlpha(c.FlowAlpha))
	}
	if c.FontSize > 0 {
		opts = append(opts, render.WithFontSize(c.FontSize))
	}
	return opts
}
