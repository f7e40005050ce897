package formatter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/uax/uax11"
	"gopkg.in/yaml.v3"
)

// configFile is the YAML representation of a Config:
//
//	line-width: 60
//	context: environment   # or latin
//	palette:
//	  bold: [bold, fg-red]
//	  link: [underline]
type configFile struct {
	LineWidth int                 `yaml:"line-width"`
	Context   string              `yaml:"context"`
	Palette   map[string][]string `yaml:"palette"`
}

var attributeNames = map[string]color.Attribute{
	"bold":       color.Bold,
	"faint":      color.Faint,
	"italic":     color.Italic,
	"underline":  color.Underline,
	"blink":      color.BlinkSlow,
	"reverse":    color.ReverseVideo,
	"concealed":  color.Concealed,
	"crossedout": color.CrossedOut,
	"fg-black":   color.FgBlack,
	"fg-red":     color.FgRed,
	"fg-green":   color.FgGreen,
	"fg-yellow":  color.FgYellow,
	"fg-blue":    color.FgBlue,
	"fg-magenta": color.FgMagenta,
	"fg-cyan":    color.FgCyan,
	"fg-white":   color.FgWhite,
	"bg-black":   color.BgBlack,
	"bg-red":     color.BgRed,
	"bg-green":   color.BgGreen,
	"bg-yellow":  color.BgYellow,
	"bg-blue":    color.BgBlue,
	"bg-magenta": color.BgMagenta,
	"bg-cyan":    color.BgCyan,
	"bg-white":   color.BgWhite,
}

// LoadConfig reads a formatting configuration in YAML format. Palette
// entries replace the respective entries of DefaultPalette. An empty input
// results in a default configuration.
func LoadConfig(r io.Reader) (*Config, error) {
	var file configFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("formatter: cannot read config: %w", err)
	}
	if file.LineWidth < 0 {
		return nil, fmt.Errorf("formatter: negative line width %d", file.LineWidth)
	}
	config := &Config{LineWidth: file.LineWidth, Palette: DefaultPalette()}
	switch strings.ToLower(file.Context) {
	case "", "latin":
		config.Context = uax11.LatinContext
	case "environment":
		config.Context = uax11.ContextFromEnvironment()
	default:
		return nil, fmt.Errorf("formatter: unknown width context %q", file.Context)
	}
	for name, attrs := range file.Palette {
		entry := make([]color.Attribute, 0, len(attrs))
		for _, a := range attrs {
			attr, ok := attributeNames[strings.ToLower(a)]
			if !ok {
				return nil, fmt.Errorf("formatter: unknown attribute %q for %q", a, name)
			}
			entry = append(entry, attr)
		}
		config.Palette[name] = entry
	}
	tracer().Debugf("formatter: loaded config with line width %d", config.LineWidth)
	return config, nil
}
