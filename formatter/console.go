package formatter

import (
	"io"
	"os"

	"github.com/amersulieman/msgbody"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// ControlCodes holds escape sequences a terminal is sent around a body.
type ControlCodes struct {
	Preamble, Postamble []byte
	Newline             []byte
}

// DefaultCodes is the default set of control codes.
var DefaultCodes = ControlCodes{
	Preamble:  []byte{},
	Postamble: []byte{'\n'},
	Newline:   []byte{'\n'},
}

// Palette maps the names of styles ("bold", "italic", "strikethrough",
// "monospace", "spoiler") and of "link", "mention" and "pending" to terminal
// attributes.
// Attributes of all active styles of a run of text are combined.
type Palette map[string][]color.Attribute

// DefaultPalette returns the console attributes used if no palette is given.
func DefaultPalette() Palette {
	return Palette{
		msgbody.Bold.String():          {color.Bold},
		msgbody.Italic.String():        {color.Italic},
		msgbody.Strikethrough.String(): {color.CrossedOut},
		msgbody.Monospace.String():     {color.Faint},
		msgbody.Spoiler.String():       {color.ReverseVideo},
		"link":                         {color.Underline},
		"mention":                      {color.FgCyan},
		"pending":                      {color.Faint, color.BlinkSlow},
	}
}

// Console is a format for outputting message bodies to a console with a
// fixed width font. Styles are displayed with SGR escape sequences, as
// supported by package color, which turns them off for non-interactive
// output.
type Console struct {
	Codes   *ControlCodes
	palette Palette
	colors  map[colorKey]*color.Color
}

type colorKey struct {
	styles  msgbody.StyleSet
	link    bool
	mention bool
	pending bool
}

// NewConsole creates a new console formatter. palette may contain just a
// subset of the styles; nil means DefaultPalette.
func NewConsole(palette Palette) *Console {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Console{
		Codes:   &DefaultCodes,
		palette: palette,
		colors:  make(map[colorKey]*color.Color),
	}
}

// Print outputs a composed body to stdout.
//
// If parameter config is nil, a config is created from the current
// terminal's properties.
func (con *Console) Print(res *msgbody.Result, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	return Output(res, os.Stdout, config, con)
}

// Text is called by the formatting driver to output a run of uniformly styled
// text. It uses terminal attributes to visualize styles.
// (Part of interface Format)
func (con *Console) Text(s string, seg msgbody.Segment, w io.Writer) error {
	c := con.color(colorKey{
		styles:  seg.Styles,
		link:    seg.Link != nil,
		mention: seg.Mention != nil,
		pending: seg.Pending,
	})
	var err error
	if c == nil {
		_, err = io.WriteString(w, s)
	} else {
		_, err = c.Fprint(w, s)
	}
	return err
}

func (con *Console) color(key colorKey) *color.Color {
	if c, ok := con.colors[key]; ok {
		return c
	}
	var attrs []color.Attribute
	for _, s := range key.styles.Styles() {
		attrs = append(attrs, con.palette[s.String()]...)
	}
	if key.link {
		attrs = append(attrs, con.palette["link"]...)
	}
	if key.mention {
		attrs = append(attrs, con.palette["mention"]...)
	}
	if key.pending {
		attrs = append(attrs, con.palette["pending"]...)
	}
	var c *color.Color
	if len(attrs) > 0 {
		c = color.New(attrs...)
	}
	con.colors[key] = c
	return c
}

// Enter is part of interface Format. Styles are applied per run of text,
// therefore brackets produce no output.
func (con *Console) Enter(*msgbody.Node, io.Writer) error { return nil }

// Leave is part of interface Format.
func (con *Console) Leave(*msgbody.Node, io.Writer) error { return nil }

// Preamble is called by the output driver before a body will be formatted.
// It outputs the `Preamble` escape sequence from con.Codes.
// (Part of interface Format)
func (con *Console) Preamble(w io.Writer) error {
	_, err := w.Write(con.Codes.Preamble)
	return err
}

// Postamble will be called after a body has been formatted.
// It outputs the `Postamble` escape sequence from con.Codes.
// (Part of interface Format)
func (con *Console) Postamble(w io.Writer) error {
	_, err := w.Write(con.Codes.Postamble)
	return err
}

// Newline will be called at the end of every wrapped line of text.
// It outputs the `Newline` escape sequence from con.Codes.
// (Part of interface Format)
func (con *Console) Newline(w io.Writer) error {
	_, err := w.Write(con.Codes.Newline)
	return err
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a formatting Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{LineWidth: 65}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			switch {
			case w > 65:
				config.LineWidth = w - 10
			case w > 30:
				config.LineWidth = w - 5
			case w > 10:
				config.LineWidth = w
			default:
				config.LineWidth = 10
			}
		}
	}
	tracer().P("format", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
