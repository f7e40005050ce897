package formatter

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/amersulieman/msgbody"
	"github.com/amersulieman/msgbody/detect"
	"github.com/amersulieman/msgbody/itemized"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"
)

// Config represents a set of configuration parameters for formatting.
type Config struct {
	LineWidth int            // wrap lines longer than this (in ‘en’s); 0 means no wrapping
	Context   *uax11.Context // context for character widths
	Palette   Palette        // console attributes for styles; nil means DefaultPalette
}

// Format is an interface for formatting drivers, given an io.Writer.
//
// Enter and Leave are called for every bracket node (style or link) of the
// tree of a body, Text for runs of text of a segment. Segments are split into
// more than one run if a line is wrapped within the segment.
type Format interface {
	Preamble(io.Writer) error
	Postamble(io.Writer) error
	Enter(*msgbody.Node, io.Writer) error
	Leave(*msgbody.Node, io.Writer) error
	Text(string, msgbody.Segment, io.Writer) error
	Newline(io.Writer) error
}

// Output formats a composed body using a given formatter.
//
// res, out and format must not be nil. config may be nil; it is safe to
// have config.Context set to nil, in which case uax11.LatinContext is used.
func Output(res *msgbody.Result, out io.Writer, config *Config, format Format) error {
	//
	if res == nil || out == nil || format == nil {
		return msgbody.ErrIllegalArguments
	}
	if config == nil {
		config = &Config{}
	}
	context := config.Context
	if context == nil {
		context = uax11.LatinContext
	}
	d := &driver{format: format, out: out}
	if config.LineWidth > 0 {
		d.breaks = firstFit(res.Text, config.LineWidth, context)
		tracer().Debugf("formatter: wrapping at %v", d.breaks)
	}
	if err := format.Preamble(out); err != nil {
		return err
	}
	err := res.Tree.Walk(func(node *msgbody.Node, entering bool) error {
		switch {
		case node.Kind == msgbody.RootNode:
			return nil
		case node.Kind == msgbody.TextNode:
			if entering {
				return d.text(node.Segment)
			}
			return nil
		case entering:
			return format.Enter(node, out)
		}
		return format.Leave(node, out)
	})
	if err != nil {
		return err
	}
	return format.Postamble(out)
}

// driver splits segments at line breaks.
type driver struct {
	format Format
	out    io.Writer
	breaks []int // byte positions in the rendered text where lines start
	pos    int   // byte position in the rendered text
}

func (d *driver) text(seg *msgbody.Segment) error {
	s := seg.Text
	for len(d.breaks) > 0 && d.breaks[0] < d.pos+len(s) {
		cut := d.breaks[0] - d.pos
		d.breaks = d.breaks[1:]
		if cut > 0 {
			if err := d.format.Text(s[:cut], *seg, d.out); err != nil {
				return err
			}
		}
		if err := d.format.Newline(d.out); err != nil {
			return err
		}
		s, d.pos = s[cut:], d.pos+cut
	}
	d.pos += len(s)
	if s == "" {
		return nil
	}
	return d.format.Text(s, *seg, d.out)
}

// Print outputs a composed body to stdout, using a Console format.
//
// If parameter config is nil,
// a heuristic will create a config from the current terminal's properties (if
// stdout is interactive). Config.Context will also be created based on heuristics
// from the user environment.
func Print(res *msgbody.Result, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return Output(res, os.Stdout, config, NewConsole(config.Palette))
}

// Width returns the display width of the widest line of a composed body,
// measured in ‘en’s. If context is nil, uax11.LatinContext is used.
func Width(res *msgbody.Result, context *uax11.Context) int {
	if context == nil {
		context = uax11.LatinContext
	}
	width, line := 0, 0
	it := itemized.IterateResult(res)
	for it.Next() {
		lines := strings.Split(it.Segment().Text, "\n")
		for i, l := range lines {
			if i > 0 {
				width, line = max(width, line), 0
			}
			if l != "" {
				line += displayWidth(l, context)
			}
		}
	}
	return max(width, line)
}

// displayWidth sums up the widths of the grapheme clusters of s.
func displayWidth(s string, context *uax11.Context) int {
	w := 0
	for _, g := range detect.Graphemes(s) {
		w += uax11.Width([]byte(g), context)
	}
	return w
}

// --- Line breaking ---------------------------------------------------------

/*
Wikipedia:

	1. |  SpaceLeft := LineWidth
	2. |  for each Word in Text
	3. |      if (Width(Word) + SpaceWidth) > SpaceLeft
	4. |           insert line break before Word in Text
	5. |           SpaceLeft := LineWidth - Width(Word)
	6. |      else
	7. |           SpaceLeft := SpaceLeft - (Width(Word) + SpaceWidth)

firstFit returns the byte positions where wrapped lines start, excluding 0.
Hard line breaks are kept and not reported.
*/
func firstFit(text string, linewidth int, context *uax11.Context) []int {
	//
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(strings.NewReader(text)))
	spaceleft := linewidth
	breaks := make([]int, 0, 8)
	prevpos := 0
	linestart := true
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		fraglen := displayWidth(frag, context)
		if fraglen >= spaceleft {
			if linestart { // fragment is too long for a line
				if pos := prevpos + len(frag); pos < len(text) {
					breaks = append(breaks, pos)
				}
				spaceleft = linewidth
			} else { // fragment overshoots line
				breaks = append(breaks, prevpos)
				spaceleft = linewidth - fraglen
				linestart = false
			}
		} else { // no break, just append the fragment to the current line
			spaceleft -= fraglen
			linestart = false
		}
		prevpos += len(frag)
		if strings.HasSuffix(frag, "\n") {
			spaceleft, linestart = linewidth, true
		}
	}
	return breaks
}
