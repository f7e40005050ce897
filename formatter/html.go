package formatter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amersulieman/msgbody"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML is a format for simple HTML output. Bodies are converted to a tree
// of html.Nodes, which is rendered to the output by Postamble:
//
//	<p><b>Bold <i>and italic</i></b>, <span class="spoiler hidden" data-spoiler="4:6">▒▒▒▒</span>,
//	<span class="mention" data-id="…">Bender</span> and <a href="https://signal.org">signal.org</a></p>
type HTML struct {
	Container atom.Atom // element enclosing a body, default <p>
	root      *html.Node
	open      []*html.Node // stack of open elements
}

// NewHTML creates an HTML formatter.
func NewHTML() *HTML {
	return &HTML{Container: atom.P}
}

// Print outputs a composed body as HTML. Lines are not wrapped.
func (h *HTML) Print(res *msgbody.Result, w io.Writer) error {
	return Output(res, w, &Config{}, h)
}

// Root returns the node tree of the body output last.
func (h *HTML) Root() *html.Node {
	return h.root
}

// Preamble starts a new node tree.
// (Part of interface Format)
func (h *HTML) Preamble(io.Writer) error {
	container := h.Container
	if container == 0 {
		container = atom.P
	}
	h.root = element(container)
	h.open = []*html.Node{h.root}
	return nil
}

// Postamble renders the node tree.
// (Part of interface Format)
func (h *HTML) Postamble(w io.Writer) error {
	if err := html.Render(w, h.root); err != nil {
		return fmt.Errorf("formatter: cannot render HTML: %w", err)
	}
	return nil
}

// Enter opens an element for a bracket node of the style tree.
// (Part of interface Format)
func (h *HTML) Enter(node *msgbody.Node, w io.Writer) error {
	var n *html.Node
	switch node.Kind {
	case msgbody.LinkNode:
		n = element(atom.A, html.Attribute{Key: "href", Val: node.Link.URL})
	case msgbody.StyleNode:
		switch node.Style {
		case msgbody.Bold:
			n = element(atom.B)
		case msgbody.Italic:
			n = element(atom.I)
		case msgbody.Strikethrough:
			n = element(atom.S)
		case msgbody.Monospace:
			n = element(atom.Code)
		case msgbody.Spoiler:
			class := "spoiler"
			if node.Hidden {
				class += " hidden"
			}
			n = element(atom.Span, html.Attribute{Key: "class", Val: class})
			if node.Spoiler != nil {
				n.Attr = append(n.Attr, html.Attribute{
					Key: "data-spoiler",
					Val: strconv.Itoa(node.Spoiler.Start) + ":" + strconv.Itoa(node.Spoiler.Length),
				})
			}
		}
	}
	if n == nil {
		return fmt.Errorf("formatter: cannot convert %s node to HTML: %w", node.Kind, msgbody.ErrIllegalArguments)
	}
	h.top().AppendChild(n)
	h.open = append(h.open, n)
	return nil
}

// Leave closes the element opened by Enter.
// (Part of interface Format)
func (h *HTML) Leave(*msgbody.Node, io.Writer) error {
	if len(h.open) <= 1 {
		return fmt.Errorf("formatter: unbalanced HTML elements: %w", msgbody.ErrIllegalArguments)
	}
	h.open = h.open[:len(h.open)-1]
	return nil
}

// Text appends a text node. Mentions are enclosed in a span element.
// (Part of interface Format)
func (h *HTML) Text(s string, seg msgbody.Segment, w io.Writer) error {
	parent := h.top()
	if seg.Mention != nil {
		span := element(atom.Span,
			html.Attribute{Key: "class", Val: "mention"},
			html.Attribute{Key: "data-id", Val: seg.Mention.ID})
		parent.AppendChild(span)
		parent = span
	} else if seg.Pending {
		span := element(atom.Span, html.Attribute{Key: "class", Val: "pending"})
		parent.AppendChild(span)
		parent = span
	}
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return nil
}

// Newline appends a <br> element.
// (Part of interface Format)
func (h *HTML) Newline(io.Writer) error {
	h.top().AppendChild(element(atom.Br))
	return nil
}

func (h *HTML) top() *html.Node {
	return h.open[len(h.open)-1]
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}
