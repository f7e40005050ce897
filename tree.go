package msgbody

import (
	"fmt"
	"iter"
	"strings"
)

// NodeKind classifies the nodes of a composed tree.
type NodeKind uint8

// Kinds of tree nodes
const (
	RootNode  NodeKind = iota // the root of a tree, bracketing the complete text
	StyleNode                 // bracket around a maximal run sharing a style
	LinkNode                  // bracket around a detected link
	TextNode                  // leaf, carrying a segment
)

func (k NodeKind) String() string {
	switch k {
	case RootNode:
		return "root"
	case StyleNode:
		return "style"
	case LinkNode:
		return "link"
	case TextNode:
		return "text"
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// Node is a node of the composed tree. Style brackets nest in the canonical
// order of Precedence, links are the innermost brackets, segments are leaves.
type Node struct {
	Kind     NodeKind
	Style    Style      // for StyleNode
	Spoiler  *SpoilerID // for StyleNode of style Spoiler
	Hidden   bool       // StyleNode of a hidden spoiler
	Link     *Link      // for LinkNode
	Segment  *Segment   // for TextNode
	Children []*Node
}

// levels of bracketing: one per style of Precedence, then links
const linkLevel = len(Precedence)

// buildTree nests a flat, ordered list of segments into style brackets.
// Nesting depth is bounded by the number of styles plus links.
func buildTree(segments []Segment) *Node {
	root := &Node{Kind: RootNode}
	root.Children = nest(segments, 0)
	return root
}

func nest(segments []Segment, level int) []*Node {
	if level > linkLevel {
		leaves := make([]*Node, len(segments))
		for i := range segments {
			leaves[i] = &Node{Kind: TextNode, Segment: &segments[i]}
		}
		return leaves
	}
	var nodes []*Node
	for i := 0; i < len(segments); {
		in := bracketed(&segments[i], level)
		j := i + 1
		for j < len(segments) && bracketed(&segments[j], level) == in &&
			(!in || sameBracket(&segments[i], &segments[j], level)) {
			j++
		}
		if !in {
			nodes = append(nodes, nest(segments[i:j], level+1)...)
		} else {
			node := bracketNode(&segments[i], level)
			node.Children = nest(segments[i:j], level+1)
			nodes = append(nodes, node)
		}
		i = j
	}
	return nodes
}

func bracketed(seg *Segment, level int) bool {
	if level == linkLevel {
		return seg.Link != nil
	}
	return seg.Styles.Contains(Precedence[level])
}

func sameBracket(a, b *Segment, level int) bool {
	if level == linkLevel {
		return *a.Link == *b.Link
	}
	if Precedence[level] == Spoiler {
		return a.Spoiler != nil && b.Spoiler != nil && *a.Spoiler == *b.Spoiler &&
			a.SpoilerHidden == b.SpoilerHidden
	}
	return true
}

func bracketNode(seg *Segment, level int) *Node {
	if level == linkLevel {
		return &Node{Kind: LinkNode, Link: seg.Link}
	}
	node := &Node{Kind: StyleNode, Style: Precedence[level]}
	if node.Style == Spoiler {
		node.Spoiler = seg.Spoiler
		node.Hidden = seg.SpoilerHidden
	}
	return node
}

// Walk visits the tree depth-first. f is called when entering a node and,
// with entering set to false, when leaving it. Leaves are entered and left
// as well. Walk stops at the first error returned by f and returns it.
func (n *Node) Walk(f func(node *Node, entering bool) error) error {
	if n == nil {
		return nil
	}
	if err := f(n, true); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Walk(f); err != nil {
			return err
		}
	}
	return f(n, false)
}

// Leaves returns an iterator over the segments at the leaves of the tree,
// in text order.
func (n *Node) Leaves() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		n.leaves(yield)
	}
}

func (n *Node) leaves(yield func(*Segment) bool) bool {
	if n == nil {
		return true
	}
	if n.Kind == TextNode {
		return yield(n.Segment)
	}
	for _, c := range n.Children {
		if !c.leaves(yield) {
			return false
		}
	}
	return true
}

// String returns a bracketed representation of the tree, e.g.
//
//	bold{"Abracadabr" italic{"a"}} italic{" Open Sesa"}
//
// Clients must not rely on the format of the string.
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Node) format(b *strings.Builder) {
	switch n.Kind {
	case TextNode:
		if n.Segment.Mention != nil {
			b.WriteByte('@')
		}
		fmt.Fprintf(b, "%q", n.Segment.Text)
		return
	case StyleNode:
		b.WriteString(n.Style.String())
		if n.Hidden {
			b.WriteString("(hidden)")
		}
		b.WriteByte('{')
	case LinkNode:
		fmt.Fprintf(b, "link(%s){", n.Link.URL)
	}
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		c.format(b)
	}
	if n.Kind != RootNode {
		b.WriteByte('}')
	}
}
