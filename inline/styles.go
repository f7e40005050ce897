package inline

import (
	"strings"

	"github.com/amersulieman/msgbody"
	"golang.org/x/net/html"
)

// StyleFromHTML returns the style an element applies to its content. Elements
// not carrying a style return false.
//
//	<b> <strong>                     Bold
//	<i> <em>                         Italic
//	<s> <del> <strike>               Strikethrough
//	<code> <tt>                      Monospace
//	<spoiler> <span class="spoiler"> Spoiler
//	<span class="plain">             None
func StyleFromHTML(n *html.Node) (msgbody.Style, bool) {
	if n == nil || n.Type != html.ElementNode {
		return msgbody.None, false
	}
	switch n.Data {
	case "b", "strong":
		return msgbody.Bold, true
	case "i", "em":
		return msgbody.Italic, true
	case "s", "del", "strike":
		return msgbody.Strikethrough, true
	case "code", "tt":
		return msgbody.Monospace, true
	case "spoiler":
		return msgbody.Spoiler, true
	case "span":
		for _, class := range strings.Fields(attr(n, "class")) {
			switch class {
			case "spoiler":
				return msgbody.Spoiler, true
			case "plain":
				return msgbody.None, true
			}
		}
	}
	return msgbody.None, false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
