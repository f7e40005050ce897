package msgbody

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestStyleSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	set := StylesOf(Italic, Bold, None)
	if !set.Contains(Bold) || !set.Contains(Italic) || set.Contains(Spoiler) {
		t.Errorf("unexpected style set %s", set)
	}
	if set.Contains(None) {
		t.Errorf("style set must never contain None")
	}
	if set.String() != "bold+italic" {
		t.Errorf("expected styles in precedence order, got %s", set)
	}
	set = set.Add(Spoiler).Minus(Italic)
	if set.String() != "spoiler+bold" {
		t.Errorf("expected spoiler+bold, got %s", set)
	}
	if !StyleSet(0).IsEmpty() || StyleSet(0).String() != "plain" {
		t.Errorf("expected empty set to be plain")
	}
}

func TestStyleNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	for s, name := range map[Style]string{
		None:          "none",
		Strikethrough: "strikethrough",
		Monospace:     "monospace",
		Style(42):     "Style(42)",
	} {
		if s.String() != name {
			t.Errorf("expected style name %q, got %q", name, s.String())
		}
	}
	if Style(42).valid() {
		t.Errorf("style 42 must not be valid")
	}
}
