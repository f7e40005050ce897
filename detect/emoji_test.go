package detect

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEmojiClusters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	for cluster, expected := range map[string]bool{
		"\U0001F600":                                 true,
		"\U0001F916":                                 true,
		"\u2764\uFE0F":                               true,
		"\u2764":                                     false,
		"\u231A\uFE0E":                               false,
		"1\uFE0F\u20E3":                              true,
		"#\u20E3":                                    true,
		"1":                                          false,
		"\U0001F1E9\U0001F1EA":                       true,
		"\U0001F468\u200D\U0001F469\u200D\U0001F467": true,
		"\U0001F44D\U0001F3FD":                       true,
		"a":                                          false,
		" ":                                          false,
		"\uFFFC":                                     false,
	} {
		if IsEmojiCluster(cluster) != expected {
			t.Errorf("expected IsEmojiCluster(%q) = %v", cluster, expected)
		}
	}
}

func TestJumboTiers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	tiers := []JumboTier{NoJumbo, ExtraLarge, ExtraLarge, Large, Large, Medium, Medium,
		Small, Small, NoJumbo}
	for n, expected := range tiers {
		text := strings.Repeat("😀", n)
		if tier := Jumbo(text); tier != expected {
			t.Errorf("%d emoji: expected tier %s, is %s", n, expected, tier)
		}
	}
}

func TestJumboIgnorables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	if tier := Jumbo(" 😀 \n 🤖 "); tier != ExtraLarge {
		t.Errorf("expected whitespace to be ignored, tier is %s", tier)
	}
	if tier := Jumbo("😀\uFFFC"); tier != ExtraLarge {
		t.Errorf("expected placeholder to be ignored, tier is %s", tier)
	}
	if tier := Jumbo("hi 😀"); tier != NoJumbo {
		t.Errorf("expected text to disable jumbo, tier is %s", tier)
	}
	if tier := Jumbo("   "); tier != NoJumbo {
		t.Errorf("expected whitespace-only body not to be jumbo, tier is %s", tier)
	}
}

func TestJumboLongBodies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	if tier := Jumbo(""); tier != NoJumbo {
		t.Errorf("expected empty body not to be jumbo, tier is %s", tier)
	}
	if gs := Graphemes(""); gs != nil {
		t.Errorf("expected no clusters for empty text, got %v", gs)
	}
	long := strings.Repeat("hello world ", 6000)
	if tier := Jumbo(long); tier != NoJumbo {
		t.Errorf("expected long text not to be jumbo, tier is %s", tier)
	}
	emoji := strings.Repeat("\U0001F600", 20000)
	if tier := Jumbo(emoji); tier != NoJumbo {
		t.Errorf("expected many emoji not to be jumbo, tier is %s", tier)
	}
	if count, only := CountEmoji(emoji); count != 20000 || !only {
		t.Errorf("expected 20000 emoji only, got %d, %v", count, only)
	}
	if gs := Graphemes("a\U0001F44D\U0001F3FDb"); len(gs) != 3 {
		t.Errorf("expected 3 clusters, got %q", gs)
	}
}
