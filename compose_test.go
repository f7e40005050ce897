package msgbody

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/amersulieman/msgbody/detect"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestComposeOverlappingStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	res, err := Compose("Abracadabra Open Sesame", []Range{
		StyleRange{Start: 0, Length: 11, Style: Bold},
		StyleRange{Start: 10, Length: 10, Style: Italic},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Segments) != 4 {
		t.Fatalf("expected 4 segments, got %v", res.Segments)
	}
	seg := res.Segments[1]
	if seg.Start != 10 || seg.Length != 1 || seg.Styles != StylesOf(Bold, Italic) {
		t.Errorf("expected segment 10+1 with bold+italic, got %v", seg)
	}
	expected := `bold{"Abracadabr" italic{"a"}} italic{" Open Ses"} "ame"`
	if tree := res.Tree.String(); tree != expected {
		t.Errorf("expected tree %s, got %s", expected, tree)
	}
}

func TestComposeMentionShift(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	display := "Bender B Rodriguez 🤖"
	res, err := Compose("Like \uFFFC once said", []Range{
		MentionRange{Start: 5, Length: 1, MentionID: "0ca40892", DisplayText: display},
		StyleRange{Start: 5, Length: 1, Style: Bold},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "Like Bender B Rodriguez 🤖 once said" {
		t.Errorf("unexpected text %q", res.Text)
	}
	if len(res.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %v", res.Segments)
	}
	m := res.Segments[1]
	if m.Mention == nil || m.Mention.ID != "0ca40892" || !m.Mention.Resolved {
		t.Errorf("expected resolved mention, got %v", m)
	}
	if !m.Styles.Contains(Bold) {
		t.Errorf("expected mention to inherit bold, got %v", m.Styles)
	}
	shift := utf8.RuneCountInString(display) - 1
	if rest := res.Segments[2]; rest.Start != 6+shift || rest.Source.Start != 6 {
		t.Errorf("expected trailing text shifted by %d, got %v", shift, rest)
	}
	if res.Jumbo != detect.NoJumbo {
		t.Errorf("expected no jumbo tier, got %s", res.Jumbo)
	}
}

func TestComposeMentionFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	ranges := []Range{
		MentionRange{Start: 0, Length: 1, MentionID: "known"},
		MentionRange{Start: 2, Length: 1, MentionID: "stranger"},
	}
	opts := DefaultOptions()
	opts.MentionResolver = MentionResolverFunc(func(id string) (string, bool) {
		if id == "known" {
			return "Leela", true
		}
		return "", false
	})
	res, err := Compose("\uFFFC \uFFFC", ranges, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "Leela Unknown" {
		t.Errorf("unexpected text %q", res.Text)
	}
	if res.Segments[2].Mention.Resolved {
		t.Errorf("expected second mention to be unresolved")
	}
	opts.UnknownContact = "Somebody"
	res, _ = Compose("\uFFFC \uFFFC", ranges, opts)
	if res.Text != "Leela Somebody" {
		t.Errorf("unexpected text %q", res.Text)
	}
}

func TestComposeOverlappingMentions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	res, err := Compose("hi XYZ there", []Range{
		MentionRange{Start: 3, Length: 3, MentionID: "a", DisplayText: "Zed"},
		MentionRange{Start: 4, Length: 1, MentionID: "b", DisplayText: "Amy"},
		StyleRange{Start: 4, Length: 5, Style: Bold},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// bold snaps outward to the start of the mention
	expected := `"hi " bold{@"Zed" " th"} "ere"`
	if tree := res.Tree.String(); tree != expected {
		t.Errorf("expected tree %s, got %s", expected, tree)
	}
}

func TestComposeSpoiler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	text := "abc secret def"
	ranges := []Range{
		StyleRange{Start: 4, Length: 6, Style: Spoiler},
		StyleRange{Start: 6, Length: 2, Style: Bold},
	}
	var requested []SpoilerID
	opts := DefaultOptions()
	opts.OnExpandSpoiler = func(id SpoilerID) { requested = append(requested, id) }
	res, err := Compose(text, ranges, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "abc ▒▒▒▒ def" {
		t.Errorf("expected spoiler to be hidden, text is %q", res.Text)
	}
	if expected := `"abc " spoiler(hidden){"▒▒▒▒"} " def"`; res.Tree.String() != expected {
		t.Errorf("expected tree %s, got %s", expected, res.Tree)
	}
	if res.PlainText() != text {
		t.Errorf("expected plain text to reveal spoiler, is %q", res.PlainText())
	}
	hidden := res.Segments[1]
	if !hidden.SpoilerHidden || len(hidden.Concealed) != 3 || hidden.Source != (Span{4, 6}) {
		t.Errorf("unexpected placeholder %v", hidden)
	}
	if len(res.Spoilers) != 1 || res.Spoilers[0] != (SpoilerID{Start: 4, Length: 6}) {
		t.Fatalf("unexpected spoiler regions %v", res.Spoilers)
	}
	res.ExpandSpoiler(SpoilerID{Start: 99, Length: 1})
	res.ExpandSpoiler(res.Spoilers[0])
	if len(requested) != 1 || requested[0] != res.Spoilers[0] {
		t.Fatalf("expected one expansion request, got %v", requested)
	}
	//
	opts.Spoilers = Expansion{requested[0]: true}
	res, err = Compose(text, ranges, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != text {
		t.Errorf("expected spoiler to be revealed, text is %q", res.Text)
	}
	if expected := `"abc " spoiler{"se" bold{"cr"} "et"} " def"`; res.Tree.String() != expected {
		t.Errorf("expected tree %s, got %s", expected, res.Tree)
	}
	for _, seg := range res.Segments[1:4] {
		if !seg.Styles.Contains(Spoiler) || seg.Spoiler == nil || *seg.Spoiler != requested[0] {
			t.Errorf("expected revealed segment to keep its spoiler, got %v", seg)
		}
	}
	// None cancels the Spoiler style, but the region stays hidden as a whole
	ranges = []Range{
		StyleRange{Start: 4, Length: 6, Style: Spoiler},
		StyleRange{Start: 6, Length: 2, Style: None},
	}
	res, err = Compose(text, ranges, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "abc ▒▒▒▒ def" {
		t.Errorf("expected cancelled spoiler to be hidden completely, text is %q", res.Text)
	}
	if expected := `"abc " spoiler(hidden){"▒▒▒▒"} " def"`; res.Tree.String() != expected {
		t.Errorf("expected tree %s, got %s", expected, res.Tree)
	}
	if len(res.Segments) != 3 || len(res.Segments[1].Concealed) != 3 {
		t.Fatalf("expected one placeholder concealing 3 segments, got %v", res.Segments)
	}
	if res.Segments[1].Concealed[1].Styles.Contains(Spoiler) {
		t.Errorf("expected concealed segment to carry the cancelled style set, got %v",
			res.Segments[1].Concealed[1])
	}
	if res.PlainText() != text {
		t.Errorf("expected plain text to reveal spoiler, is %q", res.PlainText())
	}
}

func TestComposeSpoilerWidenedByMention(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	text := "hi @bob ok"
	ranges := []Range{
		MentionRange{Start: 3, Length: 4, MentionID: "bob", DisplayText: "Bob"},
		StyleRange{Start: 5, Length: 5, Style: Spoiler},
	}
	res, err := Compose(text, ranges, nil)
	if err != nil {
		t.Fatal(err)
	}
	id := SpoilerID{Start: 3, Length: 7}
	if len(res.Spoilers) != 1 || res.Spoilers[0] != id {
		t.Fatalf("expected spoiler to be widened to %v, got %v", id, res.Spoilers)
	}
	res, _ = Compose(text, ranges, &Options{Spoilers: Expansion{{Start: 5, Length: 5}: true}})
	if res.Text != "hi ▒▒▒▒" {
		t.Errorf("expected declared position not to reveal the spoiler, text is %q", res.Text)
	}
	res, _ = Compose(text, ranges, &Options{Spoilers: Expansion{id: true}})
	if res.Text != "hi Bob ok" {
		t.Errorf("expected widened spoiler to be revealed, text is %q", res.Text)
	}
}

func TestComposeAdjacentSpoilers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	res, err := Compose("onetwo", []Range{
		StyleRange{Start: 0, Length: 3, Style: Spoiler},
		StyleRange{Start: 3, Length: 3, Style: Spoiler},
	}, &Options{Spoilers: Expansion{{Start: 3, Length: 3}: true}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Spoilers) != 2 {
		t.Fatalf("expected two spoiler regions, got %v", res.Spoilers)
	}
	if expected := `spoiler(hidden){"▒▒▒▒"} spoiler{"two"}`; res.Tree.String() != expected {
		t.Errorf("expected tree %s, got %s", expected, res.Tree)
	}
	res, _ = Compose("onetwo", []Range{
		StyleRange{Start: 0, Length: 4, Style: Spoiler},
		StyleRange{Start: 3, Length: 3, Style: Spoiler},
	}, nil)
	if len(res.Spoilers) != 1 || res.Spoilers[0] != (SpoilerID{Start: 0, Length: 6}) {
		t.Errorf("expected overlapping spoilers to coalesce, got %v", res.Spoilers)
	}
	if res.Text != "▒▒▒▒" {
		t.Errorf("expected a single placeholder, text is %q", res.Text)
	}
}

func TestComposeNone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	text := "bold but plain here"
	for _, test := range []struct {
		ranges   []Range
		expected string
	}{
		{ // None inside bold cancels
			[]Range{StyleRange{0, 19, Bold}, StyleRange{5, 3, None}},
			`bold{"bold "} "but" bold{" plain here"}`,
		},
		{ // bold inside None survives
			[]Range{StyleRange{0, 19, None}, StyleRange{5, 3, Bold}},
			`"bold " bold{"but"} " plain here"`,
		},
		{ // equal spans: later declaration wins
			[]Range{StyleRange{0, 4, Bold}, StyleRange{0, 4, None}},
			`"bold but plain here"`,
		},
		{
			[]Range{StyleRange{0, 4, None}, StyleRange{0, 4, Bold}},
			`bold{"bold"} " but plain here"`,
		},
		{ // None cancels only what it is more specific than
			[]Range{StyleRange{0, 19, Bold}, StyleRange{0, 14, None}, StyleRange{5, 3, Italic}},
			`"bold " italic{"but"} " plain" bold{" here"}`,
		},
	} {
		res, err := Compose(text, test.ranges, nil)
		if err != nil {
			t.Fatal(err)
		}
		if res.Tree.String() != test.expected {
			t.Errorf("ranges %v: expected %s, got %s", test.ranges, test.expected, res.Tree)
		}
	}
}

func TestComposeLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	ranges := []Range{StyleRange{Start: 0, Length: 14, Style: Italic}}
	res, err := Compose("see signal.org", ranges, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %v", res.Segments)
	}
	link := res.Segments[1].Link
	if link == nil || link.URL != "https://signal.org" || link.Source != (Span{4, 10}) {
		t.Errorf("unexpected link %+v", link)
	}
	if expected := `italic{"see " link(https://signal.org){"signal.org"}}`; res.Tree.String() != expected {
		t.Errorf("expected tree %s, got %s", expected, res.Tree)
	}
	res, err = Compose("see signal.org", ranges, &Options{DisableLinks: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Segments) != 1 || res.Segments[0].Link != nil {
		t.Errorf("expected links to be disabled, got %v", res.Segments)
	}
}

func TestComposeJumbo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	res, err := Compose("😀😀😀", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Jumbo != detect.Large {
		t.Errorf("expected jumbo tier large, got %s", res.Jumbo)
	}
	res, _ = Compose("😀😀😀", nil, &Options{DisableJumbomoji: true})
	if res.Jumbo != detect.NoJumbo {
		t.Errorf("expected jumbo emoji to be disabled, got %s", res.Jumbo)
	}
}

func TestComposePending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	text := "Check out https://www.signal.org"
	opts := DefaultOptions()
	opts.TextPending = true
	res, err := Compose(text, nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pending || res.Text != text+DefaultPendingMarker {
		t.Errorf("expected pending marker to be appended, text is %q", res.Text)
	}
	last := res.Segments[len(res.Segments)-1]
	if !last.Pending || last.Source != (Span{Start: 32}) || last.Start != 32 || last.Link != nil {
		t.Errorf("unexpected pending segment %v", last)
	}
	if expected := `"Check out " link(https://www.signal.org){"https://www.signal.org"} "…"`; res.Tree.String() != expected {
		t.Errorf("expected tree %s, got %s", expected, res.Tree)
	}
	if res.PlainText() != text {
		t.Errorf("expected plain text without pending marker, is %q", res.PlainText())
	}
	res, _ = Compose("", nil, &Options{TextPending: true, PendingMarker: "..."})
	if res.Text != "..." || len(res.Segments) != 1 {
		t.Errorf("expected marker only for empty pending body, got %v", res.Segments)
	}
	res, _ = Compose(text, nil, nil)
	if res.Pending || res.Segments[len(res.Segments)-1].Pending {
		t.Errorf("expected no pending marker by default")
	}
}

func TestComposeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	if _, err := Compose("\xff", nil, nil); !errors.Is(err, ErrInvalidText) {
		t.Errorf("expected ErrInvalidText, got %v", err)
	}
	_, err := Compose("abc", []Range{StyleRange{Start: 0, Length: 1, Style: Style(42)}}, nil)
	if !errors.Is(err, ErrIllegalStyle) {
		t.Errorf("expected ErrIllegalStyle, got %v", err)
	}
	if _, err = Compose("abc", nil, &Options{SpoilerPlaceholder: "\xfe"}); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected ErrIllegalArguments, got %v", err)
	}
	res, err := Compose("", []Range{StyleRange{Start: 0, Length: 3, Style: Bold}}, nil)
	if err != nil || len(res.Segments) != 0 || res.Text != "" {
		t.Errorf("expected empty result for empty text, got %v, %v", res, err)
	}
	if res.Jumbo != detect.NoJumbo {
		t.Errorf("expected empty text not to be jumbo, got %s", res.Jumbo)
	}
	long := strings.Repeat("hello world ", 6000)
	res, err = Compose(long, []Range{StyleRange{Start: 0, Length: 5, Style: Bold}}, nil)
	if err != nil || res.Text != long || res.Jumbo != detect.NoJumbo || len(res.Segments) != 2 {
		t.Errorf("expected long text to compose, got %d segments, %v", len(res.Segments), err)
	}
}

func TestComposeMalformedRanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	res, err := Compose("hello", []Range{
		nil,
		StyleRange{Start: -2, Length: 4, Style: Bold}, // clipped to 0+2
		StyleRange{Start: 3, Length: 0, Style: Italic},
		StyleRange{Start: 5, Length: 2, Style: Italic},
		StyleRange{Start: 4, Length: 10, Style: Monospace}, // clipped to 4+1
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if expected := `bold{"he"} "ll" monospace{"o"}`; res.Tree.String() != expected {
		t.Errorf("expected tree %s, got %s", expected, res.Tree)
	}
}

func TestComposeProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "msgbody")
	defer teardown()
	//
	text := "Good news, everyone! \uFFFC built a www.smell-o-scope.com 🔭"
	n := utf8.RuneCountInString(text)
	rnd := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		ranges := []Range{MentionRange{Start: 21, Length: 1, MentionID: "farnsworth"}}
		for i := 0; i < 8; i++ {
			ranges = append(ranges, StyleRange{
				Start:  rnd.IntN(n+4) - 2,
				Length: rnd.IntN(n/2) - 1,
				Style:  Style(rnd.IntN(int(styleCount))),
			})
		}
		res, err := Compose(text, ranges, &Options{Spoilers: ExpandAll})
		if err != nil {
			t.Fatal(err)
		}
		pos, src := 0, 0
		for _, seg := range res.Segments {
			if seg.Start != pos || seg.Source.Start != src {
				t.Fatalf("round %d: segments not contiguous at %v", round, seg)
			}
			if seg.Length <= 0 || utf8.RuneCountInString(seg.Text) != seg.Length {
				t.Fatalf("round %d: bad segment length %v", round, seg)
			}
			pos, src = seg.End(), seg.Source.End()
		}
		if pos != utf8.RuneCountInString(res.Text) || src != n {
			t.Fatalf("round %d: segments cover %d/%d runes, expected %d/%d", round,
				pos, src, utf8.RuneCountInString(res.Text), n)
		}
		again, _ := Compose(text, ranges, &Options{Spoilers: ExpandAll})
		if !reflect.DeepEqual(res.Segments, again.Segments) || res.Tree.String() != again.Tree.String() {
			t.Fatalf("round %d: composition is not deterministic", round)
		}
		gated, _ := Compose(text, ranges, nil)
		if gated.PlainText() != res.Text {
			t.Fatalf("round %d: hidden spoilers do not restore the text", round)
		}
		placeholders := make(map[SpoilerID]int)
		for _, seg := range gated.Segments {
			if seg.SpoilerHidden {
				placeholders[*seg.Spoiler]++
			}
		}
		for _, id := range gated.Spoilers {
			if placeholders[id] != 1 {
				t.Fatalf("round %d: %v hidden by %d placeholders", round, id, placeholders[id])
			}
		}
	}
}
