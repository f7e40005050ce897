package detect

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
)

// JumboTier is the display size class of an emoji-only message body.
type JumboTier uint8

// Jumbo tiers, from no enlargement to the largest one
const (
	NoJumbo JumboTier = iota
	Small
	Medium
	Large
	ExtraLarge
)

func (t JumboTier) String() string {
	switch t {
	case NoJumbo:
		return "none"
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	case ExtraLarge:
		return "extra-large"
	}
	return fmt.Sprintf("JumboTier(%d)", t)
}

// MaxJumboEmoji is the largest number of emoji a body may contain to be
// displayed enlarged.
const MaxJumboEmoji = 8

var setupGraphemes sync.Once

// clusters iterates over the extended grapheme clusters of text. Clusters are
// produced by a segmenter, so text is not limited in size.
func clusters(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		setupGraphemes.Do(grapheme.SetupGraphemeClasses)
		segmenter := segment.NewSegmenter(grapheme.NewBreaker(1))
		segmenter.Init(strings.NewReader(text))
		for segmenter.Next() {
			if !yield(segmenter.Text()) {
				return
			}
		}
		if err := segmenter.Err(); err != nil {
			tracer().Errorf("detect: grapheme segmenter: %v", err)
		}
	}
}

// Graphemes splits text into extended grapheme clusters. It returns nil for
// an empty text.
func Graphemes(text string) []string {
	var gs []string
	for cluster := range clusters(text) {
		gs = append(gs, cluster)
	}
	return gs
}

// CountEmoji returns the number of emoji clusters of text and whether text
// consists of emoji only, apart from whitespace and mention placeholders.
func CountEmoji(text string) (count int, only bool) {
	only = true
	for cluster := range clusters(text) {
		switch {
		case IsEmojiCluster(cluster):
			count++
		case isIgnorable(cluster):
		default:
			only = false
		}
	}
	return count, only
}

// Jumbo classifies a text body by its emoji content. Bodies consisting of
// one to MaxJumboEmoji emoji and nothing else but whitespace are enlarged;
// fewer emoji get bigger tiers. Classification stops at the first cluster
// disqualifying the body.
func Jumbo(text string) JumboTier {
	count := 0
	for cluster := range clusters(text) {
		switch {
		case IsEmojiCluster(cluster):
			if count++; count > MaxJumboEmoji {
				return NoJumbo
			}
		case isIgnorable(cluster):
		default:
			return NoJumbo
		}
	}
	if count == 0 {
		return NoJumbo
	}
	tier := ExtraLarge - JumboTier((count-1)/2)
	tracer().Debugf("detect: %d emoji, jumbo tier %s", count, tier)
	return tier
}
