package memo

import (
	"encoding/binary"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/amersulieman/msgbody"
	"github.com/cespare/xxhash/v2"
	"github.com/maypok86/otter/v2"
)

// DefaultCapacity is used for Composers created with a capacity ≤ 0.
const DefaultCapacity = 1024

// Composer composes message bodies and caches the results. It is safe for
// concurrent use.
type Composer struct {
	cache  *otter.Cache[string, *entry]
	hits   atomic.Uint64
	misses atomic.Uint64
}

type entry struct {
	res      *msgbody.Result
	expanded []bool // expansion state of res.Spoilers at composition time
}

// New creates a Composer holding at most capacity results.
func New(capacity int) *Composer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Composer{
		cache: otter.Must(&otter.Options[string, *entry]{
			MaximumSize:     capacity,
			InitialCapacity: min(capacity, 64),
		}),
	}
}

// Compose returns the composition of a message body, from cache if possible.
// messageID must not be empty. See msgbody.Compose for the other arguments.
//
// Results returned for a cache hit are shallow copies: segments, concealed
// segments and the tree are shared with every other caller and must not be
// modified. Only the expansion handler is bound to opts.
func (c *Composer) Compose(messageID, text string, ranges []msgbody.Range,
	opts *msgbody.Options) (*msgbody.Result, error) {
	//
	if messageID == "" {
		return nil, msgbody.ErrIllegalArguments
	}
	if opts == nil {
		opts = msgbody.DefaultOptions()
	}
	key := cacheKey(messageID, text, ranges, opts)
	if e, ok := c.cache.GetIfPresent(key); ok && e.valid(opts.Spoilers) {
		c.hits.Add(1)
		return e.res.WithExpandHandler(opts.OnExpandSpoiler), nil
	}
	c.misses.Add(1)
	res, err := msgbody.Compose(text, ranges, opts)
	if err != nil {
		return nil, err
	}
	e := &entry{res: res, expanded: make([]bool, len(res.Spoilers))}
	for i, id := range res.Spoilers {
		e.expanded[i] = opts.Spoilers != nil && opts.Spoilers.IsExpanded(id)
	}
	c.cache.Set(key, e)
	tracer().Debugf("memo: cached composition of message %s", messageID)
	return res, nil
}

func (e *entry) valid(state msgbody.ExpansionState) bool {
	for i, id := range e.res.Spoilers {
		if e.expanded[i] != (state != nil && state.IsExpanded(id)) {
			return false
		}
	}
	return true
}

// Invalidate drops all cached results for a message.
func (c *Composer) Invalidate(messageID string) {
	prefix := messageID + keySeparator
	var stale []string
	for key := range c.cache.All() {
		if strings.HasPrefix(key, prefix) {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		c.cache.Invalidate(key)
	}
	tracer().Debugf("memo: invalidated %d results of message %s", len(stale), messageID)
}

// Clear drops all cached results.
func (c *Composer) Clear() {
	c.cache.InvalidateAll()
}

// Stats returns the number of cache hits and misses so far.
func (c *Composer) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// --- Keys ------------------------------------------------------------------

const keySeparator = "\x00"

// cacheKey is the message ID, followed by a fingerprint of everything
// influencing a composition apart from the expansion state.
func cacheKey(messageID, text string, ranges []msgbody.Range, opts *msgbody.Options) string {
	d := xxhash.New()
	var buf []byte
	putInt := func(n int) {
		buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(n))
		d.Write(buf)
	}
	putString := func(s string) {
		putInt(len(s))
		d.WriteString(s)
	}
	putString(text)
	for _, rng := range ranges {
		switch r := rng.(type) {
		case msgbody.StyleRange:
			putInt(1)
			putInt(r.Start)
			putInt(r.Length)
			putInt(int(r.Style))
		case msgbody.MentionRange:
			putInt(2)
			putInt(r.Start)
			putInt(r.Length)
			putString(r.MentionID)
			putString(r.ConversationID)
			putString(r.DisplayText)
		default:
			putInt(0)
		}
	}
	flags := 0
	if opts.DisableLinks {
		flags |= 1
	}
	if opts.DisableJumbomoji {
		flags |= 2
	}
	if opts.TextPending {
		flags |= 4
	}
	putInt(flags)
	putString(opts.UnknownContact)
	putString(opts.SpoilerPlaceholder)
	putString(opts.PendingMarker)
	return messageID + keySeparator + strconv.FormatUint(d.Sum64(), 16)
}
