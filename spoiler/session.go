package spoiler

import (
	"context"
	"maps"
	"sync"

	"github.com/amersulieman/msgbody"
	"github.com/guiguan/caster"
)

// Event is broadcast to subscribers whenever a spoiler is revealed.
type Event struct {
	ID  msgbody.SpoilerID // the revealed spoiler, if All is false
	All bool              // every spoiler has been revealed
}

// Session holds the expansion state of spoilers for a rendering surface,
// e.g. a conversation view. It is safe for concurrent use.
//
// Session implements msgbody.ExpansionState.
type Session struct {
	mu       sync.RWMutex
	expanded map[msgbody.SpoilerID]bool
	all      bool
	cast     *caster.Caster                       // broadcaster for expansion events
	subs     map[<-chan Event]context.CancelFunc // typed channel -> end of subscription
	closed   bool
}

var _ msgbody.ExpansionState = (*Session)(nil)

// NewSession creates a session with every spoiler hidden. If ctx is done,
// the session stops broadcasting events.
func NewSession(ctx context.Context) *Session {
	return &Session{
		expanded: make(map[msgbody.SpoilerID]bool),
		cast:     caster.New(ctx),
		subs:     make(map[<-chan Event]context.CancelFunc),
	}
}

// IsExpanded is part of interface msgbody.ExpansionState.
func (s *Session) IsExpanded(id msgbody.SpoilerID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all || s.expanded[id]
}

// Expand reveals a spoiler. It returns false if the spoiler already has
// been revealed. Subscribers are notified of new expansions only.
func (s *Session) Expand(id msgbody.SpoilerID) bool {
	s.mu.Lock()
	if s.all || s.expanded[id] {
		s.mu.Unlock()
		return false
	}
	s.expanded[id] = true
	s.mu.Unlock()
	tracer().Debugf("spoiler: expanding %v", id)
	s.publish(Event{ID: id})
	return true
}

// ExpandAll reveals every spoiler, including spoilers of bodies which are
// composed later.
func (s *Session) ExpandAll() {
	s.mu.Lock()
	if s.all {
		s.mu.Unlock()
		return
	}
	s.all = true
	s.mu.Unlock()
	tracer().Debugf("spoiler: expanding all spoilers")
	s.publish(Event{All: true})
}

func (s *Session) publish(ev Event) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return
	}
	// subscribers which do not keep up miss events and never block expansion
	if !s.cast.TryPub(ev) {
		tracer().Infof("spoiler: session is no longer broadcasting")
	}
}

// Snapshot returns a copy of the spoilers which have been revealed one by one.
// Use State to include the effect of ExpandAll.
func (s *Session) Snapshot() msgbody.Expansion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.expanded)
}

// State returns an immutable copy of the current expansion state, suitable
// for compositions which must not observe later expansions.
func (s *Session) State() msgbody.ExpansionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.all {
		return msgbody.ExpandAll
	}
	return maps.Clone(msgbody.Expansion(s.expanded))
}

// Handler returns a function suitable for msgbody.Options.OnExpandSpoiler.
func (s *Session) Handler() func(msgbody.SpoilerID) {
	return func(id msgbody.SpoilerID) {
		s.Expand(id)
	}
}

// Subscribe returns a channel receiving expansion events. The channel is
// closed when ctx is done, on Unsubscribe and on Close. Events are dropped
// for subscribers which do not keep up. Subscribe returns false if the
// session is closed.
func (s *Session) Subscribe(ctx context.Context) (<-chan Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	subctx, cancel := context.WithCancel(ctx)
	sub, ok := s.cast.Sub(subctx, 8)
	if !ok {
		cancel()
		return nil, false
	}
	events := make(chan Event, 8)
	s.subs[events] = cancel
	go func() {
		defer close(events)
		defer s.forget(events)
		for {
			select {
			case <-subctx.Done():
				return
			case m, ok := <-sub:
				if !ok {
					return
				}
				ev, isEvent := m.(Event)
				assert(isEvent, "spoiler session broadcast a foreign message")
				select {
				case events <- ev:
				case <-subctx.Done():
					return
				}
			}
		}
	}()
	return events, true
}

// Unsubscribe cancels a subscription. The event channel will be closed.
func (s *Session) Unsubscribe(events <-chan Event) {
	s.forget(events)
}

// forget ends a subscription. The caster drops the subscription as soon as it
// sees its context done.
func (s *Session) forget(events <-chan Event) {
	s.mu.Lock()
	cancel, ok := s.subs[events]
	delete(s.subs, events)
	s.mu.Unlock()
	if ok {
		cancel()
	}
}

// Close stops broadcasting and closes all subscriptions. The expansion state
// remains readable.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancels := make([]context.CancelFunc, 0, len(s.subs))
	for _, cancel := range s.subs {
		cancels = append(cancels, cancel)
	}
	clear(s.subs)
	s.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
	s.cast.Close()
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
