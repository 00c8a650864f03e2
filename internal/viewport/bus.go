package viewport

import "sort"

// EventKind identifies a viewport event an overlay can listen to.
type EventKind int

const (
	EventClick      EventKind = iota // primary click anywhere on screen
	EventResize                      // terminal resized
	EventScroll                      // any scrollable region moved
	EventAnchorSize                  // an anchor changed size without a resize
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventClick:
		return "click"
	case EventResize:
		return "resize"
	case EventScroll:
		return "scroll"
	case EventAnchorSize:
		return "anchor-size"
	default:
		return "unknown"
	}
}

// ListenerKinds are the events an open overlay registers for directly.
// Anchor size changes go through a SizeObserver instead.
var ListenerKinds = []EventKind{EventClick, EventResize, EventScroll}

// Event is a viewport event delivered to subscribed owners.
type Event struct {
	Kind EventKind
	X, Y int // pointer position for EventClick
	W, H int // new screen size for EventResize
}

type subscriber struct {
	owner string
	kind  EventKind
}

// Bus tracks which owners listen to which viewport events. It is driven
// from a single event loop and is not safe for concurrent use.
type Bus struct {
	next uint64
	subs map[uint64]subscriber
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]subscriber)}
}

// Subscription is the handle for one registration. The zero value is an
// inactive handle; releasing it is a no-op.
type Subscription struct {
	bus *Bus
	id  uint64
}

// Subscribe registers owner for kind. A nil bus returns an inactive handle.
func (b *Bus) Subscribe(owner string, kind EventKind) Subscription {
	if b == nil {
		return Subscription{}
	}
	if b.subs == nil {
		b.subs = make(map[uint64]subscriber)
	}
	b.next++
	b.subs[b.next] = subscriber{owner: owner, kind: kind}
	return Subscription{bus: b, id: b.next}
}

// Release unregisters the handle. Releasing twice is safe.
func (s Subscription) Release() {
	if s.bus == nil {
		return
	}
	delete(s.bus.subs, s.id)
}

// Active reports whether the handle is still registered.
func (s Subscription) Active() bool {
	if s.bus == nil {
		return false
	}
	_, ok := s.bus.subs[s.id]
	return ok
}

// Owners returns the owners listening to kind in registration order.
func (b *Bus) Owners(kind EventKind) []string {
	if b == nil {
		return nil
	}
	ids := make([]uint64, 0, len(b.subs))
	for id, sub := range b.subs {
		if sub.kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	owners := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		o := b.subs[id].owner
		if !seen[o] {
			seen[o] = true
			owners = append(owners, o)
		}
	}
	return owners
}

// Subscribed reports whether owner listens to kind.
func (b *Bus) Subscribed(owner string, kind EventKind) bool {
	if b == nil {
		return false
	}
	for _, sub := range b.subs {
		if sub.owner == owner && sub.kind == kind {
			return true
		}
	}
	return false
}

// Count returns the number of live registrations held by owner.
func (b *Bus) Count(owner string) int {
	if b == nil {
		return 0
	}
	n := 0
	for _, sub := range b.subs {
		if sub.owner == owner {
			n++
		}
	}
	return n
}

// Len returns the number of live registrations.
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	return len(b.subs)
}
