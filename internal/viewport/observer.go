package viewport

// SizeObserver notifies an owner when its anchor changes size independently
// of a terminal resize.
type SizeObserver interface {
	// Observe starts observation for owner. The returned handle stops it.
	Observe(owner string) Subscription
	// Supported reports whether observations are ever delivered.
	Supported() bool
}

// BusObserver delivers anchor size changes as EventAnchorSize on a Bus.
type BusObserver struct {
	Bus *Bus
}

// Observe subscribes owner to EventAnchorSize.
func (o BusObserver) Observe(owner string) Subscription {
	return o.Bus.Subscribe(owner, EventAnchorSize)
}

// Supported reports true when a bus is attached.
func (o BusObserver) Supported() bool { return o.Bus != nil }

// NoopObserver is used when the host cannot detect anchor reflow.
type NoopObserver struct{}

// Observe returns an inactive handle.
func (NoopObserver) Observe(string) Subscription { return Subscription{} }

// Supported always reports false.
func (NoopObserver) Supported() bool { return false }

// NewObserver picks the observer for the host's capability.
func NewObserver(bus *Bus, supported bool) SizeObserver {
	if !supported || bus == nil {
		return NoopObserver{}
	}
	return BusObserver{Bus: bus}
}

// Tracker remembers the last anchor size per owner so a layout pass can
// tell which anchors reflowed.
type Tracker struct {
	sizes map[string]Size
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{sizes: make(map[string]Size)}
}

// Record stores the size of owner's anchor and reports whether it differs
// from the previously recorded size. The first record never reports a
// change.
func (t *Tracker) Record(owner string, r Rect) bool {
	if t.sizes == nil {
		t.sizes = make(map[string]Size)
	}
	next := Size{W: r.W, H: r.H}
	prev, ok := t.sizes[owner]
	t.sizes[owner] = next
	return ok && prev != next
}

// Forget drops owner from the tracker.
func (t *Tracker) Forget(owner string) {
	delete(t.sizes, owner)
}
