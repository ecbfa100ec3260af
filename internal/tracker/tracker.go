package tracker

// Cue identifies the sound a document event asks for.
type Cue int

const (
	// CueNone means the event does not play anything.
	CueNone Cue = iota
	// CueMetal is played when a new document becomes visible.
	CueMetal
	// CueGlass is played when the visible-editor count drops.
	CueGlass
)

// String returns the cue name used in logs and on the command line.
func (c Cue) String() string {
	switch c {
	case CueMetal:
		return "metal"
	case CueGlass:
		return "glass"
	default:
		return "none"
	}
}

// ParseCue parses a cue name as printed by String.
func ParseCue(name string) (Cue, bool) {
	switch name {
	case "metal":
		return CueMetal, true
	case "glass":
		return CueGlass, true
	default:
		return CueNone, false
	}
}

// Snapshot is what the editor reports alongside an open or close event.
type Snapshot struct {
	Visible      []string `json:"visible"`       // identifiers of visible document editors
	VisibleCount int      `json:"visible_count"` // host-reported visible-editor count
	Known        []string `json:"known"`         // every document the host still holds
}

// Opened adds the visible identifiers to tracked and asks for the metal cue
// when at least one of them was not tracked before. tracked is not modified.
func Opened(tracked Set, visible []string) (Set, Cue) {
	next := tracked.Clone()
	for _, id := range visible {
		next.Add(id)
	}
	if next.Len() > tracked.Len() {
		return next, CueMetal
	}
	return next, CueNone
}

// Closed asks for the glass cue when count is strictly below last. Any drop
// fires, not only the drop to zero. The returned set keeps only identifiers
// still present in known. tracked is not modified.
func Closed(tracked Set, last, count int, known []string) (Set, Cue) {
	cue := CueNone
	if count < last {
		cue = CueGlass
	}
	return tracked.Intersect(known), cue
}

// Tracker holds the per-activation state. It is not safe for concurrent use;
// editors deliver events serially.
type Tracker struct {
	tracked     Set
	lastVisible int
}

// New creates a tracker with an empty set, seeded with the visible count the
// editor reports at activation.
func New(initial Snapshot) *Tracker {
	return &Tracker{
		tracked:     make(Set),
		lastVisible: initial.VisibleCount,
	}
}

// Opened records a document-opened event and returns the cue to play.
// It also stores the visible count as the baseline for the next close.
func (t *Tracker) Opened(snap Snapshot) Cue {
	next, cue := Opened(t.tracked, snap.Visible)
	t.tracked = next
	t.lastVisible = snap.VisibleCount
	return cue
}

// Closed records a document-closed event and returns the cue to play.
// The visible count is stored on every call, whether or not a cue fires.
func (t *Tracker) Closed(snap Snapshot) Cue {
	next, cue := Closed(t.tracked, t.lastVisible, snap.VisibleCount, snap.Known)
	t.tracked = next
	t.lastVisible = snap.VisibleCount
	return cue
}

// Sync records the visible count of a layout change that was neither an
// open nor a close. It never fires a cue and leaves the set alone.
func (t *Tracker) Sync(snap Snapshot) {
	t.lastVisible = snap.VisibleCount
}

// Tracked returns the tracked identifiers in lexical order.
func (t *Tracker) Tracked() []string {
	return t.tracked.Sorted()
}

// LastVisible returns the last visible-editor count seen.
func (t *Tracker) LastVisible() int {
	return t.lastVisible
}
