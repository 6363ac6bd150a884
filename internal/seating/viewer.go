package seating

import (
	"sync"
	"time"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// Snapshot is the derived occupancy of one showtime.
type Snapshot struct {
	ShowtimeID string          `json:"showtimeId"`
	Seats      []model.Seat    `json:"seatLayout"`
	Statistics Statistics      `json:"statistics"`
	Bookings   []model.Booking `json:"bookings"`
	Conflicts  []SeatConflict  `json:"conflicts"`
}

// NewSnapshot reduces bookings to the booked set of showtimeID and expands it
// over the room geometry.
func NewSnapshot(showtimeID string, bookings []model.Booking, room model.Room, filter StatusFilter) (Snapshot, error) {
	layout, err := BuildRoom(room, BookedSeatsFor(bookings, showtimeID, filter))
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		ShowtimeID: showtimeID,
		Seats:      layout.Seats,
		Statistics: layout.Statistics,
		Bookings:   BookingsFor(bookings, showtimeID),
		Conflicts:  Conflicts(bookings, showtimeID),
	}, nil
}

// Ticket tags an in-flight snapshot computation with the showtime it targets
// and the bookings generation it reads.
type Ticket struct {
	ShowtimeID string
	Bookings   []model.Booking
	generation uint64
	seq        uint64
}

// Viewer holds the room-status state of one admin session: the fetched
// bookings, the selected showtime and the per-showtime snapshot cache.
// The cache lives until the bookings are replaced.  A computation committed
// after a newer selection, or after the bookings changed, never overwrites
// the current snapshot.
type Viewer struct {
	mu         sync.Mutex
	bookings   []model.Booking
	loaded     bool
	generation uint64
	seq        uint64
	selected   uint64 // seq of the current selection, 0 when none
	current    *Snapshot
	cache      map[string]Snapshot
	lastUsed   time.Time
	now        func() time.Time
}

// NewViewer returns an empty viewer.  now may be nil.
func NewViewer(now func() time.Time) *Viewer {
	if now == nil {
		now = time.Now
	}
	return &Viewer{cache: make(map[string]Snapshot), now: now, lastUsed: now()}
}

// Reset replaces the bookings after a refetch, invalidating every cached
// snapshot and the current one.
func (v *Viewer) Reset(bookings []model.Booking) {
	cp := make([]model.Booking, len(bookings))
	copy(cp, bookings)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.bookings = cp
	v.loaded = true
	v.generation++
	v.cache = make(map[string]Snapshot)
	v.current = nil
	v.lastUsed = v.now()
}

// Deselect drops the current selection and cached snapshots, as when the
// admin picks a different film.  Bookings are kept.
func (v *Viewer) Deselect() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = 0
	v.current = nil
	v.cache = make(map[string]Snapshot)
	v.lastUsed = v.now()
}

// Loaded reports whether bookings were fetched at least once.
func (v *Viewer) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Bookings returns the bookings of the current generation.
func (v *Viewer) Bookings() []model.Booking {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.bookings
}

// Select makes showtimeID the current selection.  When a snapshot for it is
// cached, it becomes current immediately and is returned with ok=true;
// otherwise the caller computes one from t.Bookings and commits it.
func (v *Viewer) Select(showtimeID string) (t Ticket, cached Snapshot, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.selected = v.seq
	v.lastUsed = v.now()
	t = Ticket{ShowtimeID: showtimeID, Bookings: v.bookings, generation: v.generation, seq: v.seq}
	if s, hit := v.cache[showtimeID]; hit {
		snap := s
		v.current = &snap
		return t, s, true
	}
	v.current = nil
	return t, Snapshot{}, false
}

// Commit stores s for t.  Results computed from replaced bookings are
// discarded.  s becomes current only if t is still the latest selection;
// the return value reports that.
func (v *Viewer) Commit(t Ticket, s Snapshot) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if t.generation != v.generation {
		return false
	}
	v.cache[t.ShowtimeID] = s
	if t.seq != v.selected {
		return false
	}
	snap := s
	v.current = &snap
	return true
}

// Current returns the snapshot of the selected showtime, if computed.
func (v *Viewer) Current() (Snapshot, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current == nil {
		return Snapshot{}, false
	}
	return *v.current, true
}

// IdleSince reports whether the viewer was last touched before t.
func (v *Viewer) IdleSince(t time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastUsed.Before(t)
}
