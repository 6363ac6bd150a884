package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/seating"
	"github.com/iliyamo/cinema-admin-dashboard/internal/view"
)

// RoomPage is the data behind the room status view: the film picker, the
// showtimes of the picked film and the header counters.
type RoomPage struct {
	Films     []model.Film      `json:"films"`
	FilmID    string            `json:"filmId,omitempty"`
	Showtimes []model.Showtime  `json:"showtimes"`
	Overview  view.RoomOverview `json:"overview"`
}

// RoomService keeps one seating.Viewer per admin session.
type RoomService struct {
	api     Upstream
	room    model.Room
	filter  seating.StatusFilter
	idleTTL time.Duration
	now     func() time.Time
	log     logrus.FieldLogger

	mu      sync.Mutex
	viewers map[string]*seating.Viewer
}

func NewRoomService(api Upstream, room model.Room, filter seating.StatusFilter, idleTTL time.Duration, log logrus.FieldLogger) *RoomService {
	if filter == nil {
		filter = seating.IncludeAllStatuses
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RoomService{
		api:     api,
		room:    room,
		filter:  filter,
		idleTTL: idleTTL,
		now:     time.Now,
		log:     log,
		viewers: make(map[string]*seating.Viewer),
	}
}

func (s *RoomService) viewer(sid string) *seating.Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.viewers[sid]
	if !ok {
		v = seating.NewViewer(s.now)
		s.viewers[sid] = v
	}
	return v
}

// Mount loads films, showtimes and bookings in parallel and replaces the
// session's bookings, which also drops the current selection.  When filmID
// is set only its showtimes are listed.  A failed fetch leaves the viewer
// untouched.
func (s *RoomService) Mount(ctx context.Context, sid, filmID string) (RoomPage, error) {
	var (
		films     []model.Film
		showtimes []model.Showtime
		bookings  []model.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		films, err = s.api.ListFilms(gctx)
		return err
	})
	g.Go(func() (err error) {
		showtimes, err = s.api.ListShowtimes(gctx)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = s.api.ListBookings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return RoomPage{}, err
	}

	s.viewer(sid).Reset(bookings)

	page := RoomPage{
		Films:     films,
		FilmID:    filmID,
		Showtimes: showtimes,
		Overview:  view.NewRoomOverview(showtimes, bookings, s.now().UTC()),
	}
	if filmID != "" {
		page.Showtimes = view.FilmShowtimes(showtimes, filmID)
	}
	return page, nil
}

// Select makes showtimeID current and returns its snapshot.  Bookings are
// fetched first when the session has none yet.  The snapshot is returned
// even if a newer selection superseded it while it was computed; it then
// only lands in the cache.
func (s *RoomService) Select(ctx context.Context, sid, showtimeID string) (seating.Snapshot, error) {
	v := s.viewer(sid)
	if !v.Loaded() {
		bookings, err := s.api.ListBookings(ctx)
		if err != nil {
			return seating.Snapshot{}, err
		}
		v.Reset(bookings)
	}

	t, cached, ok := v.Select(showtimeID)
	if ok {
		return cached, nil
	}
	snap, err := seating.NewSnapshot(t.ShowtimeID, t.Bookings, s.room, s.filter)
	if err != nil {
		return seating.Snapshot{}, err
	}
	if !v.Commit(t, snap) {
		s.log.WithField("showtime_id", showtimeID).Debug("superseded occupancy snapshot discarded")
	}
	if len(snap.Conflicts) > 0 {
		s.log.WithFields(logrus.Fields{"showtime_id": showtimeID, "conflicts": len(snap.Conflicts)}).
			Warn("seats held by more than one booking")
	}
	return snap, nil
}

// Refresh refetches bookings, invalidating every cached snapshot, and
// recomputes the current selection if there was one.
func (s *RoomService) Refresh(ctx context.Context, sid string) (*seating.Snapshot, error) {
	bookings, err := s.api.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	v := s.viewer(sid)
	prev, hadCurrent := v.Current()
	v.Reset(bookings)
	if !hadCurrent {
		return nil, nil
	}
	snap, err := s.Select(ctx, sid, prev.ShowtimeID)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Current returns the session's selected snapshot, if any.
func (s *RoomService) Current(sid string) (seating.Snapshot, bool) {
	s.mu.Lock()
	v, ok := s.viewers[sid]
	s.mu.Unlock()
	if !ok {
		return seating.Snapshot{}, false
	}
	return v.Current()
}

// Forget drops the viewer of sid.
func (s *RoomService) Forget(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.viewers, sid)
}

// EvictIdle drops viewers untouched for longer than the idle TTL and
// returns how many were removed.
func (s *RoomService) EvictIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for sid, v := range s.viewers {
		if v.IdleSince(cutoff) {
			delete(s.viewers, sid)
			n++
		}
	}
	if n > 0 {
		s.log.WithField("evicted", n).Info("idle room viewers evicted")
	}
	return n
}

// StartEviction schedules EvictIdle every interval.  The caller shuts the
// returned scheduler down.
func (s *RoomService) StartEviction(every time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() { s.EvictIdle() }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = sched.Shutdown()
		return nil, err
	}
	sched.Start()
	return sched, nil
}
