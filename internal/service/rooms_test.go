package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/seating"
)

func newRooms(t *testing.T, filter seating.StatusFilter) (*RoomService, func() []string, func(string, ...any)) {
	t.Helper()
	srv, client := seeded(t)
	s := NewRoomService(client, testRoom, filter, 30*time.Minute, nil)
	s.now = func() time.Time { return testNow }
	return s, srv.Calls, func(c string, r ...any) { srv.Seed(t, c, r...) }
}

func TestRoomService_Mount(t *testing.T) {
	s, _, _ := newRooms(t, nil)

	page, err := s.Mount(context.Background(), "sid", "f1")
	require.NoError(t, err)
	assert.Len(t, page.Films, 2)
	require.Len(t, page.Showtimes, 2)
	assert.Equal(t, "st2", page.Showtimes[0].ID, "earliest first")
	assert.Equal(t, 2, page.Overview.TodayShowtimes)
	assert.Equal(t, 3, page.Overview.TotalBookings)
	assert.Equal(t, float64(360000), page.Overview.Revenue)

	all, err := s.Mount(context.Background(), "sid", "")
	require.NoError(t, err)
	assert.Len(t, all.Showtimes, 3)
}

func TestRoomService_Select(t *testing.T) {
	s, calls, _ := newRooms(t, nil)
	ctx := context.Background()

	snap, err := s.Select(ctx, "sid", "st1")
	require.NoError(t, err)
	assert.Equal(t, "st1", snap.ShowtimeID)
	assert.Equal(t, 3, snap.Statistics.BookedSeats)
	assert.Equal(t, 93, snap.Statistics.AvailableSeats)
	assert.Len(t, snap.Seats, 96)
	assert.Len(t, snap.Bookings, 2)
	assert.Equal(t, 1, count(calls(), "GET /bookings"), "first select fetches bookings")

	again, err := s.Select(ctx, "sid", "st1")
	require.NoError(t, err)
	assert.Equal(t, snap, again)
	assert.Equal(t, 1, count(calls(), "GET /bookings"), "cached snapshot reused")

	cur, ok := s.Current("sid")
	require.True(t, ok)
	assert.Equal(t, "st1", cur.ShowtimeID)

	empty, err := s.Select(ctx, "sid", "nope")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Statistics.BookedSeats)
}

func TestRoomService_SelectExcludingCancelled(t *testing.T) {
	s, _, _ := newRooms(t, seating.ExcludeCancelled)
	snap, err := s.Select(context.Background(), "sid", "st1")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Statistics.BookedSeats)
}

func TestRoomService_SessionsAreIsolated(t *testing.T) {
	s, _, _ := newRooms(t, nil)
	ctx := context.Background()
	_, err := s.Select(ctx, "a", "st1")
	require.NoError(t, err)

	_, ok := s.Current("b")
	assert.False(t, ok)

	_, err = s.Mount(ctx, "a", "f2")
	require.NoError(t, err)
	_, ok = s.Current("a")
	assert.False(t, ok, "picking a film clears the selection")
}

func TestRoomService_RefreshRecomputesCurrent(t *testing.T) {
	s, _, seed := newRooms(t, nil)
	ctx := context.Background()

	none, err := s.Refresh(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = s.Select(ctx, "sid", "st1")
	require.NoError(t, err)

	seed("bookings", model.Booking{ID: "b9", ShowtimeID: "st1", Seats: []string{"H12"}, Status: model.BookingPending})
	snap, err := s.Refresh(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 4, snap.Statistics.BookedSeats)
}

func TestRoomService_FailedFetchKeepsState(t *testing.T) {
	srv, client := seeded(t)
	s := NewRoomService(client, testRoom, nil, time.Minute, nil)
	ctx := context.Background()

	_, err := s.Select(ctx, "sid", "st1")
	require.NoError(t, err)

	srv.Fail("GET /films", http.StatusInternalServerError)
	_, err = s.Mount(ctx, "sid", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNetworkFailure)

	cur, ok := s.Current("sid")
	require.True(t, ok)
	assert.Equal(t, "st1", cur.ShowtimeID)
}

func TestRoomService_InvalidGeometry(t *testing.T) {
	_, client := seeded(t)
	s := NewRoomService(client, model.Room{Rows: 8}, nil, time.Minute, nil)
	_, err := s.Select(context.Background(), "sid", "st1")
	assert.ErrorIs(t, err, apperr.ErrInvalidConfiguration)
}

func TestRoomService_EvictIdle(t *testing.T) {
	_, client := seeded(t)
	now := testNow
	s := NewRoomService(client, testRoom, nil, 30*time.Minute, nil)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := s.Select(ctx, "old", "st1")
	require.NoError(t, err)
	now = now.Add(20 * time.Minute)
	_, err = s.Select(ctx, "fresh", "st1")
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, s.EvictIdle())
	_, ok := s.Current("old")
	assert.False(t, ok)
	_, ok = s.Current("fresh")
	assert.True(t, ok)

	disabled := NewRoomService(client, testRoom, nil, 0, nil)
	assert.Equal(t, 0, disabled.EvictIdle())
}

func TestRoomService_StartEviction(t *testing.T) {
	_, client := seeded(t)
	s := NewRoomService(client, testRoom, nil, time.Minute, nil)
	sched, err := s.StartEviction(time.Hour)
	require.NoError(t, err)
	assert.Len(t, sched.Jobs(), 1)
	require.NoError(t, sched.Shutdown())
}
