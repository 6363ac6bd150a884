package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/cinema-admin-dashboard/internal/api"
	"github.com/iliyamo/cinema-admin-dashboard/internal/api/apitest"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/queue"
)

var (
	testNow   = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	testRoom  = model.Room{Rows: 8, SeatsPerRow: 12}
	testAdmin = model.Principal{ID: "u1", Email: "admin@cinema.vn", Role: model.RoleAdmin}
)

func seeded(t *testing.T) (*apitest.Server, *api.Client) {
	t.Helper()
	srv := apitest.NewServer(t)
	srv.Seed(t, "users",
		model.User{ID: "u1", FullName: "Quản trị", Email: "admin@cinema.vn", Password: "secret", Role: model.RoleAdmin, Status: model.StatusActive},
		model.User{ID: "u2", FullName: "Nguyễn An", Email: "an@mail.com", Phone: "0901234567", Password: "pw123456", Role: model.RoleUser, Status: model.StatusActive},
	)
	srv.Seed(t, "films",
		model.Film{ID: "f1", NameFilm: "Mắt Biếc", Status: model.FilmShowing, InfoFilm: model.InfoFilm{Status: true}},
		model.Film{ID: "f2", NameFilm: "Lật Mặt 7", Status: model.FilmComing},
	)
	srv.Seed(t, "showtimes",
		model.Showtime{ID: "st1", FilmID: "f1", RoomID: "room_1", Datetime: time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC), Price: 90000},
		model.Showtime{ID: "st2", FilmID: "f1", RoomID: "room_2", Datetime: time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC), Price: 90000},
		model.Showtime{ID: "st3", FilmID: "f2", RoomID: "room_1", Datetime: time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), Price: 75000},
	)
	srv.Seed(t, "bookings",
		model.Booking{ID: "b1", FilmID: "f1", ShowtimeID: "st1", CustomerName: "Nguyễn An", Seats: []string{"A1", "A2"}, TotalAmount: 180000, Status: model.BookingConfirmed, CreatedAt: "2025-03-01T08:00:00.000Z"},
		model.Booking{ID: "b2", FilmID: "f1", ShowtimeID: "st1", CustomerName: "Trần Bình", Seats: []string{"B3"}, TotalAmount: 90000, Status: model.BookingCancelled, CreatedAt: "2025-02-28T08:00:00.000Z"},
		model.Booking{ID: "b3", FilmID: "f1", ShowtimeID: "st2", CustomerName: "Lê Chi", Seats: []string{"C1"}, TotalAmount: 90000, Status: model.BookingPending, CreatedAt: "2025-02-27T08:00:00.000Z"},
	)
	return srv, api.New(srv.URL, 0, nil)
}

func count(calls []string, route string) int {
	n := 0
	for _, c := range calls {
		if c == route {
			n++
		}
	}
	return n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.BookingStatusChangedEvent
	err    error
}

func (p *recordingPublisher) PublishBookingStatusChanged(_ context.Context, ev queue.BookingStatusChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}
