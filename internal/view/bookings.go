package view

import (
	"sort"
	"time"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// BookingRow is a booking joined with its film and showtime, as the booking
// list shows it.  Either may be nil when the upstream no longer has it.
type BookingRow struct {
	model.Booking
	Film     *model.Film     `json:"film,omitempty"`
	Showtime *model.Showtime `json:"showtime,omitempty"`
}

// JoinBookings attaches film and showtime records by id.
func JoinBookings(bookings []model.Booking, films []model.Film, showtimes []model.Showtime) []BookingRow {
	filmByID := make(map[string]*model.Film, len(films))
	for i := range films {
		filmByID[films[i].ID] = &films[i]
	}
	showByID := make(map[string]*model.Showtime, len(showtimes))
	for i := range showtimes {
		showByID[showtimes[i].ID] = &showtimes[i]
	}
	out := make([]BookingRow, len(bookings))
	for i, b := range bookings {
		out[i] = BookingRow{Booking: b, Film: filmByID[b.FilmID], Showtime: showByID[b.ShowtimeID]}
	}
	return out
}

// FilterBookings matches term against customer name, film title and booking
// id; status is a booking status or All.
func FilterBookings(rows []BookingRow, term, status string) []BookingRow {
	m := newMatcher(term)
	out := make([]BookingRow, 0, len(rows))
	for _, r := range rows {
		if status != "" && status != All && string(r.Status) != status {
			continue
		}
		title := ""
		if r.Film != nil {
			title = r.Film.NameFilm
		}
		if !m.any(r.CustomerName, title, r.ID) {
			continue
		}
		out = append(out, r)
	}
	return out
}

type BookingCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
}

func CountBookings(bookings []model.Booking) BookingCounts {
	c := BookingCounts{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case model.BookingPending:
			c.Pending++
		case model.BookingConfirmed:
			c.Confirmed++
		case model.BookingCancelled:
			c.Cancelled++
		case model.BookingCompleted:
			c.Completed++
		}
	}
	return c
}

// Revenue sums TotalAmount over every booking regardless of status.
func Revenue(bookings []model.Booking) float64 {
	var sum float64
	for _, b := range bookings {
		sum += b.TotalAmount
	}
	return sum
}

// RecentBookings returns up to n bookings, newest first.  The input is not
// reordered.
func RecentBookings(bookings []model.Booking, n int) []model.Booking {
	out := make([]model.Booking, len(bookings))
	copy(out, bookings)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Created().After(out[j].Created()) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RoomOverview is the summary strip of the room status page.
type RoomOverview struct {
	TodayShowtimes int     `json:"todayShowtimes"`
	TotalBookings  int     `json:"totalBookings"`
	Revenue        float64 `json:"revenue"`
}

func NewRoomOverview(showtimes []model.Showtime, bookings []model.Booking, now time.Time) RoomOverview {
	o := RoomOverview{TotalBookings: len(bookings), Revenue: Revenue(bookings)}
	for _, s := range showtimes {
		if s.SameDay(now) {
			o.TodayShowtimes++
		}
	}
	return o
}
