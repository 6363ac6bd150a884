package view

import (
	"sort"
	"time"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

const (
	popularFilmsLimit   = 5
	recentBookingsLimit = 6
)

type DashboardStats struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalFilms    int     `json:"totalFilms"`
	TotalBookings int     `json:"totalBookings"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TodayBookings int     `json:"todayBookings"`
}

// PopularFilm is a film with the number of bookings made for it.
type PopularFilm struct {
	model.Film
	BookingCount int `json:"bookingCount"`
}

type Dashboard struct {
	Stats          DashboardStats  `json:"stats"`
	PopularFilms   []PopularFilm   `json:"popularFilms"`
	RecentBookings []model.Booking `json:"recentBookings"`
}

// BuildDashboard computes the landing page summary.  "Today" is the UTC
// calendar day of now, matched against each booking's createdAt.
func BuildDashboard(users []model.User, films []model.Film, bookings []model.Booking, now time.Time) Dashboard {
	today := now.UTC().Format("2006-01-02")
	stats := DashboardStats{
		TotalUsers:    len(users),
		TotalFilms:    len(films),
		TotalBookings: len(bookings),
		TotalRevenue:  Revenue(bookings),
	}
	for _, b := range bookings {
		if b.CreatedOn(today) {
			stats.TodayBookings++
		}
	}
	return Dashboard{
		Stats:          stats,
		PopularFilms:   PopularFilms(films, bookings, popularFilmsLimit),
		RecentBookings: RecentBookings(bookings, recentBookingsLimit),
	}
}

// PopularFilms ranks films by booking count, keeping catalog order on ties.
func PopularFilms(films []model.Film, bookings []model.Booking, n int) []PopularFilm {
	counts := make(map[string]int)
	for _, b := range bookings {
		counts[b.FilmID]++
	}
	out := make([]PopularFilm, len(films))
	for i, f := range films {
		out[i] = PopularFilm{Film: f, BookingCount: counts[f.ID]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BookingCount > out[j].BookingCount })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
