package view

import (
	"sort"
	"strings"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// FilterFilms keeps films whose title or a category matches term and whose
// status equals status (or status is All/empty).
func FilterFilms(films []model.Film, term, status string) []model.Film {
	m := newMatcher(term)
	out := make([]model.Film, 0, len(films))
	for _, f := range films {
		if status != "" && status != All && string(f.Status) != status {
			continue
		}
		if !m.any(append([]string{f.NameFilm}, f.InfoFilm.Category...)...) {
			continue
		}
		out = append(out, f)
	}
	return out
}

type FilmCounts struct {
	Total   int `json:"total"`
	Showing int `json:"showing"`
	Coming  int `json:"coming"`
}

func CountFilms(films []model.Film) FilmCounts {
	c := FilmCounts{Total: len(films)}
	for _, f := range films {
		switch f.Status {
		case model.FilmShowing:
			c.Showing++
		case model.FilmComing:
			c.Coming++
		}
	}
	return c
}

// FilmShowtimes returns the showtimes of filmID, earliest first.
func FilmShowtimes(showtimes []model.Showtime, filmID string) []model.Showtime {
	out := make([]model.Showtime, 0)
	for _, s := range showtimes {
		if s.FilmID == filmID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Datetime.Before(out[j].Datetime) })
	return out
}

// FilterUsers matches term against name, email and phone.  role is "admin",
// "user" or All.
func FilterUsers(users []model.User, term, role string) []model.User {
	m := newMatcher(term)
	raw := strings.TrimSpace(term)
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if role != "" && role != All && u.Role != role {
			continue
		}
		if raw != "" && !m.any(u.FullName, u.Email) && !strings.Contains(u.Phone, raw) {
			continue
		}
		out = append(out, u)
	}
	return out
}

type UserCounts struct {
	Total  int `json:"total"`
	Admins int `json:"admins"`
	Active int `json:"active"`
}

func CountUsers(users []model.User) UserCounts {
	c := UserCounts{Total: len(users)}
	for _, u := range users {
		if u.Role == model.RoleAdmin {
			c.Admins++
		}
		if u.Active() {
			c.Active++
		}
	}
	return c
}

// UserView strips the stored password before a user leaves the service.
func UserView(u model.User) model.User {
	u.Password = ""
	return u
}

func UserViews(users []model.User) []model.User {
	out := make([]model.User, len(users))
	for i, u := range users {
		out[i] = UserView(u)
	}
	return out
}
