// Package service binds the pure derivations of the dashboard to the
// upstream API.  Every operation fetches what it needs, derives, and for
// writes refetches on the next read instead of patching local copies.
package service

import (
	"context"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// Upstream is the subset of the API client the services use.  *api.Client
// satisfies it.
type Upstream interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	UpdateUser(ctx context.Context, u model.User) (model.User, error)
	DeleteUser(ctx context.Context, id string) error

	ListFilms(ctx context.Context) ([]model.Film, error)
	CreateFilm(ctx context.Context, f model.Film) (model.Film, error)
	UpdateFilm(ctx context.Context, f model.Film) (model.Film, error)
	DeleteFilm(ctx context.Context, id string) error

	ListShowtimes(ctx context.Context) ([]model.Showtime, error)
	CreateShowtime(ctx context.Context, s model.Showtime) (model.Showtime, error)
	UpdateShowtime(ctx context.Context, s model.Showtime) (model.Showtime, error)
	DeleteShowtime(ctx context.Context, id string) error

	ListBookings(ctx context.Context) ([]model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus) (model.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}
