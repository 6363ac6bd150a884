package api

import (
	"context"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// Users

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, "GET", "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (model.User, error) {
	var out model.User
	err := c.do(ctx, "GET", itemPath("users", id), nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	err := c.do(ctx, "POST", "/users", u, &out)
	return out, err
}

// UpdateUser replaces the whole record.
func (c *Client) UpdateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	err := c.do(ctx, "PUT", itemPath("users", u.ID), u, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", itemPath("users", id), nil, nil)
}

// Films

func (c *Client) ListFilms(ctx context.Context) ([]model.Film, error) {
	var out []model.Film
	if err := c.do(ctx, "GET", "/films", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateFilm(ctx context.Context, f model.Film) (model.Film, error) {
	var out model.Film
	err := c.do(ctx, "POST", "/films", f, &out)
	return out, err
}

func (c *Client) UpdateFilm(ctx context.Context, f model.Film) (model.Film, error) {
	var out model.Film
	err := c.do(ctx, "PUT", itemPath("films", f.ID), f, &out)
	return out, err
}

func (c *Client) DeleteFilm(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", itemPath("films", id), nil, nil)
}

// Showtimes

func (c *Client) ListShowtimes(ctx context.Context) ([]model.Showtime, error) {
	var out []model.Showtime
	if err := c.do(ctx, "GET", "/showtimes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateShowtime(ctx context.Context, s model.Showtime) (model.Showtime, error) {
	var out model.Showtime
	err := c.do(ctx, "POST", "/showtimes", s, &out)
	return out, err
}

func (c *Client) UpdateShowtime(ctx context.Context, s model.Showtime) (model.Showtime, error) {
	var out model.Showtime
	err := c.do(ctx, "PUT", itemPath("showtimes", s.ID), s, &out)
	return out, err
}

func (c *Client) DeleteShowtime(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", itemPath("showtimes", id), nil, nil)
}

// Bookings

func (c *Client) ListBookings(ctx context.Context) ([]model.Booking, error) {
	var out []model.Booking
	if err := c.do(ctx, "GET", "/bookings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type statusPatch struct {
	Status model.BookingStatus `json:"status"`
}

// UpdateBookingStatus sends a partial update carrying only the status.
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus) (model.Booking, error) {
	var out model.Booking
	err := c.do(ctx, "PATCH", itemPath("bookings", id), statusPatch{Status: status}, &out)
	return out, err
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", itemPath("bookings", id), nil, nil)
}
