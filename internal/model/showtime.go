package model

import "time"

// Showtime represents a scheduled screening of a film in a room.  The
// upstream stores the seat counts redundantly; the occupancy viewer derives
// its own numbers from bookings instead of trusting AvailableSeats.
//
// Fields:
//  ID             – upstream identifier (showtime_<film>_<date>_<time> for new rows).
//  FilmID         – film being screened.
//  CinemaID       – cinema hosting the room.
//  RoomID         – room identifier such as "room_3".
//  Datetime       – start time.
//  Price          – base ticket price.
//  Discount       – discount percentage.
//  Format         – 2D, 3D, IMAX …
//  Language       – audio/subtitle description.
//  AvailableSeats – upstream counter.
//  TotalSeats     – upstream counter.
type Showtime struct {
	ID             string    `json:"id"`
	FilmID         string    `json:"filmId"`
	CinemaID       string    `json:"cinemaId,omitempty"`
	RoomID         string    `json:"roomId"`
	Datetime       time.Time `json:"datetime"`
	Price          int       `json:"price"`
	Discount       int       `json:"discount"`
	Format         string    `json:"format,omitempty"`
	Language       string    `json:"language,omitempty"`
	AvailableSeats int       `json:"availableSeats"`
	TotalSeats     int       `json:"totalSeats"`
}

// SameDay reports whether the showtime starts on the same calendar day as t,
// evaluated in t's location.
func (s Showtime) SameDay(t time.Time) bool {
	a := s.Datetime.In(t.Location())
	return a.Year() == t.Year() && a.YearDay() == t.YearDay()
}
