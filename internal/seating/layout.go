// Package seating derives the seat-occupancy view of a showtime: it reduces
// bookings to a booked-seat set and expands that set into the full seat grid
// of a room with aggregate statistics.  Everything here is pure except the
// Viewer, which caches snapshots for one admin session.
package seating

import (
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// SeatSet is a set of seat ids.
type SeatSet map[string]struct{}

// NewSeatSet builds a set from ids; duplicates collapse.
func NewSeatSet(ids ...string) SeatSet {
	s := make(SeatSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership of id.
func (s SeatSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids ordered by row label, then seat number.  Ids that do
// not parse as label+number sort after the rest, lexically.
func (s SeatSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sortSeatIDs(out)
	return out
}

// Statistics aggregates a generated layout.  OccupancyRate is an integer
// percentage rounded half up.
type Statistics struct {
	TotalSeats     int `json:"totalSeats"`
	BookedSeats    int `json:"bookedSeats"`
	AvailableSeats int `json:"availableSeats"`
	OccupancyRate  int `json:"occupancyRate"`
}

// Layout is the full seat grid of a room, row-major.
type Layout struct {
	Seats      []model.Seat `json:"seatLayout"`
	Statistics Statistics   `json:"statistics"`
}

// Build generates the seat grid for rows x seatsPerRow and marks every seat
// whose id is in booked.  Seats come out row-major: all of the first row in
// ascending number order, then the next row.  Row types are positional:
// the first two rows are vip, the last two couple, the rest standard.
func Build(rows []string, seatsPerRow int, booked SeatSet) (Layout, error) {
	if len(rows) == 0 {
		return Layout{}, &apperr.ConfigError{Field: "rows", Reason: "must not be empty"}
	}
	if seatsPerRow <= 0 {
		return Layout{}, &apperr.ConfigError{Field: "seatsPerRow", Reason: "must be positive"}
	}
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r) == "" {
			return Layout{}, &apperr.ConfigError{Field: "rows", Reason: "contains an empty label"}
		}
		if _, dup := seen[r]; dup {
			return Layout{}, &apperr.ConfigError{Field: "rows", Reason: "contains duplicate label " + r}
		}
		seen[r] = struct{}{}
	}

	seats := make([]model.Seat, 0, len(rows)*seatsPerRow)
	bookedCount := 0
	for i, row := range rows {
		typ := rowType(i, len(rows))
		for n := 1; n <= seatsPerRow; n++ {
			id := row + strconv.Itoa(n)
			isBooked := booked.Has(id)
			if isBooked {
				bookedCount++
			}
			seats = append(seats, model.Seat{ID: id, Row: row, Number: n, Type: typ, IsBooked: isBooked})
		}
	}

	total := len(seats)
	return Layout{
		Seats: seats,
		Statistics: Statistics{
			TotalSeats:     total,
			BookedSeats:    bookedCount,
			AvailableSeats: total - bookedCount,
			OccupancyRate:  percentRoundHalfUp(bookedCount, total),
		},
	}, nil
}

// BuildRoom is Build for a room's geometry with generated row labels.
func BuildRoom(room model.Room, booked SeatSet) (Layout, error) {
	if room.Rows <= 0 {
		return Layout{}, &apperr.ConfigError{Field: "rows", Reason: "must be positive"}
	}
	return Build(RowLabels(room.Rows), room.SeatsPerRow, booked)
}

func rowType(i, n int) model.SeatType {
	switch {
	case i < 2:
		return model.SeatVIP
	case i >= n-2:
		return model.SeatCouple
	}
	return model.SeatStandard
}

// percentRoundHalfUp returns round(part/total*100) with halves rounded up,
// using integer arithmetic only.  total must be positive.
func percentRoundHalfUp(part, total int) int {
	return (200*part + total) / (2 * total)
}
