package seating

import (
	"sort"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// StatusFilter decides whether a booking's seats count as occupied.
type StatusFilter func(model.BookingStatus) bool

// IncludeAllStatuses counts every booking regardless of status.  It is the
// default, matching how the room viewer has always computed occupancy.
func IncludeAllStatuses(model.BookingStatus) bool { return true }

// ExcludeCancelled ignores cancelled bookings.
func ExcludeCancelled(s model.BookingStatus) bool { return s != model.BookingCancelled }

// BookedSeatsFor collects the seats of every booking for showtimeID that the
// filter accepts.  A nil filter behaves like IncludeAllStatuses.  Seats
// claimed by two bookings collapse into one entry; see Conflicts.
func BookedSeatsFor(bookings []model.Booking, showtimeID string, filter StatusFilter) SeatSet {
	if filter == nil {
		filter = IncludeAllStatuses
	}
	out := make(SeatSet)
	for _, b := range bookings {
		if b.ShowtimeID != showtimeID || !filter(b.Status) {
			continue
		}
		for _, s := range b.Seats {
			out[s] = struct{}{}
		}
	}
	return out
}

// BookingsFor returns the bookings of showtimeID in their original order.
func BookingsFor(bookings []model.Booking, showtimeID string) []model.Booking {
	out := make([]model.Booking, 0)
	for _, b := range bookings {
		if b.ShowtimeID == showtimeID {
			out = append(out, b)
		}
	}
	return out
}

// SeatConflict names a seat claimed by more than one live booking.
type SeatConflict struct {
	SeatID     string   `json:"seatId"`
	BookingIDs []string `json:"bookingIds"`
}

// Conflicts reports seats of showtimeID held by two or more bookings that are
// not cancelled.  Double booking is prevented upstream; this only surfaces
// violations, ordered by seat.
func Conflicts(bookings []model.Booking, showtimeID string) []SeatConflict {
	holders := make(map[string][]string)
	for _, b := range bookings {
		if b.ShowtimeID != showtimeID || b.Status == model.BookingCancelled {
			continue
		}
		seen := make(map[string]struct{}, len(b.Seats))
		for _, s := range b.Seats {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			holders[s] = append(holders[s], b.ID)
		}
	}
	ids := make([]string, 0)
	for s, hs := range holders {
		if len(hs) > 1 {
			ids = append(ids, s)
		}
	}
	sortSeatIDs(ids)
	out := make([]SeatConflict, 0, len(ids))
	for _, s := range ids {
		out = append(out, SeatConflict{SeatID: s, BookingIDs: holders[s]})
	}
	return out
}

// sortSeatIDs orders ids by row index, then number; unparsable ids go last.
func sortSeatIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		ri, ni, okI := SplitSeatID(ids[i])
		rj, nj, okJ := SplitSeatID(ids[j])
		if !okI || !okJ {
			if okI != okJ {
				return okI
			}
			return ids[i] < ids[j]
		}
		if ri != rj {
			ii, _ := rowLabelToIndex(ri)
			jj, _ := rowLabelToIndex(rj)
			return ii < jj
		}
		if ni != nj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})
}
