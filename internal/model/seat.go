package model

// SeatType classifies a seat by its row position.
type SeatType string

const (
	SeatStandard SeatType = "standard"
	SeatVIP      SeatType = "vip"
	SeatCouple   SeatType = "couple"
)

// Seat describes one position in a room's generated layout for a given
// showtime.  Seats are never stored; the layout is regenerated from the room
// geometry and the booked seat set every time.
//
// Fields:
//  ID       – row label followed by the seat number, e.g. "A1".
//  Row      – row label.
//  Number   – 1-based seat number within the row.
//  Type     – standard, vip or couple.
//  IsBooked – whether ID is in the showtime's booked set.
type Seat struct {
	ID       string   `json:"id"`
	Row      string   `json:"row"`
	Number   int      `json:"number"`
	Type     SeatType `json:"type"`
	IsBooked bool     `json:"isBooked"`
}
