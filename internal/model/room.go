package model

// Room describes the seating geometry of a screening room.  The upstream
// does not expose room geometry, so every room shares the configured
// default until a /rooms collection exists.
//
// Fields:
//  ID          – room identifier such as "room_3".
//  Rows        – number of seat rows (labelled A, B, …).
//  SeatsPerRow – number of seats in every row.
type Room struct {
	ID          string `json:"id"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
}

// Capacity returns Rows * SeatsPerRow.
func (r Room) Capacity() int {
	return r.Rows * r.SeatsPerRow
}
