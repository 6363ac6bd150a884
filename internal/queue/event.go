// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingStatusQueue carries BookingStatusChangedEvent messages.
const BookingStatusQueue = "booking.status_changed"

// BookingStatusChangedEvent is published after an admin changes the status
// of a booking upstream.  It carries enough of the booking for downstream
// consumers to log, notify or trigger analytics without querying the API.
type BookingStatusChangedEvent struct {
	BookingID    string   `json:"booking_id"`
	ShowtimeID   string   `json:"showtime_id"`
	FilmID       string   `json:"film_id,omitempty"`
	CustomerName string   `json:"customer_name,omitempty"`
	Seats        []string `json:"seats"`
	TotalAmount  float64  `json:"total_amount"`
	FromStatus   string   `json:"from_status"`
	ToStatus     string   `json:"to_status"`
	ChangedBy    string   `json:"changed_by"`
	ChangedAt    string   `json:"changed_at"`
}
