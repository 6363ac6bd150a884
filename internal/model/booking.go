package model

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking as reported by the
// upstream API.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// BookingStatuses lists every status in the order the dashboard shows them.
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Booking records a customer's purchase of one or more seats for a showtime.
// The dashboard never creates bookings; it reads them, changes their status
// and deletes them.
//
// Fields:
//  ID           – upstream identifier.
//  UserID       – customer account, when known.
//  FilmID       – film of the showtime.
//  ShowtimeID   – showtime the seats belong to.
//  CustomerName – free text name entered at checkout.
//  Seats        – seat ids such as "A1".
//  TotalAmount  – amount charged, in đồng.
//  Status       – pending, confirmed, cancelled or completed.
//  CreatedAt    – ISO-8601 creation timestamp as sent upstream.
//  BookingTime  – time shown in the booking details panel.
type Booking struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId,omitempty"`
	FilmID       string        `json:"filmId,omitempty"`
	ShowtimeID   string        `json:"showtimeId"`
	CustomerName string        `json:"customerName,omitempty"`
	Seats        []string      `json:"seats"`
	TotalAmount  float64       `json:"totalAmount"`
	Status       BookingStatus `json:"status"`
	CreatedAt    string        `json:"createdAt,omitempty"`
	BookingTime  string        `json:"bookingTime,omitempty"`
}

// Created parses CreatedAt.  The zero time is returned when the upstream
// value is missing or not ISO-8601.
func (b Booking) Created() time.Time {
	return parseTimestamp(b.CreatedAt)
}

// CreatedOn reports whether the booking was created on the calendar day
// (YYYY-MM-DD) given.
func (b Booking) CreatedOn(day string) bool {
	return day != "" && strings.Contains(b.CreatedAt, day)
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
