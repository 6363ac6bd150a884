package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/queue"
	"github.com/iliyamo/cinema-admin-dashboard/internal/view"
)

// EventPublisher publishes booking events.  *queue.Publisher and
// queue.NopPublisher satisfy it.
type EventPublisher interface {
	PublishBookingStatusChanged(ctx context.Context, ev queue.BookingStatusChangedEvent) error
}

// BookingPage is the booking management list.
type BookingPage struct {
	Bookings []view.BookingRow  `json:"bookings"`
	Counts   view.BookingCounts `json:"counts"`
}

type BookingService struct {
	api Upstream
	pub EventPublisher
	log logrus.FieldLogger
	now func() time.Time
}

func NewBookingService(api Upstream, pub EventPublisher, log logrus.FieldLogger) *BookingService {
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BookingService{api: api, pub: pub, log: log, now: time.Now}
}

// List joins bookings with their film and showtime and filters the rows.
// Counters always cover every booking.
func (s *BookingService) List(ctx context.Context, term, status string) (BookingPage, error) {
	var (
		bookings  []model.Booking
		films     []model.Film
		showtimes []model.Showtime
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bookings, err = s.api.ListBookings(gctx)
		return err
	})
	g.Go(func() (err error) {
		films, err = s.api.ListFilms(gctx)
		return err
	})
	g.Go(func() (err error) {
		showtimes, err = s.api.ListShowtimes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return BookingPage{}, err
	}
	rows := view.JoinBookings(bookings, films, showtimes)
	return BookingPage{
		Bookings: view.FilterBookings(rows, term, status),
		Counts:   view.CountBookings(bookings),
	}, nil
}

func (s *BookingService) find(ctx context.Context, id string) (model.Booking, error) {
	bookings, err := s.api.ListBookings(ctx)
	if err != nil {
		return model.Booking{}, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, apperr.ErrNotFound
}

// UpdateStatus sets the status of booking id upstream and publishes a
// booking.status_changed event.  A publish failure is logged, not returned.
func (s *BookingService) UpdateStatus(ctx context.Context, actor model.Principal, id string, status model.BookingStatus) (model.Booking, error) {
	prev, err := s.find(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	updated, err := s.api.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return model.Booking{}, err
	}
	if updated.ID == "" {
		updated = prev
		updated.Status = status
	}

	log := s.log.WithFields(logrus.Fields{"booking_id": id, "from": prev.Status, "to": status, "by": actor.ID})
	log.Info("booking status changed")

	ev := queue.BookingStatusChangedEvent{
		BookingID:    id,
		ShowtimeID:   updated.ShowtimeID,
		FilmID:       updated.FilmID,
		CustomerName: updated.CustomerName,
		Seats:        updated.Seats,
		TotalAmount:  updated.TotalAmount,
		FromStatus:   string(prev.Status),
		ToStatus:     string(status),
		ChangedBy:    actor.Email,
		ChangedAt:    s.now().UTC().Format(time.RFC3339),
	}
	if err := s.pub.PublishBookingStatusChanged(ctx, ev); err != nil {
		log.WithError(err).Warn("booking status event not published")
	}
	return updated, nil
}

func (s *BookingService) Delete(ctx context.Context, actor model.Principal, id string) error {
	if err := s.api.DeleteBooking(ctx, id); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"booking_id": id, "by": actor.ID}).Info("booking deleted")
	return nil
}
