package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-dashboard/internal/form"
	"github.com/iliyamo/cinema-admin-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-admin-dashboard/internal/service"
)

// BookingHandler serves the booking management page and the room status
// viewer.
type BookingHandler struct {
	Bookings *service.BookingService
	Rooms    *service.RoomService
	Log      logrus.FieldLogger
}

func NewBookingHandler(bookings *service.BookingService, rooms *service.RoomService, log logrus.FieldLogger) *BookingHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BookingHandler{Bookings: bookings, Rooms: rooms, Log: log}
}

// ListBookings handles GET /admin/bookings?q=&status=.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	page, err := h.Bookings.List(ctx, c.QueryParam("q"), c.QueryParam("status"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, page)
}

// UpdateStatus handles PATCH /admin/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var in form.BookingStatusForm
	if err := bind(c, &in); err != nil {
		return fail(c, h.Log, err)
	}
	actor, _ := middleware.Principal(c)
	ctx, cancel := requestContext(c)
	defer cancel()
	b, err := h.Bookings.UpdateStatus(ctx, actor, c.Param("id"), in.Status)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	actor, _ := middleware.Principal(c)
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Bookings.Delete(ctx, actor, c.Param("id")); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- Room status ----

// MountRooms handles GET /admin/rooms?filmId=.  Each call refetches and
// drops the session's current selection.
func (h *BookingHandler) MountRooms(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	page, err := h.Rooms.Mount(ctx, middleware.SessionID(c), c.QueryParam("filmId"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, page)
}

// SelectShowtime handles GET /admin/rooms/showtimes/:id.
func (h *BookingHandler) SelectShowtime(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	snap, err := h.Rooms.Select(ctx, middleware.SessionID(c), c.Param("id"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// RefreshRooms handles POST /admin/rooms/refresh.  The body carries the
// recomputed current snapshot, or null when nothing is selected.
func (h *BookingHandler) RefreshRooms(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	snap, err := h.Rooms.Refresh(ctx, middleware.SessionID(c))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"current": snap})
}
