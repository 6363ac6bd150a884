package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-dashboard/internal/handler"
	"github.com/iliyamo/cinema-admin-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// RegisterRoutes registers the endpoints that need no session: the health
// probe and the login entry point.  loginLimiter throttles POST /login.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, loginLimiter echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	e.GET("/login", a.LoginPage)
	if loginLimiter != nil {
		e.POST("/login", a.Login, loginLimiter)
	} else {
		e.POST("/login", a.Login)
	}
	e.POST("/logout", a.Logout)
}

// RegisterAdmin registers every protected page under /admin.  The group
// requires an authenticated admin session; LoadSession must already be
// installed on e.
func RegisterAdmin(e *echo.Echo, a *handler.AuthHandler, cat *handler.CatalogHandler, b *handler.BookingHandler) {
	g := e.Group("/admin", middleware.RequireRole(model.RoleAdmin))

	g.GET("/me", a.Me)
	g.GET("/dashboard", cat.Dashboard)

	// ---- Films ----
	g.GET("/films", cat.ListFilms)
	g.POST("/films", cat.CreateFilm)
	g.PUT("/films/:id", cat.UpdateFilm)
	g.DELETE("/films/:id", cat.DeleteFilm)
	g.POST("/films/:id/toggle-status", cat.ToggleFilm)
	g.GET("/films/:id/showtimes", cat.FilmShowtimes)

	// ---- Showtimes ----
	g.GET("/showtimes", cat.ListShowtimes)
	g.POST("/showtimes", cat.CreateShowtime)
	g.PUT("/showtimes/:id", cat.UpdateShowtime)
	g.DELETE("/showtimes/:id", cat.DeleteShowtime)

	// ---- Bookings ----
	g.GET("/bookings", b.ListBookings)
	g.PATCH("/bookings/:id/status", b.UpdateStatus)
	g.DELETE("/bookings/:id", b.DeleteBooking)

	// ---- Users ----
	g.GET("/users", cat.ListUsers)
	g.POST("/users", cat.CreateUser)
	g.GET("/users/:id", cat.GetUser)
	g.PUT("/users/:id", cat.UpdateUser)
	g.DELETE("/users/:id", cat.DeleteUser)
	g.POST("/users/:id/toggle-status", cat.ToggleUser)

	// ---- Room status ----
	g.GET("/rooms", b.MountRooms)
	g.GET("/rooms/showtimes/:id", b.SelectShowtime)
	g.POST("/rooms/refresh", b.RefreshRooms)
}
