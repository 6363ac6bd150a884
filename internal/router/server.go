package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-dashboard/internal/form"
	"github.com/iliyamo/cinema-admin-dashboard/internal/handler"
	"github.com/iliyamo/cinema-admin-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-admin-dashboard/internal/session"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Gate         *session.Gate
	Cookie       handler.CookieConfig
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	Bookings     *handler.BookingHandler
	LoginLimiter echo.MiddlewareFunc
	Log          logrus.FieldLogger
}

// NewServer assembles the echo instance: recovery, request ids, request
// logging and session loading run on every request.
func NewServer(d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = form.Validator{}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.LoadSession(d.Cookie.Secret, d.Cookie.Name, d.Gate))
	e.Use(middleware.RequestLogger(d.Log))

	RegisterRoutes(e, d.Auth, d.LoginLimiter)
	RegisterAdmin(e, d.Auth, d.Catalog, d.Bookings)
	return e
}
