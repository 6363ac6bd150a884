package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-dashboard/internal/session"
)

// LoginPath is where denied browser requests are sent.
const LoginPath = "/login"

// RequireRole lets a request through only when the session holds one of the
// given roles.  It assumes LoadSession ran earlier in the chain.  Denied
// requests never reach the handler.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := State(c)
			for _, r := range roles {
				if session.Authorize(st, r) == session.Allow {
					return next(c)
				}
			}
			return Deny(c)
		}
	}
}

// Deny answers a rejected guard: a 303 redirect to the login entry point
// for browsers, 401 with a redirect hint for JSON clients.
func Deny(c echo.Context) error {
	if WantsJSON(c.Request()) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "redirect": LoginPath})
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

// WantsJSON reports whether the client asked for JSON rather than a page.
// Requests that prefer text/html are treated as browser navigation.
func WantsJSON(r *http.Request) bool {
	accept := r.Header.Get(echo.HeaderAccept)
	if strings.Contains(accept, echo.MIMETextHTML) {
		return false
	}
	if strings.Contains(accept, echo.MIMEApplicationJSON) {
		return true
	}
	if r.Header.Get(echo.HeaderXRequestedWith) == "XMLHttpRequest" {
		return true
	}
	return strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) ||
		strings.HasPrefix(r.Header.Get(echo.HeaderAuthorization), "Bearer ")
}
