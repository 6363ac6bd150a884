package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-dashboard/internal/session"
	"github.com/iliyamo/cinema-admin-dashboard/internal/utils"
)

// LoadSession reads the signed session token from the cookie named
// cookieName, or from a Bearer header, and rehydrates the session through
// gate.  It never rejects a request: a missing, invalid or expired token
// simply leaves the request Anonymous.  Guards further down decide access.
func LoadSession(secret, cookieName string, gate *session.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := session.Anonymous()
			if raw := sessionToken(c, cookieName); raw != "" {
				if claims, err := utils.ParseSessionToken(secret, raw); err == nil {
					c.Set(ctxSessionID, claims.SessionID)
					st = gate.Open(c.Request().Context(), claims.SessionID)
					// A token minted for another principal never unlocks this record.
					if st.IsAuthenticated() && claims.Subject != "" && claims.Subject != st.Principal.ID {
						st = session.Anonymous()
					}
				}
			}
			c.Set(ctxState, st)
			return next(c)
		}
	}
}

func sessionToken(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
