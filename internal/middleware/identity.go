package middleware

// identity.go holds the context keys shared by the middleware in this
// package and the helpers handlers use to read the session back.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/session"
)

const (
	ctxSessionID = "session_id"
	ctxState     = "session_state"
)

// State returns the session state loaded by LoadSession, or Anonymous.
func State(c echo.Context) session.State {
	if st, ok := c.Get(ctxState).(session.State); ok {
		return st
	}
	return session.Anonymous()
}

// SessionID returns the id carried by the request's session token, or "".
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ctxSessionID).(string)
	return sid
}

// Principal returns the signed-in admin.  ok is false for anonymous requests.
func Principal(c echo.Context) (p model.Principal, ok bool) {
	st := State(c)
	if !st.IsAuthenticated() {
		return model.Principal{}, false
	}
	return *st.Principal, true
}

// userID identifies the caller in request logs.  It returns
// "guest" when no admin is signed in.
func userID(c echo.Context) string {
	if p, ok := Principal(c); ok && p.ID != "" {
		return p.ID
	}
	return "guest"
}
