package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-dashboard/internal/form"
	"github.com/iliyamo/cinema-admin-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-admin-dashboard/internal/session"
	"github.com/iliyamo/cinema-admin-dashboard/internal/utils"
)

// HomePath is where a signed-in admin lands.
const HomePath = "/admin/dashboard"

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secret string
	TTL    time.Duration
	Secure bool
}

// AuthHandler serves the login entry point and the session lifecycle.
type AuthHandler struct {
	Gate   *session.Gate
	Rooms  viewerForgetter
	Cookie CookieConfig
	Log    logrus.FieldLogger
}

type viewerForgetter interface {
	Forget(sid string)
}

func NewAuthHandler(gate *session.Gate, rooms viewerForgetter, cookie CookieConfig, log logrus.FieldLogger) *AuthHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuthHandler{Gate: gate, Rooms: rooms, Cookie: cookie, Log: log}
}

// LoginPage handles GET /login.  Signed-in admins are sent on to the
// dashboard; everyone else learns how to sign in.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if middleware.State(c).IsAuthenticated() {
		if middleware.WantsJSON(c.Request()) {
			return c.JSON(http.StatusOK, echo.Map{"authenticated": true, "redirect": HomePath})
		}
		return c.Redirect(http.StatusSeeOther, HomePath)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": false,
		"login":         echo.Map{"method": http.MethodPost, "path": middleware.LoginPath, "fields": []string{"email", "password"}},
	})
}

// Login handles POST /login.  Every credential problem answers the same
// 401 so the response never reveals which part was wrong.  On success the
// signed session cookie is set.
func (h *AuthHandler) Login(c echo.Context) error {
	var in form.LoginForm
	if err := c.Bind(&in); err != nil {
		return fail(c, h.Log, errInvalidBody)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	// Every successful login gets a fresh session id.
	sid := session.NewID()
	st, err := h.Gate.Login(ctx, sid, middleware.State(c), session.Credentials{Email: in.Email, Password: in.Password})
	if err != nil {
		return fail(c, h.Log, err)
	}
	if old := middleware.SessionID(c); old != "" {
		h.forget(ctx, old)
	}

	tok, err := utils.NewSessionToken(h.Cookie.Secret, sid, st.Principal.ID, st.Principal.Role, h.Cookie.TTL)
	if err != nil {
		return fail(c, h.Log, err)
	}
	c.SetCookie(h.cookie(tok.Token, tok.Exp))

	if !middleware.WantsJSON(c.Request()) {
		return c.Redirect(http.StatusSeeOther, HomePath)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":     st.Principal,
		"token":    tok.Token,
		"expires":  tok.Exp,
		"redirect": HomePath,
	})
}

// Logout handles POST /logout.  It is idempotent and always clears the
// cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	sid := middleware.SessionID(c)
	ctx, cancel := requestContext(c)
	defer cancel()

	h.forget(ctx, sid)
	c.SetCookie(h.cookie("", time.Unix(0, 0)))

	if !middleware.WantsJSON(c.Request()) {
		return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	}
	return c.JSON(http.StatusOK, echo.Map{"redirect": middleware.LoginPath})
}

// Me handles GET /admin/me.
func (h *AuthHandler) Me(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return middleware.Deny(c)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AuthHandler) forget(ctx context.Context, sid string) {
	if _, err := h.Gate.Logout(ctx, sid); err != nil {
		h.Log.WithError(err).Warn("session delete failed")
	}
	if sid != "" && h.Rooms != nil {
		h.Rooms.Forget(sid)
	}
}

func (h *AuthHandler) cookie(value string, exp time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		ck.MaxAge = -1
	}
	return ck
}
