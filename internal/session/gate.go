// Package session holds the authenticated-admin state of a browser session
// and decides whether protected views may render.
//
// A session is either Anonymous or Authenticated(principal).  The principal
// is persisted through a Store so that it survives reloads; Open rehydrates
// it, Login replaces it on success and Logout removes it.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// State is Anonymous when Principal is nil.
type State struct {
	Principal *model.Principal
}

func Anonymous() State { return State{} }

func Authenticated(p model.Principal) State { return State{Principal: &p} }

func (s State) IsAuthenticated() bool { return s.Principal != nil }

// Decision is the outcome of Authorize.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize allows only an authenticated principal whose role equals
// requiredRole.
func Authorize(s State, requiredRole string) Decision {
	if !s.IsAuthenticated() || s.Principal.Role != requiredRole {
		return Deny
	}
	return Allow
}

// Credentials are what the login form submits.
type Credentials struct {
	Email    string
	Password string
}

// Authenticator resolves credentials to an active admin principal.  Every
// rejection must be reported as apperr.ErrInvalidCredentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (model.Principal, error)
}

// Gate binds a Store and an Authenticator.  It is safe for concurrent use;
// all state lives in the store.
type Gate struct {
	store Store
	auth  Authenticator
	log   logrus.FieldLogger
}

func NewGate(store Store, auth Authenticator, log logrus.FieldLogger) *Gate {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Gate{store: store, auth: auth, log: log}
}

// NewID returns a fresh session id.
func NewID() string { return uuid.NewString() }

// Open rehydrates the state of sid.  Missing, unreadable or incomplete
// records, and store failures, all yield Anonymous.
func (g *Gate) Open(ctx context.Context, sid string) State {
	if sid == "" {
		return Anonymous()
	}
	p, err := g.store.Load(ctx, sid)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			g.log.WithError(err).Warn("session rehydrate failed")
		}
		return Anonymous()
	}
	if p.ID == "" || p.Role == "" {
		return Anonymous()
	}
	return Authenticated(p)
}

// Login authenticates creds and persists the principal under sid.  On any
// failure prior is returned unchanged together with the error; credential
// problems always surface as the same generic AuthError.
func (g *Gate) Login(ctx context.Context, sid string, prior State, creds Credentials) (State, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return prior, apperr.InvalidCredentials()
	}
	p, err := g.auth.Authenticate(ctx, email, creds.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			return prior, apperr.InvalidCredentials()
		}
		return prior, err
	}
	if p.Role != model.RoleAdmin {
		return prior, apperr.InvalidCredentials()
	}
	if err := g.store.Save(ctx, sid, p); err != nil {
		return prior, err
	}
	g.log.WithFields(logrus.Fields{"user_id": p.ID}).Info("admin signed in")
	return Authenticated(p), nil
}

// Logout removes the persisted principal of sid.
func (g *Gate) Logout(ctx context.Context, sid string) (State, error) {
	if sid == "" {
		return Anonymous(), nil
	}
	if err := g.store.Delete(ctx, sid); err != nil {
		return Anonymous(), err
	}
	return Anonymous(), nil
}
