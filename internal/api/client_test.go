package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/utils"
)

type recorded struct {
	Method string
	Path   string
	Body   string
}

type upstream struct {
	mu       sync.Mutex
	calls    []recorded
	handlers map[string]http.HandlerFunc // "METHOD /path"
}

func newUpstream(t *testing.T) (*upstream, *Client) {
	t.Helper()
	u := &upstream{handlers: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.calls = append(u.calls, recorded{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		h, ok := u.handlers[r.Method+" "+r.URL.Path]
		u.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return u, New(srv.URL+"/", 0, nil)
}

func (u *upstream) handle(route string, h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.handlers[route] = h
}

func (u *upstream) on(route string, status int, body any) {
	u.handle(route, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	})
}

func (u *upstream) called(route string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, c := range u.calls {
		if c.Method+" "+c.Path == route {
			n++
		}
	}
	return n
}

func (u *upstream) last() recorded {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[len(u.calls)-1]
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := utils.HashPassword(plain, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestAuthenticate_LoginEndpoint(t *testing.T) {
	up, c := newUpstream(t)
	up.on("POST /login", http.StatusOK, model.User{ID: "u1", FullName: "Admin", Email: "admin@cinema.vn", Role: "admin"})

	p, err := c.Authenticate(context.Background(), "admin@cinema.vn", "admin123")
	require.NoError(t, err)
	assert.Equal(t, model.Principal{ID: "u1", FullName: "Admin", Email: "admin@cinema.vn", Role: "admin", Avatar: model.DefaultAdminAvatar}, p)
	assert.Equal(t, 0, up.called("GET /users"))
	assert.JSONEq(t, `{"email":"admin@cinema.vn","password":"admin123"}`, up.last().Body)
}

func TestAuthenticate_FallbackScan(t *testing.T) {
	users := func(t *testing.T) []model.User {
		return []model.User{
			{ID: "u1", Email: "plain@cinema.vn", Password: "admin123", Role: "admin", Status: "active", Phone: "0900"},
			{ID: "u2", Email: "hashed@cinema.vn", Password: mustHash(t, "s3cret"), Role: "admin", Avatar: "🎬"},
			{ID: "u3", Email: "user@cinema.vn", Password: "admin123", Role: "user", Status: "active"},
			{ID: "u4", Email: "off@cinema.vn", Password: "admin123", Role: "admin", Status: "inactive"},
		}
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantID   string
	}{
		{"plaintext admin", "plain@cinema.vn", "admin123", "u1"},
		{"email case", "PLAIN@cinema.vn", "admin123", "u1"},
		{"bcrypt admin", "hashed@cinema.vn", "s3cret", "u2"},
		{"wrong password", "plain@cinema.vn", "nope", ""},
		{"unknown email", "ghost@cinema.vn", "admin123", ""},
		{"non admin", "user@cinema.vn", "admin123", ""},
		{"inactive admin", "off@cinema.vn", "admin123", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, c := newUpstream(t) // no POST /login route: 404
			up.on("GET /users", http.StatusOK, users(t))

			p, err := c.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantID == "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
				assert.Equal(t, "auth: invalid_credentials", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
			assert.Equal(t, 1, up.called("POST /login"))
		})
	}
}

func TestAuthenticate_NonAdminFromLoginFallsBack(t *testing.T) {
	up, c := newUpstream(t)
	up.on("POST /login", http.StatusOK, model.User{ID: "u3", Role: "user"})
	up.on("GET /users", http.StatusOK, []model.User{{ID: "u3", Email: "user@cinema.vn", Password: "x", Role: "user"}})

	_, err := c.Authenticate(context.Background(), "user@cinema.vn", "x")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.Equal(t, 1, up.called("GET /users"))
}

func TestAuthenticate_UsersUnavailable(t *testing.T) {
	up, c := newUpstream(t)
	up.on("GET /users", http.StatusServiceUnavailable, nil)

	_, err := c.Authenticate(context.Background(), "a@b.c", "x")
	assert.ErrorIs(t, err, apperr.ErrNetworkFailure)
	assert.NotErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestClient_NetworkErrors(t *testing.T) {
	up, c := newUpstream(t)
	up.on("GET /films", http.StatusInternalServerError, map[string]string{"error": "boom"})
	up.handle("GET /bookings", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := c.ListFilms(context.Background())
	var netErr *apperr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "GET /films", netErr.Op)
	assert.Equal(t, http.StatusInternalServerError, netErr.Status)

	_, err = c.ListBookings(context.Background())
	assert.ErrorIs(t, err, apperr.ErrNetworkFailure)

	_, err = c.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	dead := New("http://127.0.0.1:1", time.Second, nil)
	_, err = dead.ListShowtimes(context.Background())
	require.ErrorAs(t, err, &netErr)
	assert.Zero(t, netErr.Status)
}

func TestClient_UpdateBookingStatusSendsPartialBody(t *testing.T) {
	up, c := newUpstream(t)
	up.on("PATCH /bookings/b1", http.StatusOK, model.Booking{ID: "b1", Status: model.BookingConfirmed})

	b, err := c.UpdateBookingStatus(context.Background(), "b1", model.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, b.Status)
	assert.JSONEq(t, `{"status":"confirmed"}`, up.last().Body)
}

func TestClient_CRUDRoutes(t *testing.T) {
	up, c := newUpstream(t)
	ctx := context.Background()
	up.on("GET /showtimes", http.StatusOK, []map[string]any{{
		"id": "st1", "filmId": "f1", "roomId": "room_1", "datetime": "2025-03-01T19:30:00Z", "price": 90000,
	}})
	up.on("PUT /films/f1", http.StatusOK, model.Film{ID: "f1", NameFilm: "Mai"})
	up.on("DELETE /showtimes/st1", http.StatusOK, map[string]any{})
	up.on("PUT /users/u1", http.StatusOK, model.User{ID: "u1", Status: "inactive"})

	sts, err := c.ListShowtimes(ctx)
	require.NoError(t, err)
	require.Len(t, sts, 1)
	assert.Equal(t, time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC), sts[0].Datetime.UTC())

	f, err := c.UpdateFilm(ctx, model.Film{ID: "f1", NameFilm: "Mai"})
	require.NoError(t, err)
	assert.Equal(t, "Mai", f.NameFilm)

	require.NoError(t, c.DeleteShowtime(ctx, "st1"))

	u, err := c.UpdateUser(ctx, model.User{ID: "u1", Email: "a@b.c", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "inactive", u.Status)
	assert.Contains(t, up.last().Body, `"email":"a@b.c"`)
}
