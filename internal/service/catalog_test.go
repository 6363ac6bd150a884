package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
	"github.com/iliyamo/cinema-admin-dashboard/internal/form"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/utils"
)

func TestCatalogService_Dashboard(t *testing.T) {
	_, client := seeded(t)
	s := NewCatalogService(client, 0, nil)
	s.now = func() time.Time { return testNow }

	d, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, d.Stats.TotalUsers)
	assert.Equal(t, 2, d.Stats.TotalFilms)
	assert.Equal(t, 3, d.Stats.TotalBookings)
	assert.Equal(t, 1, d.Stats.TodayBookings)
	assert.Equal(t, float64(360000), d.Stats.TotalRevenue)
	require.NotEmpty(t, d.PopularFilms)
	assert.Equal(t, "f1", d.PopularFilms[0].ID)
	assert.Equal(t, 3, d.PopularFilms[0].BookingCount)
	require.Len(t, d.RecentBookings, 3)
	assert.Equal(t, "b1", d.RecentBookings[0].ID)
}

func TestCatalogService_DashboardUpstreamFailure(t *testing.T) {
	srv, client := seeded(t)
	srv.Fail("GET /users", http.StatusInternalServerError)
	_, err := NewCatalogService(client, 0, nil).Dashboard(context.Background())
	assert.ErrorIs(t, err, apperr.ErrNetworkFailure)
}

func TestCatalogService_ToggleFilmStatus(t *testing.T) {
	srv, client := seeded(t)
	s := NewCatalogService(client, 0, nil)

	f, err := s.ToggleFilmStatus(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, model.FilmComing, f.Status)

	var stored model.Film
	require.True(t, srv.Record(t, "films", "f1", &stored))
	assert.Equal(t, model.FilmComing, stored.Status)
	assert.False(t, stored.InfoFilm.Status)
	assert.Equal(t, "Mắt Biếc", stored.NameFilm)

	f, err = s.ToggleFilmStatus(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, model.FilmShowing, f.Status)
	assert.True(t, f.InfoFilm.Status)

	_, err = s.ToggleFilmStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCatalogService_Films(t *testing.T) {
	srv, client := seeded(t)
	s := NewCatalogService(client, 0, nil)
	ctx := context.Background()

	page, err := s.ListFilms(ctx, "mat bie", "all")
	require.NoError(t, err)
	require.Len(t, page.Films, 1)
	assert.Equal(t, 2, page.Counts.Total)
	assert.Equal(t, 1, page.Counts.Coming)

	created, err := s.CreateFilm(ctx, form.FilmForm{NameFilm: "Đào, Phở và Piano", Status: "coming"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "film_"))
	assert.Equal(t, 3, srv.Len("films"))

	updated, err := s.UpdateFilm(ctx, created.ID, form.FilmForm{NameFilm: "Đào, Phở và Piano", Status: "showing"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.InfoFilm.Status)

	require.NoError(t, s.DeleteFilm(ctx, created.ID))
	assert.Equal(t, 2, srv.Len("films"))
}

func TestCatalogService_Showtimes(t *testing.T) {
	srv, client := seeded(t)
	s := NewCatalogService(client, 0, nil)
	ctx := context.Background()

	page, err := s.ListShowtimes(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, page.Films, 2)
	require.Len(t, page.Showtimes, 2)
	assert.Equal(t, "st2", page.Showtimes[0].ID)

	st, err := s.CreateShowtime(ctx, form.ShowtimeForm{FilmID: "f2", Date: "2025-03-05", Time: "20:15", Price: 80000})
	require.NoError(t, err)
	assert.Equal(t, "showtime_f2_20250305_2015", st.ID)
	assert.Equal(t, 4, srv.Len("showtimes"))

	st, err = s.UpdateShowtime(ctx, st.ID, form.ShowtimeForm{FilmID: "f2", Date: "2025-03-05", Time: "21:00", Price: 85000, Format: "IMAX"})
	require.NoError(t, err)
	assert.Equal(t, "showtime_f2_20250305_2015", st.ID, "id kept on edit")
	assert.Equal(t, "IMAX", st.Format)

	require.NoError(t, s.DeleteShowtime(ctx, st.ID))
	assert.Equal(t, 3, srv.Len("showtimes"))
}

func TestCatalogService_Users(t *testing.T) {
	srv, client := seeded(t)
	s := NewCatalogService(client, 4, nil)
	s.now = func() time.Time { return testNow }
	ctx := context.Background()

	page, err := s.ListUsers(ctx, "", "all")
	require.NoError(t, err)
	require.Len(t, page.Users, 2)
	for _, u := range page.Users {
		assert.Empty(t, u.Password, "passwords never leave the service")
	}
	assert.Equal(t, 1, page.Counts.Admins)

	created, err := s.CreateUser(ctx, form.UserForm{FullName: "Phạm Dũng", Email: "dung@mail.com", Password: "hunter22", Role: "user"})
	require.NoError(t, err)
	assert.Empty(t, created.Password)
	assert.Equal(t, "👤", created.Avatar)

	var stored model.User
	require.True(t, srv.Record(t, "users", created.ID, &stored))
	assert.True(t, utils.IsBcryptHash(stored.Password))
	assert.True(t, utils.MatchStoredPassword(stored.Password, "hunter22"))

	// Empty fields keep their stored values.
	updated, err := s.UpdateUser(ctx, "u2", form.UserForm{FullName: "Nguyễn Văn An", Email: "an@mail.com", Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn An", updated.FullName)
	assert.Equal(t, "0901234567", updated.Phone)
	require.True(t, srv.Record(t, "users", "u2", &stored))
	assert.Equal(t, "pw123456", stored.Password)

	_, err = s.UpdateUser(ctx, "u2", form.UserForm{FullName: "Nguyễn Văn An", Email: "an@mail.com", Role: "user", Password: "newpass1"})
	require.NoError(t, err)
	require.True(t, srv.Record(t, "users", "u2", &stored))
	assert.True(t, utils.MatchStoredPassword(stored.Password, "newpass1"))

	_, err = s.UpdateUser(ctx, "ghost", form.UserForm{FullName: "X Y", Email: "x@y.z", Role: "user"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCatalogService_PlaintextPasswordsWhenCostIsZero(t *testing.T) {
	srv, client := seeded(t)
	s := NewCatalogService(client, 0, nil)
	created, err := s.CreateUser(context.Background(), form.UserForm{FullName: "Phạm Dũng", Email: "dung@mail.com", Password: "hunter22", Role: "user"})
	require.NoError(t, err)

	var stored model.User
	require.True(t, srv.Record(t, "users", created.ID, &stored))
	assert.Equal(t, "hunter22", stored.Password)
}

func TestCatalogService_ToggleUserStatus(t *testing.T) {
	srv, client := seeded(t)
	s := NewCatalogService(client, 0, nil)
	ctx := context.Background()

	u, err := s.ToggleUserStatus(ctx, testAdmin, "u2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, u.Status)

	var stored model.User
	require.True(t, srv.Record(t, "users", "u2", &stored))
	assert.Equal(t, model.StatusInactive, stored.Status)
	assert.Equal(t, "an@mail.com", stored.Email, "full record written back")
	assert.Equal(t, "pw123456", stored.Password)

	u, err = s.ToggleUserStatus(ctx, testAdmin, "u2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, u.Status)

	_, err = s.ToggleUserStatus(ctx, testAdmin, "u1")
	assert.ErrorIs(t, err, apperr.ErrForbidden, "admins cannot lock themselves out")
}

func TestCatalogService_DeleteUser(t *testing.T) {
	srv, client := seeded(t)
	s := NewCatalogService(client, 0, nil)
	ctx := context.Background()

	assert.ErrorIs(t, s.DeleteUser(ctx, testAdmin, "u1"), apperr.ErrForbidden)
	assert.Equal(t, 2, srv.Len("users"))

	require.NoError(t, s.DeleteUser(ctx, testAdmin, "u2"))
	assert.Equal(t, 1, srv.Len("users"))

	assert.ErrorIs(t, s.DeleteUser(ctx, testAdmin, "u2"), apperr.ErrNotFound)
}
