package form

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

func intPtr(n int) *int { return &n }

func TestIDs(t *testing.T) {
	assert.Equal(t, "showtime_film_1_20250301_1930", ShowtimeID("film_1", "2025-03-01", "19:30"))

	a, b := NewFilmID(), NewFilmID()
	assert.True(t, strings.HasPrefix(a, "film_"))
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(NewUserID(), "user_"))
}

func TestShowtimeForm(t *testing.T) {
	f := ShowtimeForm{FilmID: "film_1", Date: "2025-03-01", Time: "19:30", Price: 90000}
	require.NoError(t, Validator{}.Validate(f))

	st, err := f.Showtime("")
	require.NoError(t, err)
	assert.Equal(t, "showtime_film_1_20250301_1930", st.ID)
	assert.Equal(t, time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC), st.Datetime)
	assert.Equal(t, DefaultCinemaID, st.CinemaID)
	assert.Equal(t, DefaultRoomID, st.RoomID)
	assert.Equal(t, DefaultFormat, st.Format)
	assert.Equal(t, DefaultSeats, st.TotalSeats)
	assert.Equal(t, DefaultSeats, st.AvailableSeats)

	f.TotalSeats, f.AvailableSeats = 96, intPtr(0)
	st, err = f.Showtime("showtime_keep")
	require.NoError(t, err)
	assert.Equal(t, "showtime_keep", st.ID)
	assert.Equal(t, 0, st.AvailableSeats)

	f.AvailableSeats = intPtr(200)
	st, err = f.Showtime("x")
	require.NoError(t, err)
	assert.Equal(t, 96, st.AvailableSeats)
}

func TestShowtimeForm_Invalid(t *testing.T) {
	base := ShowtimeForm{FilmID: "film_1", Date: "2025-03-01", Time: "19:30", Price: 90000}
	tests := map[string]struct {
		mutate func(f *ShowtimeForm)
		field  string
	}{
		"missing film": {func(f *ShowtimeForm) { f.FilmID = "" }, "filmId"},
		"bad date":     {func(f *ShowtimeForm) { f.Date = "01/03/2025" }, "date"},
		"bad time":     {func(f *ShowtimeForm) { f.Time = "7pm" }, "time"},
		"free":         {func(f *ShowtimeForm) { f.Price = 0 }, "price"},
		"discount":     {func(f *ShowtimeForm) { f.Discount = 150 }, "discount"},
		"format":       {func(f *ShowtimeForm) { f.Format = "8K" }, "format"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := base
			tt.mutate(&f)
			err := Validator{}.Validate(f)
			require.Error(t, err)
			assert.Contains(t, FieldErrors(err), tt.field)
		})
	}
}

func TestFilmForm(t *testing.T) {
	body := `{
		"nameFilm": " Mắt Biếc ",
		"description": "Chuyện tình",
		"status": "showing",
		"img": ["https://img/1.jpg", ""],
		"ratedView": {"imdb": 7.5, "user": "8"},
		"infoFilm": {"category": "Tình cảm, Drama,", "cast": ["Trúc Anh", " Trần Nghĩa "], "duration": "117", "rated": "T13", "premiere": "2019-12-20"}
	}`
	var f FilmForm
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	require.NoError(t, Validator{}.Validate(f))

	film := f.Film("")
	assert.True(t, strings.HasPrefix(film.ID, "film_"))
	assert.Equal(t, "Mắt Biếc", film.NameFilm)
	assert.Equal(t, model.FilmShowing, film.Status)
	assert.Equal(t, []string{"https://img/1.jpg"}, film.Img)
	assert.Equal(t, model.Score("7.5"), film.RatedView.IMDb)
	assert.Equal(t, []string{"Tình cảm", "Drama"}, film.InfoFilm.Category)
	assert.Equal(t, []string{"Trúc Anh", "Trần Nghĩa"}, film.InfoFilm.Cast)
	assert.Equal(t, "117 phút", film.InfoFilm.Time)
	assert.Equal(t, "T13", film.InfoFilm.Rating)
	assert.Equal(t, "2019-12-20", film.InfoFilm.ReleaseDate)
	assert.Equal(t, "Chuyện tình", film.InfoFilm.Story)
	assert.True(t, film.InfoFilm.Status)

	assert.Equal(t, "film_7", f.Film("film_7").ID)
}

func TestFilmForm_Invalid(t *testing.T) {
	err := Validator{}.Validate(FilmForm{Status: "archived", Trailer: "not a url", RatedView: RatedViewForm{IMDb: "great"}})
	require.Error(t, err)
	fields := FieldErrors(err)
	assert.Equal(t, "required", fields["nameFilm"])
	assert.Equal(t, "oneof=showing coming", fields["status"])
	assert.Equal(t, "url", fields["trailer"])
	assert.Equal(t, "numeric", fields["ratedView.imdb"])
}

func TestUserForm(t *testing.T) {
	f := UserForm{FullName: "Lê Chi", Email: "chi@mail.com", Role: "user"}
	require.NoError(t, Validator{}.Validate(f))

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	u := f.NewUser(now)
	assert.True(t, strings.HasPrefix(u.ID, "user_"))
	assert.Equal(t, model.StatusActive, u.Status)
	assert.Equal(t, "👤", u.Avatar)
	assert.Equal(t, "2025-03-01T10:00:00.000Z", u.CreatedAt)

	bad := UserForm{FullName: "X", Email: "nope", Role: "root", Phone: "abc"}
	fields := FieldErrors(Validator{}.Validate(bad))
	assert.Contains(t, fields, "fullName")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "role")
	assert.Contains(t, fields, "phone")
}

func TestBookingStatusForm(t *testing.T) {
	assert.NoError(t, Validator{}.Validate(BookingStatusForm{Status: model.BookingConfirmed}))
	assert.Error(t, Validator{}.Validate(BookingStatusForm{Status: "refunded"}))
	assert.Error(t, Validator{}.Validate(BookingStatusForm{}))
}

func TestFieldErrors_NotValidation(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
	assert.Nil(t, FieldErrors(nil))
}
