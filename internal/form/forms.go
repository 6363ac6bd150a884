package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v3"

	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
)

// Defaults applied when the showtime form leaves a field empty.
const (
	DefaultCinemaID = "cinema_default"
	DefaultRoomID   = "room_1"
	DefaultFormat   = "2D"
	DefaultLanguage = "Phụ đề Việt"
	DefaultSeats    = 120

	defaultUserAvatar = "👤"
)

func NewFilmID() string { return "film_" + shortuuid.New() }

func NewUserID() string { return "user_" + shortuuid.New() }

// ShowtimeID composes showtime_<film>_<yyyymmdd>_<hhmm> from the form's date
// (YYYY-MM-DD) and time (HH:MM).
func ShowtimeID(filmID, date, clock string) string {
	return fmt.Sprintf("showtime_%s_%s_%s", filmID, strings.ReplaceAll(date, "-", ""), strings.ReplaceAll(clock, ":", ""))
}

type LoginForm struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type BookingStatusForm struct {
	Status model.BookingStatus `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type RatedViewForm struct {
	IMDb model.Score `json:"imdb" validate:"omitempty,numeric"`
	User model.Score `json:"user" validate:"omitempty,numeric"`
}

type InfoFilmForm struct {
	Category List   `json:"category"`
	Duration string `json:"duration" validate:"omitempty,numeric"` // minutes
	Director string `json:"director" validate:"max=200"`
	Cast     List   `json:"cast"`
	Language string `json:"language" validate:"max=100"`
	Subtitle string `json:"subtitle" validate:"max=100"`
	Rated    string `json:"rated" validate:"max=10"`
	Premiere string `json:"premiere" validate:"omitempty,datetime=2006-01-02"`
	Country  string `json:"country" validate:"max=100"`
}

type FilmForm struct {
	NameFilm    string        `json:"nameFilm" validate:"required,max=200"`
	Description string        `json:"description" validate:"max=5000"`
	Status      string        `json:"status" validate:"required,oneof=showing coming"`
	Img         []string      `json:"img" validate:"dive,max=2048"`
	SubImg      []string      `json:"subImg" validate:"dive,max=2048"`
	Trailer     string        `json:"trailer" validate:"omitempty,url"`
	Release     string        `json:"release" validate:"max=50"`
	RatedView   RatedViewForm `json:"ratedView"`
	InfoFilm    InfoFilmForm  `json:"infoFilm"`
}

// Film builds the upstream record.  An empty id allocates a new one.
func (f FilmForm) Film(id string) model.Film {
	if id == "" {
		id = NewFilmID()
	}
	status := model.FilmStatus(f.Status)
	info := model.InfoFilm{
		Category:    []string(f.InfoFilm.Category),
		Duration:    f.InfoFilm.Duration,
		Director:    f.InfoFilm.Director,
		Cast:        []string(f.InfoFilm.Cast),
		Language:    f.InfoFilm.Language,
		Subtitle:    f.InfoFilm.Subtitle,
		Rating:      f.InfoFilm.Rated,
		ReleaseDate: f.InfoFilm.Premiere,
		Story:       f.Description,
		Country:     f.InfoFilm.Country,
		Status:      status == model.FilmShowing,
	}
	if f.InfoFilm.Duration != "" {
		info.Time = f.InfoFilm.Duration + " phút"
	}
	return model.Film{
		ID:           id,
		NameFilm:     strings.TrimSpace(f.NameFilm),
		VideoTrailer: f.Trailer,
		Release:      f.Release,
		Img:          nonEmpty(f.Img),
		SubImg:       nonEmpty(f.SubImg),
		Status:       status,
		RatedView:    model.RatedView{IMDb: f.RatedView.IMDb, User: f.RatedView.User},
		InfoFilm:     info,
	}
}

type ShowtimeForm struct {
	FilmID         string `json:"filmId" validate:"required"`
	CinemaID       string `json:"cinemaId"`
	RoomID         string `json:"roomId"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,datetime=15:04"`
	Price          int    `json:"price" validate:"gt=0"`
	Discount       int    `json:"discount" validate:"min=0,max=100"`
	Format         string `json:"format" validate:"omitempty,oneof=2D 3D IMAX 4DX"`
	Language       string `json:"language" validate:"max=100"`
	TotalSeats     int    `json:"totalSeats" validate:"min=0"`
	AvailableSeats *int   `json:"availableSeats" validate:"omitempty,min=0"`
}

// Showtime builds the upstream record.  An empty id composes one from the
// film, date and time.  The start is the form's date and time read as UTC.
func (f ShowtimeForm) Showtime(id string) (model.Showtime, error) {
	start, err := time.Parse(time.RFC3339, f.Date+"T"+f.Time+":00Z")
	if err != nil {
		return model.Showtime{}, fmt.Errorf("showtime start: %w", err)
	}
	if id == "" {
		id = ShowtimeID(f.FilmID, f.Date, f.Time)
	}
	total := f.TotalSeats
	if total == 0 {
		total = DefaultSeats
	}
	available := total
	if f.AvailableSeats != nil {
		available = *f.AvailableSeats
	}
	if available > total {
		available = total
	}
	return model.Showtime{
		ID:             id,
		FilmID:         f.FilmID,
		CinemaID:       orDefault(f.CinemaID, DefaultCinemaID),
		RoomID:         orDefault(f.RoomID, DefaultRoomID),
		Datetime:       start,
		Price:          f.Price,
		Discount:       f.Discount,
		Format:         orDefault(f.Format, DefaultFormat),
		Language:       orDefault(f.Language, DefaultLanguage),
		AvailableSeats: available,
		TotalSeats:     total,
	}, nil
}

// UserForm is used for both create and edit.  On edit, empty fields keep the
// stored value.
type UserForm struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,numeric,min=8,max=15"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
	Avatar   string `json:"avatar" validate:"max=2048"`
}

// NewUser builds the record for a create.  createdAt is stamped from now.
func (f UserForm) NewUser(now time.Time) model.User {
	return model.User{
		ID:        NewUserID(),
		FullName:  strings.TrimSpace(f.FullName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     f.Phone,
		Password:  f.Password,
		Role:      f.Role,
		Status:    orDefault(f.Status, model.StatusActive),
		Avatar:    orDefault(f.Avatar, defaultUserAvatar),
		CreatedAt: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
