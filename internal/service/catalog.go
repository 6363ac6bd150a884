package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
	"github.com/iliyamo/cinema-admin-dashboard/internal/form"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/utils"
	"github.com/iliyamo/cinema-admin-dashboard/internal/view"
)

type FilmPage struct {
	Films  []model.Film    `json:"films"`
	Counts view.FilmCounts `json:"counts"`
}

type ShowtimePage struct {
	Films     []model.Film     `json:"films"`
	FilmID    string           `json:"filmId,omitempty"`
	Showtimes []model.Showtime `json:"showtimes"`
}

type UserPage struct {
	Users  []model.User    `json:"users"`
	Counts view.UserCounts `json:"counts"`
}

// CatalogService manages films, showtimes and user accounts, and builds the
// dashboard summary.  Passwords written through it are bcrypt-hashed when
// bcryptCost is positive and stored as given otherwise.
type CatalogService struct {
	api        Upstream
	bcryptCost int
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewCatalogService(api Upstream, bcryptCost int, log logrus.FieldLogger) *CatalogService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogService{api: api, bcryptCost: bcryptCost, log: log, now: time.Now}
}

// Dashboard fetches users, films and bookings in parallel and summarises them.
func (s *CatalogService) Dashboard(ctx context.Context) (view.Dashboard, error) {
	var (
		users    []model.User
		films    []model.Film
		bookings []model.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.api.ListUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		films, err = s.api.ListFilms(gctx)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = s.api.ListBookings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return view.Dashboard{}, err
	}
	return view.BuildDashboard(users, films, bookings, s.now()), nil
}

// ---- Films ----

func (s *CatalogService) ListFilms(ctx context.Context, term, status string) (FilmPage, error) {
	films, err := s.api.ListFilms(ctx)
	if err != nil {
		return FilmPage{}, err
	}
	return FilmPage{Films: view.FilterFilms(films, term, status), Counts: view.CountFilms(films)}, nil
}

func (s *CatalogService) CreateFilm(ctx context.Context, f form.FilmForm) (model.Film, error) {
	return s.api.CreateFilm(ctx, f.Film(""))
}

func (s *CatalogService) UpdateFilm(ctx context.Context, id string, f form.FilmForm) (model.Film, error) {
	return s.api.UpdateFilm(ctx, f.Film(id))
}

func (s *CatalogService) DeleteFilm(ctx context.Context, id string) error {
	return s.api.DeleteFilm(ctx, id)
}

// ToggleFilmStatus flips a film between showing and coming and writes the
// full record back.  infoFilm.status follows the new status.
func (s *CatalogService) ToggleFilmStatus(ctx context.Context, id string) (model.Film, error) {
	films, err := s.api.ListFilms(ctx)
	if err != nil {
		return model.Film{}, err
	}
	for _, f := range films {
		if f.ID != id {
			continue
		}
		f.Status = f.Status.Toggle()
		f.InfoFilm.Status = f.Status == model.FilmShowing
		return s.api.UpdateFilm(ctx, f)
	}
	return model.Film{}, apperr.ErrNotFound
}

// ---- Showtimes ----

// ListShowtimes returns the film picker and the showtimes of filmID, or
// every showtime when filmID is empty.
func (s *CatalogService) ListShowtimes(ctx context.Context, filmID string) (ShowtimePage, error) {
	var (
		films     []model.Film
		showtimes []model.Showtime
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		films, err = s.api.ListFilms(gctx)
		return err
	})
	g.Go(func() (err error) {
		showtimes, err = s.api.ListShowtimes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return ShowtimePage{}, err
	}
	page := ShowtimePage{Films: films, FilmID: filmID, Showtimes: showtimes}
	if filmID != "" {
		page.Showtimes = view.FilmShowtimes(showtimes, filmID)
	}
	return page, nil
}

func (s *CatalogService) CreateShowtime(ctx context.Context, f form.ShowtimeForm) (model.Showtime, error) {
	st, err := f.Showtime("")
	if err != nil {
		return model.Showtime{}, err
	}
	return s.api.CreateShowtime(ctx, st)
}

func (s *CatalogService) UpdateShowtime(ctx context.Context, id string, f form.ShowtimeForm) (model.Showtime, error) {
	st, err := f.Showtime(id)
	if err != nil {
		return model.Showtime{}, err
	}
	return s.api.UpdateShowtime(ctx, st)
}

func (s *CatalogService) DeleteShowtime(ctx context.Context, id string) error {
	return s.api.DeleteShowtime(ctx, id)
}

// ---- Users ----

// ListUsers filters users by term and role.  Passwords are stripped.
func (s *CatalogService) ListUsers(ctx context.Context, term, role string) (UserPage, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return UserPage{}, err
	}
	return UserPage{Users: view.UserViews(view.FilterUsers(users, term, role)), Counts: view.CountUsers(users)}, nil
}

func (s *CatalogService) GetUser(ctx context.Context, id string) (model.User, error) {
	u, err := s.api.GetUser(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	return view.UserView(u), nil
}

func (s *CatalogService) CreateUser(ctx context.Context, f form.UserForm) (model.User, error) {
	u := f.NewUser(s.now())
	if err := s.storePassword(&u); err != nil {
		return model.User{}, err
	}
	created, err := s.api.CreateUser(ctx, u)
	if err != nil {
		return model.User{}, err
	}
	return view.UserView(created), nil
}

// UpdateUser merges the non-empty form fields over the stored record and
// replaces it upstream.
func (s *CatalogService) UpdateUser(ctx context.Context, id string, f form.UserForm) (model.User, error) {
	existing, err := s.api.GetUser(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	if err := copier.CopyWithOption(&existing, &f, copier.Option{IgnoreEmpty: true}); err != nil {
		return model.User{}, fmt.Errorf("merge user: %w", err)
	}
	existing.ID = id
	if f.Password != "" {
		if err := s.storePassword(&existing); err != nil {
			return model.User{}, err
		}
	}
	updated, err := s.api.UpdateUser(ctx, existing)
	if err != nil {
		return model.User{}, err
	}
	return view.UserView(updated), nil
}

// ToggleUserStatus flips active/inactive on the stored record.
func (s *CatalogService) ToggleUserStatus(ctx context.Context, actor model.Principal, id string) (model.User, error) {
	existing, err := s.api.GetUser(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if existing.ID == actor.ID {
		return model.User{}, apperr.ErrForbidden
	}
	existing.Status = existing.ToggledStatus()
	updated, err := s.api.UpdateUser(ctx, existing)
	if err != nil {
		return model.User{}, err
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "status": updated.Status, "by": actor.ID}).Info("user status changed")
	return view.UserView(updated), nil
}

// DeleteUser removes a customer account.  Admin accounts are never deleted
// from the dashboard.
func (s *CatalogService) DeleteUser(ctx context.Context, actor model.Principal, id string) error {
	existing, err := s.api.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if existing.Role == model.RoleAdmin || existing.ID == actor.ID {
		return apperr.ErrForbidden
	}
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "by": actor.ID}).Info("user deleted")
	return nil
}

func (s *CatalogService) storePassword(u *model.User) error {
	if u.Password == "" || s.bcryptCost <= 0 || utils.IsBcryptHash(u.Password) {
		return nil
	}
	hash, err := utils.HashPassword(u.Password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash
	return nil
}
