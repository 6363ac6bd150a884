package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-dashboard/internal/form"
	"github.com/iliyamo/cinema-admin-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-admin-dashboard/internal/service"
)

// CatalogHandler serves the dashboard, film, showtime and user pages.
type CatalogHandler struct {
	Catalog *service.CatalogService
	Log     logrus.FieldLogger
}

func NewCatalogHandler(catalog *service.CatalogService, log logrus.FieldLogger) *CatalogHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogHandler{Catalog: catalog, Log: log}
}

// Dashboard handles GET /admin/dashboard.
func (h *CatalogHandler) Dashboard(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	d, err := h.Catalog.Dashboard(ctx)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, d)
}

// ---- Films ----

// ListFilms handles GET /admin/films?q=&status=.
func (h *CatalogHandler) ListFilms(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	page, err := h.Catalog.ListFilms(ctx, c.QueryParam("q"), c.QueryParam("status"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) CreateFilm(c echo.Context) error {
	var in form.FilmForm
	if err := bind(c, &in); err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	f, err := h.Catalog.CreateFilm(ctx, in)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *CatalogHandler) UpdateFilm(c echo.Context) error {
	var in form.FilmForm
	if err := bind(c, &in); err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	f, err := h.Catalog.UpdateFilm(ctx, c.Param("id"), in)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, f)
}

// ToggleFilm handles POST /admin/films/:id/toggle-status.
func (h *CatalogHandler) ToggleFilm(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	f, err := h.Catalog.ToggleFilmStatus(ctx, c.Param("id"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *CatalogHandler) DeleteFilm(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Catalog.DeleteFilm(ctx, c.Param("id")); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- Showtimes ----

// ListShowtimes handles GET /admin/showtimes?filmId=.
func (h *CatalogHandler) ListShowtimes(c echo.Context) error {
	return h.showtimes(c, c.QueryParam("filmId"))
}

// FilmShowtimes handles GET /admin/films/:id/showtimes.
func (h *CatalogHandler) FilmShowtimes(c echo.Context) error {
	return h.showtimes(c, c.Param("id"))
}

func (h *CatalogHandler) showtimes(c echo.Context, filmID string) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	page, err := h.Catalog.ListShowtimes(ctx, filmID)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) CreateShowtime(c echo.Context) error {
	var in form.ShowtimeForm
	if err := bind(c, &in); err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	st, err := h.Catalog.CreateShowtime(ctx, in)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, st)
}

func (h *CatalogHandler) UpdateShowtime(c echo.Context) error {
	var in form.ShowtimeForm
	if err := bind(c, &in); err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	st, err := h.Catalog.UpdateShowtime(ctx, c.Param("id"), in)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *CatalogHandler) DeleteShowtime(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Catalog.DeleteShowtime(ctx, c.Param("id")); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- Users ----

// ListUsers handles GET /admin/users?q=&role=.
func (h *CatalogHandler) ListUsers(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	page, err := h.Catalog.ListUsers(ctx, c.QueryParam("q"), c.QueryParam("role"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) GetUser(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	u, err := h.Catalog.GetUser(ctx, c.Param("id"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *CatalogHandler) CreateUser(c echo.Context) error {
	var in form.UserForm
	if err := bind(c, &in); err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	u, err := h.Catalog.CreateUser(ctx, in)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *CatalogHandler) UpdateUser(c echo.Context) error {
	var in form.UserForm
	if err := bind(c, &in); err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	u, err := h.Catalog.UpdateUser(ctx, c.Param("id"), in)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u)
}

// ToggleUser handles POST /admin/users/:id/toggle-status.
func (h *CatalogHandler) ToggleUser(c echo.Context) error {
	actor, _ := middleware.Principal(c)
	ctx, cancel := requestContext(c)
	defer cancel()
	u, err := h.Catalog.ToggleUserStatus(ctx, actor, c.Param("id"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *CatalogHandler) DeleteUser(c echo.Context) error {
	actor, _ := middleware.Principal(c)
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Catalog.DeleteUser(ctx, actor, c.Param("id")); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
