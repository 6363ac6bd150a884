// Package handler holds the echo handlers of the admin dashboard.  Handlers
// bind and validate input, call a service and map errors to responses; they
// never talk to the upstream directly.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
	"github.com/iliyamo/cinema-admin-dashboard/internal/form"
)

// requestTimeout bounds the upstream work of one request.
const requestTimeout = 10 * time.Second

var errInvalidBody = errors.New("invalid body")

// validationError carries per-field failures of a submitted form.
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string { return "validation failed" }

// bind decodes the request into dst and validates it.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errInvalidBody
	}
	if err := c.Validate(dst); err != nil {
		if fields := form.FieldErrors(err); fields != nil {
			return &validationError{fields: fields}
		}
		return errInvalidBody
	}
	return nil
}

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// fail maps err to a response.  Upstream and unexpected failures are logged
// and answered with a generic notice.
func fail(c echo.Context, log logrus.FieldLogger, err error) error {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.fields})
	case errors.Is(err, errInvalidBody):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	case errors.Is(err, apperr.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, apperr.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	entry := log.WithError(err).WithFields(logrus.Fields{
		"kind":   apperr.Kind(err),
		"method": c.Request().Method,
		"path":   c.Path(),
	})
	if errors.Is(err, apperr.ErrNetworkFailure) {
		entry.Error("upstream request failed")
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "the service is temporarily unavailable, please try again"})
	}
	entry.Error("request failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
