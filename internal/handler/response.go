package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/alecruz/nacho-backend/internal/repository"
	"github.com/alecruz/nacho-backend/pkg/logger"
	"github.com/alecruz/nacho-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Every response carries the {ok, ...} envelope: data on success, error on
// failure, code+message on uniqueness conflicts.

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"ok": true, "data": data})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"ok": false, "error": message})
}

func respondConflict(c echo.Context, dup *repository.DuplicateError) error {
	prometheus.RecordConflict(dup.Code)
	return c.JSON(http.StatusConflict, echo.Map{"ok": false, "code": dup.Code, "message": dup.Message})
}

// respondRepoError maps repository errors to the HTTP taxonomy: ErrNotFound
// to 404 (cross-tenant rows included), DuplicateError to 409, anything else
// to a logged 500 with no internals exposed.
func respondRepoError(c echo.Context, err error, notFoundMsg string) error {
	var dup *repository.DuplicateError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return respondError(c, http.StatusNotFound, notFoundMsg)
	case errors.As(err, &dup):
		return respondConflict(c, dup)
	default:
		logger.FromContext(c).Error("Unexpected storage error", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Error interno del servidor")
	}
}

// ErrorHandler turns unmatched routes and unhandled errors into the JSON
// envelope; internals are logged, never returned to the caller.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
			_ = c.JSON(http.StatusNotFound, echo.Map{"ok": false, "error": "Ruta no encontrada"})
			return
		}
	}

	logger.FromContext(c).Error("Unhandled error", zap.Error(err))
	_ = c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "error": "Error interno del servidor"})
}

// parseID parses a positive integer path parameter
func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// trimRequired trims a mandatory string, reporting whether it is non-empty
func trimRequired(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// trimOptional normalizes an optional string: trimmed, blank becomes NULL
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// validSuperficie reports whether the value is a finite number greater than
// zero. JSON binding already rejects non-numeric input.
func validSuperficie(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
