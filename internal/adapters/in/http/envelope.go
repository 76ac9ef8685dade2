package http

import (
	"errors"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/booking"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response wrapper. Data is set on success, Errors on
// batch validation failures, Error on any other failure.
type Envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

func respond(ctx echo.Context, status int, data any, message string) error {
	return ctx.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Path:      ctx.Request().URL.Path,
	})
}

// respondError maps a domain error to the HTTP surface. Validation problems,
// invalid transitions, state conflicts, and capacity violations are client
// errors; authorization failures, including a wrong workflow context, are
// forbidden; unknown errors stay generic so internals never leak.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"
	var violations []string

	var batchErr *commands.BatchValidationError
	switch {
	case errors.As(err, &batchErr):
		status = http.StatusBadRequest
		message = "batch validation failed"
		violations = batchErr.Violations
	case errors.Is(err, booking.ErrWrongWorkflowContext):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrStateConflict),
		errors.Is(err, errs.ErrCapacityExceeded):
		status = http.StatusBadRequest
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
	}

	return ctx.JSON(status, Envelope{
		Success:   false,
		Error:     message,
		Errors:    violations,
		Timestamp: time.Now().UTC(),
		Path:      ctx.Request().URL.Path,
	})
}
