package handler

import (
	"errors"
	"fmt"
	"net/http"

	"memberbase/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the canonical error envelope for every failure the API
// reports, regardless of which layer detected it.
type ErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeError(c echo.Context, status int, message string, details ...string) error {
	return c.JSON(status, ErrorResponse{
		Status:  status,
		Message: message,
		Errors:  details,
	})
}

func writeValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fieldErr := range verrs {
			details = append(details, fmt.Sprintf("%s: failed on %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return writeError(c, http.StatusBadRequest, "validation failed", details...)
	}
	return writeError(c, http.StatusBadRequest, "validation failed", err.Error())
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateIdentity):
		return writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		return writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		return writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrDiscountNotFound):
		return writeError(c, http.StatusNotFound, err.Error())
	}
	return err
}

// HTTPErrorHandler shapes everything that escapes a handler, including
// middleware rejections, into the canonical envelope.
func HTTPErrorHandler(logger *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		message := "internal server error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}
		if status >= http.StatusInternalServerError && logger != nil {
			logger.WithError(err).Error("request failed")
		}
		_ = c.JSON(status, ErrorResponse{Status: status, Message: message})
	}
}
