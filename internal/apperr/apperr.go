// Package apperr defines the API error taxonomy and its HTTP rendering.
// Every client-caused failure is one of four kinds; anything else is an
// internal error. All errors render as
// {"result": false, "error_type": ..., "error_message": ...}.
package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Kind string

const (
	KindValidation Kind = "validation_error"
	KindAuth       Kind = "auth_error"
	KindPermission Kind = "permission_denied"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal_error"
)

// Error is a terminal request error carrying its taxonomy kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Permission(message string) *Error {
	return &Error{Kind: KindPermission, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// HTTPErrorHandler translates errors into the API error envelope. Install it
// as the Echo error handler so handlers can return errors directly.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	kind := KindInternal
	message := "internal server error"

	var apiErr *Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status()
		kind = apiErr.Kind
		message = apiErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		kind = kindForStatus(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			message = s
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, echo.Map{
		"result":        false,
		"error_type":    kind,
		"error_message": message,
	})
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return KindValidation
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindPermission
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return KindNotFound
	default:
		return KindInternal
	}
}
