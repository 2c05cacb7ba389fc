package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// HTTPError is the typed failure every service operation returns. Handlers
// map it to the transport envelope at the boundary; anything that is not an
// HTTPError surfaces as a generic 500.
type HTTPError struct {
	StatusCode int
	Msg        string
}

func (e *HTTPError) Error() string {
	return e.Msg
}

func NewHTTPError(statusCode int, msg string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Msg: msg}
}

func BadRequest(msg string) *HTTPError {
	return NewHTTPError(fiber.StatusBadRequest, msg)
}

func Unauthorized(msg string) *HTTPError {
	return NewHTTPError(fiber.StatusUnauthorized, msg)
}

func Forbidden(msg string) *HTTPError {
	return NewHTTPError(fiber.StatusForbidden, msg)
}

func NotFound(msg string) *HTTPError {
	return NewHTTPError(fiber.StatusNotFound, msg)
}

func Internal(msg string) *HTTPError {
	if msg == "" {
		msg = "Internal Server Error"
	}
	return NewHTTPError(fiber.StatusInternalServerError, msg)
}

// StatusOf extracts the HTTP status carried by err, defaulting to 500.
func StatusOf(err error) (int, string) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, httpErr.Msg
	}
	return fiber.StatusInternalServerError, "Internal Server Error"
}
