package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors for the failure taxonomy. Services wrap these with
// fmt.Errorf("context: %w", ...) and controllers map them back to HTTP
// status codes with StatusCode.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrStore           = errors.New("store failure")
)

// StatusCode maps an error to its HTTP status. Unknown errors are treated
// as store/internal failures.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
