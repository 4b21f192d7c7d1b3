package port_banking

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrSessionExpired = errors.New("banking: session expired")
	ErrNotFound       = errors.New("banking: not found")
	ErrConflict       = errors.New("banking: conflict")
)

// Error is a non-2xx backend response. Message is the backend's own text when
// it sent one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("banking: status %d: %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	default:
		return false
	}
}
