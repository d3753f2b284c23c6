package fetch

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrLoad matches every *LoadError via errors.Is.
var ErrLoad = errors.New("load failure")

// LoadError reports a failed item load. Status is the HTTP status code, or
// zero when the request never produced a response.
type LoadError struct {
	Status int
	Err    error
}

func loadError(status int, err error) *LoadError {
	return &LoadError{Status: status, Err: err}
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("load items (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("load items: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports ErrLoad as a match.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
