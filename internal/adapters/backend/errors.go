package backend

import (
	"errors"
	"fmt"
)

type BackendError struct {
	Endpoint   string
	Message    string
	StatusCode int
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error [%s]: %s (status: %d)", e.Endpoint, e.Message, e.StatusCode)
}

func IsBackendError(err error) (*BackendError, bool) {
	var backendErr *BackendError
	ok := errors.As(err, &backendErr)
	return backendErr, ok
}
