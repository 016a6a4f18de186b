package server

import "fmt"

// requestError carries the HTTP status a failed request is answered with.
type requestError struct {
	status int
	err    error
}

func newRequestError(status int, format string, a ...any) *requestError {
	return &requestError{
		status: status,
		err:    fmt.Errorf(format, a...),
	}
}

func (e *requestError) Error() string {
	return e.err.Error()
}

func (e *requestError) Unwrap() error {
	return e.err
}
