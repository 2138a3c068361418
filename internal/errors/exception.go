package errors

import (
	"errors"
	"net/http"
)

// Exception is a user-facing error carrying the HTTP status a handler should
// answer with. All recoverable core errors are values of this type; anything
// else is treated as fatal for the request.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsUserError reports whether err is a recoverable request-level error.
func IsUserError(err error) bool {
	var appErr *Exception
	return errors.As(err, &appErr)
}
