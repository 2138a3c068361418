package errors

import "net/http"

var ErrDuplicateTitle = &Exception{
	Message:    "a todo with this title already exists",
	StatusCode: http.StatusBadRequest,
}
