package errors

import "net/http"

var ErrEmptyTitle = &Exception{
	Message:    "title is required",
	StatusCode: http.StatusBadRequest,
}
