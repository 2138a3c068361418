package errors

import "net/http"

var ErrAlreadyDeleted = &Exception{
	Message:    "todo is already deleted",
	StatusCode: http.StatusConflict,
}
