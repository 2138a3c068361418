package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "todo not found",
	StatusCode: http.StatusNotFound,
}
