package errors

import "net/http"

var ErrNoChange = &Exception{
	Message:    "no changes detected",
	StatusCode: http.StatusBadRequest,
}
