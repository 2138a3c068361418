package errors

import "net/http"

var ErrNotDeleted = &Exception{
	Message:    "todo is not deleted",
	StatusCode: http.StatusConflict,
}
