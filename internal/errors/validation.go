package errors

import "net/http"

var ErrTitleRequired = &Exception{
	Message:    "task title is required",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidStatus = &Exception{
	Message:    "invalid status",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidPriority = &Exception{
	Message:    "invalid priority",
	StatusCode: http.StatusBadRequest,
}

var ErrEmptyUpdate = &Exception{
	Message:    "no fields to update",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidJSON = &Exception{
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}

func Validation(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusBadRequest}
}
