package errors

import (
	"errors"
	"net/http"
)

// Exception is an error a client is allowed to see, paired with the HTTP
// status it renders as.
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

// PublicMessage returns the message for err that is safe to show a user.
// Anything that is not an Exception collapses to fallback.
func PublicMessage(err error, fallback string) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
