package errors

import "net/http"

var ErrUnauthenticated = &Exception{
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidToken = &Exception{
	Message:    "invalid or expired token",
	StatusCode: http.StatusUnauthorized,
}

var ErrRateLimited = &Exception{
	Message:    "rate limit exceeded",
	StatusCode: http.StatusTooManyRequests,
}
