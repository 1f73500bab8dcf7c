package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"study-planner.com/study-planner/internal/auth"
	apperrors "study-planner.com/study-planner/internal/errors"
)

const identityKey = "identity"

type IdentityVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// Authenticate resolves the bearer token to an identity and stores it on the
// context. Requests without a valid token never reach the handler.
func Authenticate(verifier IdentityVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperrors.ErrUnauthenticated
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return apperrors.ErrInvalidToken
			}

			identity, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				return apperrors.ErrInvalidToken
			}

			c.Set(identityKey, *identity)
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) (auth.Identity, bool) {
	identity, ok := c.Get(identityKey).(auth.Identity)
	return identity, ok
}
