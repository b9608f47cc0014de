package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "ideaboard/internal/errors"
	"ideaboard/internal/model"
)

const (
	identityContextKey = "identity"
	bearerPrefix       = "Bearer "
)

// Authenticator resolves an access token to a user identity.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.Identity, error)
}

// JWTAuth gates a route group behind a bearer access token. The Authorization
// header must be exactly "Bearer <token>". On success the resolved identity is
// available through IdentityFrom; on failure the handler never runs.
func JWTAuth(authenticator Authenticator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":" + bearerPrefix,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			if !exactBearer(c.Request().Header.Get(echo.HeaderAuthorization), token) {
				return nil, errors.New("malformed authorization header")
			}
			return authenticator.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
		},
	})
}

func exactBearer(header, token string) bool {
	if token == "" || strings.ContainsAny(token, " \t") {
		return false
	}
	return header == bearerPrefix+token
}

// IdentityFrom returns the identity attached by JWTAuth.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(*model.Identity)
	if !ok || identity == nil {
		return model.Identity{}, false
	}
	return *identity, true
}

// IdentityHandler is a handler that acts on behalf of an authenticated user.
type IdentityHandler func(c echo.Context, identity model.Identity) error

// WithIdentity adapts an IdentityHandler for routes behind JWTAuth.
func WithIdentity(h IdentityHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return apperrors.ErrUnauthorized
		}
		return h(c, identity)
	}
}
