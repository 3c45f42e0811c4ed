// Package auth authenticates API callers. Two credential forms are accepted:
// server-to-server API keys, and per-user bearer tokens issued against the
// messaging provider's application secret. Bearer callers get a provider
// session stored on the request context so downstream calls run as that user.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/teleconsult/teleconsult/internal/platform/chatkit"
)

var (
	// ErrMissingCredentials indicates no Authorization header was supplied.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInvalidAPIKey indicates the supplied API key is not configured.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrInvalidToken indicates the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid token")
)

// Config holds the credentials the middleware verifies against.
type Config struct {
	// APIKeys are the accepted server-to-server keys. Empty means API key
	// auth is disabled.
	APIKeys []string

	// SessionSecret signs and verifies user session tokens (HS256).
	SessionSecret []byte
}

// Claims is the session token payload. Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// VerifyToken parses and verifies a session token, returning the user id.
func (cfg Config) VerifyToken(raw string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return cfg.SessionSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (cfg Config) verifyAPIKey(key string) error {
	for _, k := range cfg.APIKeys {
		if k != "" && k == key {
			return nil
		}
	}
	return ErrInvalidAPIKey
}

// Middleware authenticates requests. "ApiKey <key>" grants server-level
// access with no user session. "Bearer <token>" verifies the token and puts
// a chatkit session for the token's user on the request context.
func Middleware(cfg Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, ErrMissingCredentials.Error())
			}

			scheme, credential, found := strings.Cut(header, " ")
			if !found {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			switch strings.ToLower(scheme) {
			case "apikey":
				if err := cfg.verifyAPIKey(credential); err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
				}
				return next(c)

			case "bearer":
				userID, err := cfg.VerifyToken(credential)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
				}
				session := chatkit.Session{UserID: userID, Token: credential}
				ctx := chatkit.NewContext(c.Request().Context(), session)
				c.SetRequest(c.Request().WithContext(ctx))
				c.Set("user_id", userID)
				return next(c)

			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "unsupported authorization scheme")
			}
		}
	}
}
