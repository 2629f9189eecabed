package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nevskiy911/contacts-api/internal/models"
	"github.com/Nevskiy911/contacts-api/internal/repo"
	"github.com/Nevskiy911/contacts-api/internal/tokens"
)

const contextAccountKey = "account"

type Middleware struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Service
}

// RequireAuth resolves the current account from the bearer access
// token. Missing, expired, wrong-scope tokens and unknown subjects all
// fail with 401.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := BearerToken(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
		}

		email, err := m.Tokens.Decode(raw, tokens.ScopeAccess)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
		}

		acc, err := m.Repo.AccountByEmail(c.Request().Context(), email)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		c.Set(contextAccountKey, acc)
		return next(c)
	}
}

// RequireRoles allows the request through only when the current
// account's role is in the permitted set. Must run after RequireAuth.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			acc := CurrentAccount(c)
			if acc == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if _, ok := allowed[acc.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Operation forbidden")
			}
			return next(c)
		}
	}
}

func CurrentAccount(c echo.Context) *models.Account {
	if acc, ok := c.Get(contextAccountKey).(*models.Account); ok {
		return acc
	}
	return nil
}

func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", errors.New("missing bearer token")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
