package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nevskiy911/contacts-api/internal/logging"
	authmw "github.com/Nevskiy911/contacts-api/internal/middleware/auth"
	"github.com/Nevskiy911/contacts-api/internal/service"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email, username and password are required")
	}

	acc, err := h.Svc.Signup(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAccountExists) {
			l.Warn("signup_conflict", "status", 409, "email", req.Email)
			return echo.NewHTTPError(http.StatusConflict, "Account already exists")
		}
		l.Error("signup_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("signup_successful", "email", acc.Email)
	return c.JSON(http.StatusCreated, acc)
}

// Login accepts the OAuth2 password form: the username field carries
// the account email.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	email := c.FormValue("username")
	password := c.FormValue("password")

	pair, err := h.Svc.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			l.Warn("login_failed", "status", 401, "reason", "invalid email")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email")
		case errors.Is(err, service.ErrEmailNotConfirmed):
			l.Warn("login_failed", "status", 401, "reason", "email not confirmed")
			return echo.NewHTTPError(http.StatusUnauthorized, "Email not confirmed")
		case errors.Is(err, service.ErrInvalidPassword):
			l.Warn("login_failed", "status", 401, "reason", "invalid password")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("login_successful")
	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	raw, err := authmw.BearerToken(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	pair, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			l.Warn("refresh_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("refresh_successful")
	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_confirm_email")

	already, err := h.Svc.ConfirmEmail(ctx, c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrVerification) {
			l.Warn("confirm_failed", "status", 400)
			return echo.NewHTTPError(http.StatusBadRequest, "Verification error")
		}
		l.Error("confirm_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if already {
		return c.JSON(http.StatusOK, echo.Map{"message": "Your email is already confirmed"})
	}

	l.Info("email_confirmed")
	return c.JSON(http.StatusOK, echo.Map{"message": "Email confirmed"})
}
