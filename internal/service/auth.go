package service

import (
	"context"
	"errors"
	"time"

	"github.com/Nevskiy911/contacts-api/internal/hash"
	"github.com/Nevskiy911/contacts-api/internal/logging"
	"github.com/Nevskiy911/contacts-api/internal/models"
	"github.com/Nevskiy911/contacts-api/internal/repo"
	"github.com/Nevskiy911/contacts-api/internal/tokens"
)

var (
	ErrAccountExists       = errors.New("account already exists")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrEmailNotConfirmed   = errors.New("email not confirmed")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrVerification        = errors.New("verification error")
)

// ConfirmationSender enqueues a confirmation email. Implementations
// must not block the caller and must swallow delivery failures.
type ConfirmationSender interface {
	SendConfirmation(email, username, verifyURL string)
}

// AvatarFetcher resolves a profile picture URL for an email.
type AvatarFetcher interface {
	Fetch(ctx context.Context, email string) (*string, error)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AuthService struct {
	Repo    *repo.GormRepo
	Tokens  *tokens.Service
	Mailer  ConfirmationSender
	Avatars AvatarFetcher

	BaseURL         string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	VerifyTokenTTL  time.Duration
}

// Signup creates an unconfirmed account and enqueues the confirmation
// email. The gravatar lookup is best effort: its failure leaves the
// avatar empty and never fails the signup.
func (s *AuthService) Signup(ctx context.Context, email, username, password string) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	_, err := s.Repo.AccountByEmail(ctx, email)
	if err == nil {
		return nil, ErrAccountExists
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var avatarURL *string
	if s.Avatars != nil {
		if url, err := s.Avatars.Fetch(ctx, email); err != nil {
			l.Warn("avatar_lookup_failed", "email", email, "error", err)
		} else {
			avatarURL = url
		}
	}

	acc := &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
		Confirmed:    false,
		Avatar:       avatarURL,
	}
	if err := s.Repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, acc)

	return acc, nil
}

// Login checks existence, confirmation and password in that order so
// the handler can report a precise reason. On success a fresh token
// pair is issued and the refresh token stored on the account replaces
// any previous one.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	acc, err := s.Repo.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}

	if !acc.Confirmed {
		return nil, ErrEmailNotConfirmed
	}

	if !hash.CheckPassword(acc.PasswordHash, password) {
		return nil, ErrInvalidPassword
	}

	return s.issueTokenPair(ctx, acc)
}

// Refresh rotates the token pair. A presented token that decodes but
// does not match the stored one is treated as reuse: the stored token
// is cleared so the owner has to log in again.
func (s *AuthService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	email, err := s.Tokens.Decode(presented, tokens.ScopeRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	acc, err := s.Repo.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if acc.RefreshToken == nil || *acc.RefreshToken != presented {
		l.Warn("refresh_token_mismatch", "email", email)
		if err := s.Repo.UpdateRefreshToken(ctx, acc, nil); err != nil {
			return nil, err
		}
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokenPair(ctx, acc)
}

// ConfirmEmail flips the confirmed flag exactly once. Replaying the
// token for an already confirmed account is a no-op.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	email, err := s.Tokens.Decode(token, tokens.ScopeEmailVerify)
	if err != nil {
		return false, ErrVerification
	}

	acc, err := s.Repo.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrVerification
		}
		return false, err
	}

	if acc.Confirmed {
		return true, nil
	}

	if err := s.Repo.ConfirmEmail(ctx, email); err != nil {
		return false, err
	}

	return false, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, acc *models.Account) (*TokenPair, error) {
	access, err := s.Tokens.Create(acc.Email, tokens.ScopeAccess, s.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := s.Tokens.Create(acc.Email, tokens.ScopeRefresh, s.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateRefreshToken(ctx, acc, &refresh); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, acc *models.Account) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if s.Mailer == nil {
		return
	}

	token, err := s.Tokens.Create(acc.Email, tokens.ScopeEmailVerify, s.VerifyTokenTTL)
	if err != nil {
		l.Error("verify_token_create_failed", "email", acc.Email, "error", err)
		return
	}

	s.Mailer.SendConfirmation(acc.Email, acc.Username, s.BaseURL+"/auth/confirmed_email/"+token)
}
