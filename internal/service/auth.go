package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/apperr"
	"backoffice/internal/auth"
	"backoffice/internal/models"
	"backoffice/internal/store"
)

// Login failures are deliberately indistinguishable: unknown email,
// inactive account, and bad password all surface this message. The
// unknown-email path still pays for a bcrypt comparison against this
// digest so response timing does not leak which case occurred.
const (
	invalidCredentials = "invalid credentials"
	dummyDigest        = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

type Auth struct {
	store  store.Store
	tokens *auth.TokenManager
	hasher auth.Hasher
	lg     *zap.SugaredLogger
}

func NewAuth(st store.Store, tm *auth.TokenManager, hasher auth.Hasher, lg *zap.SugaredLogger) *Auth {
	return &Auth{store: st, tokens: tm, hasher: hasher, lg: lg}
}

type RegisterParams struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

func (s *Auth) Register(ctx context.Context, p RegisterParams, ip string) (models.PublicUser, string, error) {
	email := canonicalEmail(p.Email)
	if email == "" || p.Password == "" {
		return models.PublicUser{}, "", apperr.Validation("email and password are required")
	}

	hash, err := s.hasher.HashPassword(p.Password)
	if err != nil {
		return models.PublicUser{}, "", apperr.Internal("could not hash password", err)
	}

	now := time.Now()
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	entry := models.ActivityLog{
		UserID:    &u.ID,
		Action:    models.ActionRegister,
		Details:   "User registered",
		IPAddress: ip,
		CreatedAt: now,
	}
	if err := s.store.CreateUserAudited(ctx, &u, &entry); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return models.PublicUser{}, "", apperr.Conflict("user already exists")
		}
		return models.PublicUser{}, "", apperr.Internal("could not create user", err)
	}

	token, err := s.tokens.Sign(auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return models.PublicUser{}, "", apperr.Internal("could not sign token", err)
	}

	s.lg.Infow("user registered", "user_id", u.ID, "email", u.Email)
	return u.Public(), token, nil
}

func (s *Auth) Login(ctx context.Context, email, password, ip string) (models.PublicUser, string, error) {
	email = canonicalEmail(email)
	if email == "" || password == "" {
		return models.PublicUser{}, "", apperr.Validation("email and password are required")
	}

	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = s.hasher.CheckPassword(dummyDigest, password)
			return models.PublicUser{}, "", apperr.Unauthorized(invalidCredentials)
		}
		return models.PublicUser{}, "", apperr.Internal("could not load user", err)
	}
	if !u.IsActive {
		return models.PublicUser{}, "", apperr.Unauthorized(invalidCredentials)
	}
	if err := s.hasher.CheckPassword(u.PasswordHash, password); err != nil {
		return models.PublicUser{}, "", apperr.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.Sign(auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return models.PublicUser{}, "", apperr.Internal("could not sign token", err)
	}

	// The login audit accompanies no row mutation, so a failed insert is
	// reported and logged but does not fail the login itself.
	entry := models.ActivityLog{
		UserID:    &u.ID,
		Action:    models.ActionLogin,
		Details:   "User logged in",
		IPAddress: ip,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendAudit(ctx, &entry); err != nil {
		s.lg.Errorw("login audit write failed", "user_id", u.ID, "error", err)
	}

	s.lg.Infow("user logged in", "user_id", u.ID, "email", u.Email)
	return u.Public(), token, nil
}

// Logout records the event. It cannot invalidate the outstanding claim;
// the caller is expected to discard its stored credential.
func (s *Auth) Logout(ctx context.Context, userID, ip string) error {
	entry := models.ActivityLog{
		UserID:    &userID,
		Action:    models.ActionLogout,
		Details:   "User logged out",
		IPAddress: ip,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendAudit(ctx, &entry); err != nil {
		return apperr.Internal("could not record logout", err)
	}
	s.lg.Infow("user logged out", "user_id", userID)
	return nil
}

// CurrentUser resolves a claim subject to its live account. A valid claim
// can outlive its row; that surfaces as NotFound.
func (s *Auth) CurrentUser(ctx context.Context, userID string) (models.PublicUser, error) {
	u, err := s.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PublicUser{}, apperr.NotFound("user not found")
		}
		return models.PublicUser{}, apperr.Internal("could not load user", err)
	}
	return u.Public(), nil
}

// Email uniqueness is case-insensitive: addresses are lower-cased and
// trimmed here before any store call, so stored values are canonical.
func canonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
