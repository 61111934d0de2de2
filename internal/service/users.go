package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/apperr"
	"backoffice/internal/auth"
	"backoffice/internal/models"
	"backoffice/internal/store"
)

// Users implements the audited administration flow. Role enforcement
// happens at the router via the access gate; these methods assume the
// caller was already admitted.
type Users struct {
	store  store.Store
	hasher auth.Hasher
	lg     *zap.SugaredLogger
}

func NewUsers(st store.Store, hasher auth.Hasher, lg *zap.SugaredLogger) *Users {
	return &Users{store: st, hasher: hasher, lg: lg}
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func (s *Users) List(ctx context.Context, p store.ListParams) ([]models.PublicUser, Pagination, error) {
	p = p.Normalized()
	users, total, err := s.store.ListUsers(ctx, p)
	if err != nil {
		return nil, Pagination{}, apperr.Internal("could not list users", err)
	}
	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: (total + int64(p.PageSize) - 1) / int64(p.PageSize),
	}, nil
}

func (s *Users) GetByID(ctx context.Context, id string) (models.PublicUser, error) {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PublicUser{}, apperr.NotFound("user not found")
		}
		return models.PublicUser{}, apperr.Internal("could not load user", err)
	}
	return u.Public(), nil
}

type CreateUserParams struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	Role      string
}

func (s *Users) Create(ctx context.Context, p CreateUserParams, adminID, ip string) (models.PublicUser, error) {
	email := canonicalEmail(p.Email)
	if email == "" || p.Password == "" {
		return models.PublicUser{}, apperr.Validation("email and password are required")
	}
	role := p.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return models.PublicUser{}, apperr.Validation("invalid role")
	}

	hash, err := s.hasher.HashPassword(p.Password)
	if err != nil {
		return models.PublicUser{}, apperr.Internal("could not hash password", err)
	}

	now := time.Now()
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	entry := models.ActivityLog{
		UserID:    &adminID,
		Action:    models.ActionCreateUser,
		Details:   fmt.Sprintf("Created user: %s", email),
		IPAddress: ip,
		CreatedAt: now,
	}
	if err := s.store.CreateUserAudited(ctx, &u, &entry); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return models.PublicUser{}, apperr.Conflict("user already exists")
		}
		return models.PublicUser{}, apperr.Internal("could not create user", err)
	}

	s.lg.Infow("user created", "user_id", u.ID, "email", email, "admin_id", adminID)
	return u.Public(), nil
}

// Update applies only the fields the caller explicitly provided. An
// explicit null for first or last name clears the column; an absent key
// leaves it alone. UpdatedAt always moves forward.
func (s *Users) Update(ctx context.Context, id string, in models.UserUpdate, adminID, ip string) (models.PublicUser, error) {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PublicUser{}, apperr.NotFound("user not found")
		}
		return models.PublicUser{}, apperr.Internal("could not load user", err)
	}

	if in.Email.Set {
		email := canonicalEmail(in.Email.Value)
		if email == "" {
			return models.PublicUser{}, apperr.Validation("email cannot be empty")
		}
		u.Email = email
	}
	if in.Role.Set {
		if in.Role.Value != models.RoleUser && in.Role.Value != models.RoleAdmin {
			return models.PublicUser{}, apperr.Validation("invalid role")
		}
		u.Role = in.Role.Value
	}
	if in.FirstName.Set {
		u.FirstName = in.FirstName.Value
	}
	if in.LastName.Set {
		u.LastName = in.LastName.Value
	}
	if in.IsActive.Set {
		u.IsActive = in.IsActive.Value
	}
	u.UpdatedAt = time.Now()

	entry := models.ActivityLog{
		UserID:    &adminID,
		Action:    models.ActionUpdateUser,
		Details:   fmt.Sprintf("Updated user: %s", id),
		IPAddress: ip,
		CreatedAt: u.UpdatedAt,
	}
	if err := s.store.SaveUserAudited(ctx, u, &entry); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return models.PublicUser{}, apperr.Conflict("user already exists")
		}
		return models.PublicUser{}, apperr.Internal("could not update user", err)
	}

	s.lg.Infow("user updated", "user_id", id, "admin_id", adminID)
	return u.Public(), nil
}

func (s *Users) Delete(ctx context.Context, id, adminID, ip string) error {
	// The delete audit must reference a surviving actor row.
	if id == adminID {
		return apperr.Validation("cannot delete your own account")
	}
	entry := models.ActivityLog{
		UserID:    &adminID,
		Action:    models.ActionDeleteUser,
		Details:   fmt.Sprintf("Deleted user: %s", id),
		IPAddress: ip,
		CreatedAt: time.Now(),
	}
	if err := s.store.DeleteUserAudited(ctx, id, &entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("could not delete user", err)
	}
	s.lg.Infow("user deleted", "user_id", id, "admin_id", adminID)
	return nil
}
