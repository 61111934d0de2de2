package store

import (
	"context"
	"errors"
	"time"

	"backoffice/internal/models"
)

var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an insert or update would violate
	// the unique email constraint.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// ListParams describes a roster page. Search matches case-insensitively
// against email, first name, or last name as an OR of substring matches.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string // only "created_at" is supported today
	Order    string // "asc" or "desc", default desc
}

func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.SortBy == "" {
		p.SortBy = "created_at"
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
	return p
}

func (p ListParams) Offset() int { return (p.Page - 1) * p.PageSize }

// Store is the persistence contract. The *Audited mutations pair the row
// write with the audit insert in one transaction: either both land or
// neither does. The gorm implementation backs production; the memory
// implementation backs tests.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, p ListParams) ([]models.User, int64, error)

	CreateUserAudited(ctx context.Context, u *models.User, entry *models.ActivityLog) error
	SaveUserAudited(ctx context.Context, u *models.User, entry *models.ActivityLog) error
	DeleteUserAudited(ctx context.Context, id string, entry *models.ActivityLog) error

	AppendAudit(ctx context.Context, entry *models.ActivityLog) error
	RecentActivity(ctx context.Context, limit int) ([]models.ActivityItem, error)

	CountUsers(ctx context.Context) (int64, error)
	CountActiveUsers(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error)
	UserGrowth(ctx context.Context, since time.Time) ([]models.GrowthPoint, error)
}
