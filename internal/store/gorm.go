package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"backoffice/internal/models"
)

// Gorm is the Postgres-backed Store. The *gorm.DB must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Gorm) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Gorm) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Gorm) ListUsers(ctx context.Context, p ListParams) ([]models.User, int64, error) {
	p = p.Normalized()
	q := s.db.WithContext(ctx).Model(&models.User{})
	if p.Search != "" {
		pattern := "%" + p.Search + "%"
		q = q.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern, pattern)
	}

	// The count must apply the same predicate as the page.
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := q.Order(fmt.Sprintf("created_at %s", p.Order)).
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *Gorm) CreateUserAudited(ctx context.Context, u *models.User, entry *models.ActivityLog) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	}))
}

func (s *Gorm) SaveUserAudited(ctx context.Context, u *models.User, entry *models.ActivityLog) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(u).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	}))
}

func (s *Gorm) DeleteUserAudited(ctx context.Context, id string, entry *models.ActivityLog) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(entry).Error
	}))
}

func (s *Gorm) AppendAudit(ctx context.Context, entry *models.ActivityLog) error {
	return translate(s.db.WithContext(ctx).Create(entry).Error)
}

func (s *Gorm) RecentActivity(ctx context.Context, limit int) ([]models.ActivityItem, error) {
	var logs []models.ActivityLog
	err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	items := make([]models.ActivityItem, 0, len(logs))
	for _, l := range logs {
		item := models.ActivityItem{
			ID:        l.ID,
			Action:    l.Action,
			Details:   l.Details,
			IPAddress: l.IPAddress,
			CreatedAt: l.CreatedAt,
		}
		if l.User != nil {
			item.User = &models.ActivityActor{
				ID:        l.User.ID,
				Email:     l.User.Email,
				FirstName: l.User.FirstName,
				LastName:  l.User.LastName,
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Gorm) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (s *Gorm) CountActiveUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("is_active = true").Count(&n).Error
	return n, err
}

func (s *Gorm) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&n).Error
	return n, err
}

func (s *Gorm) CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}

func (s *Gorm) UserGrowth(ctx context.Context, since time.Time) ([]models.GrowthPoint, error) {
	var points []models.GrowthPoint
	err := s.db.WithContext(ctx).Raw(`
		SELECT to_char(DATE(created_at), 'YYYY-MM-DD') AS date, COUNT(*) AS count
		FROM users
		WHERE created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY date ASC`, since).Scan(&points).Error
	return points, err
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
