package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/apperr"
	"backoffice/internal/models"
	"backoffice/internal/store"
)

const (
	defaultActivityLimit = 10
	defaultGrowthDays    = 30
	newUserWindowDays    = 30
)

// Dashboard serves read-only aggregates over the roster and audit trail.
type Dashboard struct {
	store store.Store
	lg    *zap.SugaredLogger
}

func NewDashboard(st store.Store, lg *zap.SugaredLogger) *Dashboard {
	return &Dashboard{store: st, lg: lg}
}

func (s *Dashboard) Stats(ctx context.Context) (models.DashboardStats, error) {
	var (
		stats models.DashboardStats
		err   error
	)
	if stats.TotalUsers, err = s.store.CountUsers(ctx); err != nil {
		return stats, apperr.Internal("could not count users", err)
	}
	if stats.ActiveUsers, err = s.store.CountActiveUsers(ctx); err != nil {
		return stats, apperr.Internal("could not count active users", err)
	}
	since := time.Now().AddDate(0, 0, -newUserWindowDays)
	if stats.NewUsers, err = s.store.CountUsersCreatedSince(ctx, since); err != nil {
		return stats, apperr.Internal("could not count new users", err)
	}
	if stats.TotalAdmins, err = s.store.CountAdmins(ctx); err != nil {
		return stats, apperr.Internal("could not count admins", err)
	}
	s.lg.Debugw("dashboard stats retrieved",
		"total", stats.TotalUsers, "active", stats.ActiveUsers,
		"new", stats.NewUsers, "admins", stats.TotalAdmins)
	return stats, nil
}

func (s *Dashboard) RecentActivity(ctx context.Context, limit int) ([]models.ActivityItem, error) {
	if limit < 1 {
		limit = defaultActivityLimit
	}
	items, err := s.store.RecentActivity(ctx, limit)
	if err != nil {
		return nil, apperr.Internal("could not load recent activity", err)
	}
	return items, nil
}

// UserGrowth returns per-day signup counts over the trailing window,
// ascending by date. The series is sparse: days without signups are
// omitted rather than zero-filled.
func (s *Dashboard) UserGrowth(ctx context.Context, days int) ([]models.GrowthPoint, error) {
	if days < 1 {
		days = defaultGrowthDays
	}
	since := time.Now().AddDate(0, 0, -days)
	points, err := s.store.UserGrowth(ctx, since)
	if err != nil {
		return nil, apperr.Internal("could not load user growth", err)
	}
	return points, nil
}
