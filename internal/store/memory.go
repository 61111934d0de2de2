package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/models"
)

var _ Store = (*Memory)(nil)

// Memory is an in-memory Store with the same observable behavior as the
// Postgres one, including the transactional pairing of mutation and audit
// writes. It backs the test suites; nothing stops it from serving as a
// throwaway dev backend.
type Memory struct {
	mu     sync.RWMutex
	users  map[string]models.User
	audits []models.ActivityLog
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]models.User)}
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(u)
}

func (m *Memory) insertLocked(u *models.User) error {
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (m *Memory) ListUsers(_ context.Context, p ListParams) ([]models.User, int64, error) {
	p = p.Normalized()
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		if p.Search == "" || matchesSearch(u, p.Search) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if p.Order == "asc" {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := p.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + p.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matchesSearch(u models.User, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(u.Email), term) {
		return true
	}
	if u.FirstName != nil && strings.Contains(strings.ToLower(*u.FirstName), term) {
		return true
	}
	if u.LastName != nil && strings.Contains(strings.ToLower(*u.LastName), term) {
		return true
	}
	return false
}

func (m *Memory) CreateUserAudited(_ context.Context, u *models.User, entry *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.insertLocked(u); err != nil {
		return err
	}
	m.appendLocked(entry)
	return nil
}

func (m *Memory) SaveUserAudited(_ context.Context, u *models.User, entry *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.users {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicateEmail
		}
	}
	m.users[u.ID] = *u
	m.appendLocked(entry)
	return nil
}

func (m *Memory) DeleteUserAudited(_ context.Context, id string, entry *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	// Weak actor references: entries pointing at the deleted user lose
	// their actor, matching the SET NULL constraint.
	for i := range m.audits {
		if m.audits[i].UserID != nil && *m.audits[i].UserID == id {
			m.audits[i].UserID = nil
		}
	}
	m.appendLocked(entry)
	return nil
}

func (m *Memory) AppendAudit(_ context.Context, entry *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendLocked(entry)
	return nil
}

func (m *Memory) appendLocked(entry *models.ActivityLog) {
	m.nextID++
	entry.ID = m.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.audits = append(m.audits, *entry)
}

func (m *Memory) RecentActivity(_ context.Context, limit int) ([]models.ActivityItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]models.ActivityItem, 0, limit)
	for i := len(m.audits) - 1; i >= 0 && len(items) < limit; i-- {
		l := m.audits[i]
		item := models.ActivityItem{
			ID:        l.ID,
			Action:    l.Action,
			Details:   l.Details,
			IPAddress: l.IPAddress,
			CreatedAt: l.CreatedAt,
		}
		if l.UserID != nil {
			if u, ok := m.users[*l.UserID]; ok {
				item.User = &models.ActivityActor{
					ID:        u.ID,
					Email:     u.Email,
					FirstName: u.FirstName,
					LastName:  u.LastName,
				}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (m *Memory) CountUsers(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *Memory) CountActiveUsers(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, u := range m.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *Memory) CountAdmins(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, u := range m.users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n, nil
}

func (m *Memory) CountUsersCreatedSince(_ context.Context, since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, u := range m.users {
		if !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) UserGrowth(_ context.Context, since time.Time) ([]models.GrowthPoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byDay := make(map[string]int64)
	for _, u := range m.users {
		if u.CreatedAt.Before(since) {
			continue
		}
		byDay[u.CreatedAt.Format("2006-01-02")]++
	}
	points := make([]models.GrowthPoint, 0, len(byDay))
	for day, count := range byDay {
		points = append(points, models.GrowthPoint{Date: day, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

// AuditEntries returns a snapshot of the audit trail in insertion order.
func (m *Memory) AuditEntries() []models.ActivityLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ActivityLog, len(m.audits))
	copy(out, m.audits)
	return out
}
