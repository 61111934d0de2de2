package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/auth"
	"backoffice/internal/models"
	"backoffice/internal/service"
	"backoffice/internal/store"
)

type fixture struct {
	store     *store.Memory
	hasher    auth.Hasher
	tokens    *auth.TokenManager
	auth      *service.Auth
	users     *service.Users
	dashboard *service.Dashboard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewMemory()
	hasher := auth.NewHasher(bcrypt.MinCost)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	lg := zap.NewNop().Sugar()

	return &fixture{
		store:     st,
		hasher:    hasher,
		tokens:    tokens,
		auth:      service.NewAuth(st, tokens, hasher, lg),
		users:     service.NewUsers(st, hasher, lg),
		dashboard: service.NewDashboard(st, lg),
	}
}

// seedUser inserts an account directly, bypassing the flows under test.
func (f *fixture) seedUser(t *testing.T, email, password, role string) models.User {
	t.Helper()

	hash, err := f.hasher.HashPassword(password)
	require.NoError(t, err)
	now := time.Now()
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.store.CreateUser(context.Background(), &u))
	return u
}

func strptr(s string) *string { return &s }
