package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/apperr"
	"backoffice/internal/models"
	"backoffice/internal/service"
	"backoffice/internal/store"
)

func TestListPaginationCountsMatchFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.seedUser(t, fmt.Sprintf("match%d@findme.com", i), "p1", models.RoleUser)
	}
	for i := 0; i < 7; i++ {
		f.seedUser(t, fmt.Sprintf("other%d@elsewhere.com", i), "p1", models.RoleUser)
	}

	users, pagination, err := f.users.List(ctx, store.ListParams{Page: 1, PageSize: 3, Search: "findme"})
	require.NoError(t, err)

	// Total reflects the filter predicate, not the unfiltered row count.
	assert.Equal(t, int64(5), pagination.Total)
	assert.Equal(t, int64(2), pagination.TotalPages)
	assert.Len(t, users, 3)

	users, pagination, err = f.users.List(ctx, store.ListParams{Page: 2, PageSize: 3, Search: "findme"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), pagination.Total)
	assert.Len(t, users, 2)
}

func TestListSearchMatchesNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.seedUser(t, "jdoe@x.com", "p1", models.RoleUser)
	u.FirstName = strptr("Johanna")
	entry := models.ActivityLog{Action: models.ActionUpdateUser, CreatedAt: time.Now()}
	require.NoError(t, f.store.SaveUserAudited(ctx, &u, &entry))
	f.seedUser(t, "other@x.com", "p1", models.RoleUser)

	_, pagination, err := f.users.List(ctx, store.ListParams{Search: "johan"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestListDefaultsAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		u := f.seedUser(t, fmt.Sprintf("u%d@x.com", i), "p1", models.RoleUser)
		// Spread creation times so ordering is observable.
		u.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		entry := models.ActivityLog{Action: models.ActionUpdateUser, CreatedAt: time.Now()}
		require.NoError(t, f.store.SaveUserAudited(ctx, &u, &entry))
	}

	users, pagination, err := f.users.List(ctx, store.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 10, pagination.PageSize)
	// Newest first by default.
	require.Len(t, users, 3)
	assert.Equal(t, "u2@x.com", users[0].Email)
	assert.Equal(t, "u0@x.com", users[2].Email)

	users, _, err = f.users.List(ctx, store.ListParams{Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "u0@x.com", users[0].Email)
}

func TestCreateUserAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.seedUser(t, "admin@x.com", "p1", models.RoleAdmin)

	user, err := f.users.Create(ctx, service.CreateUserParams{
		Email:    "U@X.com",
		Password: "p1",
		Role:     models.RoleAdmin,
	}, admin.ID, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", user.Email)
	assert.Equal(t, models.RoleAdmin, user.Role)

	entries := f.store.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionCreateUser, entries[0].Action)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, admin.ID, *entries[0].UserID)

	// Duplicate email conflicts and writes no second audit entry.
	_, err = f.users.Create(ctx, service.CreateUserParams{Email: "u@x.com", Password: "p2"}, admin.ID, "")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Len(t, f.store.AuditEntries(), 1)
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.seedUser(t, "admin@x.com", "p1", models.RoleAdmin)

	_, err := f.users.Create(ctx, service.CreateUserParams{Email: "", Password: "p1"}, admin.ID, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = f.users.Create(ctx, service.CreateUserParams{Email: "a@b.com", Password: "p1", Role: "superuser"}, admin.ID, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdatePartialSemantics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.seedUser(t, "admin@x.com", "p1", models.RoleAdmin)
	u := f.seedUser(t, "target@x.com", "p1", models.RoleUser)
	u.FirstName = strptr("First")
	u.LastName = strptr("Last")
	entry := models.ActivityLog{Action: models.ActionUpdateUser, CreatedAt: time.Now()}
	require.NoError(t, f.store.SaveUserAudited(ctx, &u, &entry))
	before := u.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	// Only is_active was provided; everything else must survive.
	updated, err := f.users.Update(ctx, u.ID, models.UserUpdate{
		IsActive: models.Optional[bool]{Value: false, Set: true},
	}, admin.ID, "10.0.0.1")
	require.NoError(t, err)

	assert.False(t, updated.IsActive)
	assert.Equal(t, "target@x.com", updated.Email)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "First", *updated.FirstName)
	require.NotNil(t, updated.LastName)
	assert.Equal(t, "Last", *updated.LastName)
	assert.Equal(t, models.RoleUser, updated.Role)
	assert.True(t, updated.UpdatedAt.After(before))
}

func TestUpdateExplicitNullClearsName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.seedUser(t, "admin@x.com", "p1", models.RoleAdmin)
	u := f.seedUser(t, "target@x.com", "p1", models.RoleUser)
	u.FirstName = strptr("First")
	entry := models.ActivityLog{Action: models.ActionUpdateUser, CreatedAt: time.Now()}
	require.NoError(t, f.store.SaveUserAudited(ctx, &u, &entry))

	updated, err := f.users.Update(ctx, u.ID, models.UserUpdate{
		FirstName: models.Optional[*string]{Value: nil, Set: true},
	}, admin.ID, "")
	require.NoError(t, err)
	assert.Nil(t, updated.FirstName)
}

func TestUpdateMissingUser(t *testing.T) {
	f := newFixture(t)
	admin := f.seedUser(t, "admin@x.com", "p1", models.RoleAdmin)

	_, err := f.users.Update(context.Background(), "missing-id", models.UserUpdate{}, admin.ID, "")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteUserAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.seedUser(t, "admin@x.com", "p1", models.RoleAdmin)
	u := f.seedUser(t, "target@x.com", "p1", models.RoleUser)

	// The target acts once before deletion, so an audit entry references it.
	require.NoError(t, f.auth.Logout(ctx, u.ID, ""))

	require.NoError(t, f.users.Delete(ctx, u.ID, admin.ID, "10.0.0.1"))

	_, err := f.users.GetByID(ctx, u.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// The earlier entry survives with its actor reference nulled.
	entries := f.store.AuditEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionLogout, entries[0].Action)
	assert.Nil(t, entries[0].UserID)
	assert.Equal(t, models.ActionDeleteUser, entries[1].Action)
	require.NotNil(t, entries[1].UserID)
	assert.Equal(t, admin.ID, *entries[1].UserID)

	// Deleting again is NotFound and appends nothing.
	err = f.users.Delete(ctx, u.ID, admin.ID, "")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Len(t, f.store.AuditEntries(), 2)
}

func TestDeleteSelfIsRejected(t *testing.T) {
	f := newFixture(t)
	admin := f.seedUser(t, "admin@x.com", "p1", models.RoleAdmin)

	err := f.users.Delete(context.Background(), admin.ID, admin.ID, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, f.store.AuditEntries())
}

func TestAdminLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adminA := f.seedUser(t, "a@admin.com", "pa", models.RoleAdmin)

	// A creates U.
	created, err := f.users.Create(ctx, service.CreateUserParams{
		Email:    "u@x.com",
		Password: "p1",
	}, adminA.ID, "10.0.0.1")
	require.NoError(t, err)

	// U logs in successfully.
	_, _, err = f.auth.Login(ctx, "u@x.com", "p1", "10.0.0.2")
	require.NoError(t, err)

	// A searches and finds exactly one match.
	_, pagination, err := f.users.List(ctx, store.ListParams{Search: "u@x"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pagination.Total)

	// A deletes U; the search now finds nothing.
	require.NoError(t, f.users.Delete(ctx, created.ID, adminA.ID, "10.0.0.1"))
	_, pagination, err = f.users.List(ctx, store.ListParams{Search: "u@x"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), pagination.Total)

	// CREATE_USER and DELETE_USER appear in order with A as actor.
	var adminActions []string
	for _, e := range f.store.AuditEntries() {
		if e.UserID != nil && *e.UserID == adminA.ID {
			adminActions = append(adminActions, e.Action)
		}
	}
	assert.Equal(t, []string{models.ActionCreateUser, models.ActionDeleteUser}, adminActions)
}
