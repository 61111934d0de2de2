package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
)

func TestUserUpdatePresence(t *testing.T) {
	var in models.UserUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"is_active": false, "first_name": null, "last_name": ""}`), &in))

	// Explicitly provided, even as falsy values.
	assert.True(t, in.IsActive.Set)
	assert.False(t, in.IsActive.Value)

	assert.True(t, in.FirstName.Set)
	assert.Nil(t, in.FirstName.Value)

	assert.True(t, in.LastName.Set)
	require.NotNil(t, in.LastName.Value)
	assert.Equal(t, "", *in.LastName.Value)

	// Absent keys stay unset.
	assert.False(t, in.Email.Set)
	assert.False(t, in.Role.Set)
}
