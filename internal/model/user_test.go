package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleAdmin, NormalizeRole(" ADMIN "))
	assert.Equal(t, RoleUser, NormalizeRole("user"))
	assert.Equal(t, RoleUser, NormalizeRole(""))
	assert.Equal(t, RoleUser, NormalizeRole("superuser"))
	assert.Equal(t, RoleUser, NormalizeRole("root"))
}

func TestAuthUserIsAdmin(t *testing.T) {
	assert.True(t, AuthUser{Role: RoleAdmin}.IsAdmin())
	assert.False(t, AuthUser{Role: RoleUser}.IsAdmin())
	assert.False(t, AuthUser{Role: Role("Admin")}.IsAdmin(), "role comparison is exact")
}

func TestUserJSONOmitsPassword(t *testing.T) {
	user := User{
		ID:       primitive.NewObjectID(),
		Name:     "A",
		Email:    "a@x.com",
		Password: "$2a$10$abcdefghijklmnopqrstuv",
		Role:     RoleUser,
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), user.Password)
}

func TestParseEventDate(t *testing.T) {
	got, err := ParseEventDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseEventDate("2024-06-15T18:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 16, 0, 0, 0, time.UTC), got)

	_, err = ParseEventDate("15/06/2024")
	assert.Error(t, err)

	_, err = ParseEventDate("")
	assert.Error(t, err)
}
