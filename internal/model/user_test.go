package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_BeforeSave(t *testing.T) {
	u := &User{Name: "  Ada ", Email: "  Ada@Example.COM ", Password: "secret123"}

	require.NoError(t, u.BeforeSave(nil))

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Empty(t, u.Password)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.True(t, u.MatchPassword("secret123"))
	assert.False(t, u.MatchPassword("secret124"))
}

func TestUser_BeforeSave_HashesOnlyOnPlaintextChange(t *testing.T) {
	u := &User{Name: "Ada", Email: "ada@example.com", Password: "secret123"}
	require.NoError(t, u.BeforeSave(nil))
	firstHash := u.PasswordHash

	u.Name = "Ada L."
	require.NoError(t, u.BeforeSave(nil))
	assert.Equal(t, firstHash, u.PasswordHash)

	u.Password = "another-secret"
	require.NoError(t, u.BeforeSave(nil))
	assert.NotEqual(t, firstHash, u.PasswordHash)
	assert.True(t, u.MatchPassword("another-secret"))
}

func TestUser_BeforeSave_Rejects(t *testing.T) {
	short := &User{Name: "Ada", Email: "ada@example.com", Password: "12345"}
	assert.ErrorIs(t, short.BeforeSave(nil), ErrPasswordTooShort)

	missing := &User{Name: "Ada", Email: "ada@example.com"}
	assert.ErrorIs(t, missing.BeforeSave(nil), ErrPasswordMissing)
}

func TestUser_Identity(t *testing.T) {
	u := &User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}

	id := u.Identity()
	assert.Equal(t, Identity{ID: u.ID, Name: "Ada", Email: "ada@example.com"}, id)
}
