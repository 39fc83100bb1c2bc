package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndLookup(t *testing.T) {
	s := NewMemoryStore(nil)

	created, err := s.Create(context.Background(), User{
		Email:        "grace@example.com",
		Name:         "Grace",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "user", created.Role, "role defaults to user")

	byEmail, err := s.GetByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := s.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", byID.Name)

	_, err = s.GetByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRejectsDuplicateEmail(t *testing.T) {
	s := NewMemoryStore(nil)

	_, err := s.Create(context.Background(), User{Email: "grace@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = s.Create(context.Background(), User{Email: "grace@example.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
