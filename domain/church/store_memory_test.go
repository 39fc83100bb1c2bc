package church

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	s := NewMemoryStore(nil)

	created, err := s.Create(context.Background(), Church{Name: "Zion Chapel"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status, "new listings wait for review")

	approved, err := s.UpdateStatus(context.Background(), created.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	_, err = s.UpdateStatus(context.Background(), 9999, StatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListSortsByName(t *testing.T) {
	s := NewMemoryStore(nil)
	for _, name := range []string{"Zion Chapel", "Agape Fellowship", "Mercy House"} {
		_, err := s.Create(context.Background(), Church{Name: name, Status: StatusApproved})
		require.NoError(t, err)
	}
	_, err := s.Create(context.Background(), Church{Name: "Pending Place"})
	require.NoError(t, err)

	approved, err := s.List(context.Background(), StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 3)
	assert.Equal(t, "Agape Fellowship", approved[0].Name)
	assert.Equal(t, "Zion Chapel", approved[2].Name)

	all, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemoryStoreMembership(t *testing.T) {
	s := NewMemoryStore(nil)
	c, err := s.Create(context.Background(), Church{Name: "Zion Chapel", Status: StatusApproved})
	require.NoError(t, err)

	member, err := s.AddMember(context.Background(), Member{ChurchID: c.ID, UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "member", member.Role)
	assert.False(t, member.Verified)

	_, err = s.AddMember(context.Background(), Member{ChurchID: c.ID, UserID: 1})
	assert.ErrorIs(t, err, ErrAlreadyMember)

	verified, err := s.VerifyMember(context.Background(), c.ID, 1)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	_, err = s.VerifyMember(context.Background(), c.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetMember(context.Background(), c.ID, 1)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	members, err := s.ListMembers(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
