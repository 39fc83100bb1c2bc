package group

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps groups and memberships in process memory. Semantics
// mirror the SQL store.
type MemoryStore struct {
	mu           sync.Mutex
	groups       []Group
	members      []Member
	nextID       int64
	nextMemberID int64
}

// NewMemoryStore creates an in-memory group store holding the given seed
// records.
func NewMemoryStore(seed []Group) *MemoryStore {
	s := &MemoryStore{}
	for _, g := range seed {
		if g.ID == 0 {
			s.nextID++
			g.ID = s.nextID
		} else if g.ID > s.nextID {
			s.nextID = g.ID
		}
		s.groups = append(s.groups, g)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, g Group) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	g.ID = s.nextID
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	s.groups = append(s.groups, g)
	return g, nil
}

func (s *MemoryStore) ListByChurch(_ context.Context, churchID int64) ([]Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := []Group{}
	for _, g := range s.groups {
		if g.ChurchID == churchID {
			results = append(results, g)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Name == results[j].Name {
			return results[i].ID < results[j].ID
		}
		return results[i].Name < results[j].Name
	})
	return results, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return Group{}, ErrNotFound
}

func (s *MemoryStore) AddMember(_ context.Context, m Member) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.members {
		if existing.GroupID == m.GroupID && existing.UserID == m.UserID {
			return Member{}, ErrAlreadyMember
		}
	}
	s.nextMemberID++
	m.ID = s.nextMemberID
	m.JoinedAt = time.Now()
	s.members = append(s.members, m)
	return m, nil
}

func (s *MemoryStore) ListMembers(_ context.Context, groupID int64) ([]Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := []Member{}
	for _, m := range s.members {
		if m.GroupID == groupID {
			results = append(results, m)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].JoinedAt.Equal(results[j].JoinedAt) {
			return results[i].ID < results[j].ID
		}
		return results[i].JoinedAt.Before(results[j].JoinedAt)
	})
	return results, nil
}
