package church

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps churches and memberships in process memory. Semantics
// mirror the SQL store.
type MemoryStore struct {
	mu           sync.Mutex
	churches     []Church
	members      []Member
	nextID       int64
	nextMemberID int64
}

// NewMemoryStore creates an in-memory church store holding the given seed
// records.
func NewMemoryStore(seed []Church) *MemoryStore {
	s := &MemoryStore{}
	for _, c := range seed {
		if c.ID == 0 {
			s.nextID++
			c.ID = s.nextID
		} else if c.ID > s.nextID {
			s.nextID = c.ID
		}
		s.churches = append(s.churches, c)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, c Church) (Church, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Status == "" {
		c.Status = StatusPending
	}
	s.nextID++
	c.ID = s.nextID
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.churches = append(s.churches, c)
	return c, nil
}

func (s *MemoryStore) List(_ context.Context, status Status) ([]Church, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := []Church{}
	for _, c := range s.churches {
		if status != "" && c.Status != status {
			continue
		}
		results = append(results, c)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Name == results[j].Name {
			return results[i].ID < results[j].ID
		}
		return results[i].Name < results[j].Name
	})
	return results, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (Church, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.churches[i], nil
	}
	return Church{}, ErrNotFound
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id int64, status Status) (Church, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Church{}, ErrNotFound
	}
	s.churches[i].Status = status
	s.churches[i].UpdatedAt = time.Now()
	return s.churches[i], nil
}

func (s *MemoryStore) AddMember(_ context.Context, m Member) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.members {
		if existing.ChurchID == m.ChurchID && existing.UserID == m.UserID {
			return Member{}, ErrAlreadyMember
		}
	}
	if m.Role == "" {
		m.Role = "member"
	}
	s.nextMemberID++
	m.ID = s.nextMemberID
	m.JoinedAt = time.Now()
	s.members = append(s.members, m)
	return m, nil
}

func (s *MemoryStore) ListMembers(_ context.Context, churchID int64) ([]Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := []Member{}
	for _, m := range s.members {
		if m.ChurchID == churchID {
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

func (s *MemoryStore) VerifyMember(_ context.Context, churchID, userID int64) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.members {
		if s.members[i].ChurchID == churchID && s.members[i].UserID == userID {
			s.members[i].Verified = true
			return s.members[i], nil
		}
	}
	return Member{}, ErrNotFound
}

func (s *MemoryStore) GetMember(_ context.Context, churchID, userID int64) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if m.ChurchID == churchID && m.UserID == userID {
			return m, nil
		}
	}
	return Member{}, ErrNotFound
}

// indexOf must be called with the lock held.
func (s *MemoryStore) indexOf(id int64) int {
	for i := range s.churches {
		if s.churches[i].ID == id {
			return i
		}
	}
	return -1
}
