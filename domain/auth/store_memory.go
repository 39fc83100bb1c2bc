package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps users in process memory for database-less operation.
type MemoryStore struct {
	mu     sync.Mutex
	users  []User
	nextID int64
}

// NewMemoryStore creates an in-memory user store holding the given seed
// accounts. Seed entries without an id are assigned one.
func NewMemoryStore(seed []User) *MemoryStore {
	s := &MemoryStore{}
	for _, u := range seed {
		if u.ID == 0 {
			s.nextID++
			u.ID = s.nextID
		} else if u.ID > s.nextID {
			s.nextID = u.ID
		}
		s.users = append(s.users, u)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return User{}, ErrEmailTaken
		}
	}
	if u.Role == "" {
		u.Role = "user"
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}
