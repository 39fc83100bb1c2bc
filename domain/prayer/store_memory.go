package prayer

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps prayers in process memory. It substitutes for the SQL
// store whenever the database is unreachable or unconfigured, and must match
// the SQL store's filtering, ordering, and pagination exactly.
type MemoryStore struct {
	mu        sync.Mutex
	prayers   []Prayer
	responses []Response
	nextID    int64
	nextRespID int64
}

// NewMemoryStore creates an in-memory store holding the given seed records.
// Seed entries without an id are assigned one; the internal counter starts
// past the highest seeded id so new creates never collide.
func NewMemoryStore(seed []Prayer) *MemoryStore {
	s := &MemoryStore{}
	for _, p := range seed {
		if p.ID == 0 {
			s.nextID++
			p.ID = s.nextID
		} else if p.ID > s.nextID {
			s.nextID = p.ID
		}
		s.prayers = append(s.prayers, p)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, p Prayer) (Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applyDefaults(&p)
	s.nextID++
	p.ID = s.nextID
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.prayers = append(s.prayers, p)
	return p, nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Prayer, 0, len(s.prayers))
	for _, p := range s.prayers {
		if f.ChurchID != nil && (p.ChurchID == nil || *p.ChurchID != *f.ChurchID) {
			continue
		}
		if f.GroupID != nil && (p.GroupID == nil || *p.GroupID != *f.GroupID) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.PublicOnly && !p.IsPublic {
			continue
		}
		if f.ModerationStatus != "" && p.ModerationStatus != f.ModerationStatus {
			continue
		}
		results = append(results, p)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	offset := f.NormalizedOffset()
	if offset > len(results) {
		offset = len(results)
	}
	end := offset + f.NormalizedLimit()
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end], nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.prayers[i], nil
	}
	return Prayer{}, ErrNotFound
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id int64, status Status) (Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Prayer{}, ErrNotFound
	}
	s.prayers[i].Status = status
	s.prayers[i].UpdatedAt = time.Now()
	return s.prayers[i], nil
}

func (s *MemoryStore) UpdateModeration(_ context.Context, id int64, status ModerationStatus, moderatorID int64, notes *string) (Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Prayer{}, ErrNotFound
	}
	now := time.Now()
	s.prayers[i].ModerationStatus = status
	s.prayers[i].ModeratedBy = &moderatorID
	s.prayers[i].ModeratedAt = &now
	s.prayers[i].ModerationNotes = notes
	s.prayers[i].UpdatedAt = now
	return s.prayers[i], nil
}

func (s *MemoryStore) CreateResponse(_ context.Context, r Response) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRespID++
	r.ID = s.nextRespID
	r.CreatedAt = time.Now()
	s.responses = append(s.responses, r)
	return r, nil
}

func (s *MemoryStore) ListResponses(_ context.Context, prayerID int64) ([]Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := []Response{}
	for _, r := range s.responses {
		if r.PrayerID == prayerID {
			results = append(results, r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID < results[j].ID
		}
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	return results, nil
}

// indexOf must be called with the lock held.
func (s *MemoryStore) indexOf(id int64) int {
	for i := range s.prayers {
		if s.prayers[i].ID == id {
			return i
		}
	}
	return -1
}
