// Package storagetest provides in-memory implementations of the storage
// interfaces for handler and server tests.
package storagetest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mherrero/mimapa-be/internal/models"
	"github.com/mherrero/mimapa-be/internal/storage"
)

var (
	_ storage.UserStore  = (*MemStore)(nil)
	_ storage.ItemStore  = (*MemStore)(nil)
	_ storage.VisitStore = (*MemStore)(nil)
)

// MemStore keeps users, items, and visits in process memory. The zero value
// is not usable; call New.
type MemStore struct {
	mu        sync.Mutex
	users     map[string]models.User
	items     map[string]models.Item
	itemOrder []string
	visits    []models.Visit
	nextID    int64
}

// New returns an empty MemStore.
func New() *MemStore {
	return &MemStore{
		users: make(map[string]models.User),
		items: make(map[string]models.Item),
	}
}

// CreateUser inserts a user, enforcing username uniqueness.
func (s *MemStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return models.User{}, storage.ErrAlreadyExists
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.Username] = user
	return user, nil
}

// FindByUsername fetches a user by exact username.
func (s *MemStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// CreateItem inserts an item with a fresh opaque id.
func (s *MemStore) CreateItem(_ context.Context, item models.Item) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = uuid.NewString()
	s.items[item.ID] = item
	s.itemOrder = append(s.itemOrder, item.ID)
	return item, nil
}

// ListItemsByOwner returns the owner's items in insertion order.
func (s *MemStore) ListItemsByOwner(_ context.Context, owner string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []models.Item{}
	for _, id := range s.itemOrder {
		if item, ok := s.items[id]; ok && item.Owner == owner {
			items = append(items, item)
		}
	}
	return items, nil
}

// ListItems returns every item in insertion order.
func (s *MemStore) ListItems(_ context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []models.Item{}
	for _, id := range s.itemOrder {
		if item, ok := s.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// DeleteItem removes an item by id.
func (s *MemStore) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// RecordVisit appends one visit row.
func (s *MemStore) RecordVisit(_ context.Context, visit models.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = append(s.visits, visit)
	return nil
}

// ListVisitsForHost returns the host's visits, newest first.
func (s *MemStore) ListVisitsForHost(_ context.Context, host string) ([]models.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	visits := []models.Visit{}
	for i := len(s.visits) - 1; i >= 0; i-- {
		if s.visits[i].Host == host {
			visits = append(visits, s.visits[i])
		}
	}
	return visits, nil
}

// Visits returns a copy of every recorded visit in insertion order.
func (s *MemStore) Visits() []models.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Visit, len(s.visits))
	copy(out, s.visits)
	return out
}

// User returns the stored record for username, if present.
func (s *MemStore) User(username string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	return user, ok
}
