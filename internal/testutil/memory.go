// Package testutil provides in-memory repositories that honour the same
// contracts as the gorm ones, for tests that run without a database.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideaboard/internal/model"
)

// UserStore is an in-memory repository.UserRepository.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.User
	byEmail map[string]uuid.UUID
}

// NewUserStore returns an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[uuid.UUID]model.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Create runs the model save hook and stores the user. A taken email returns
// gorm.ErrDuplicatedKey.
func (s *UserStore) Create(_ context.Context, user *model.User) error {
	if err := user.BeforeSave(nil); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return gorm.ErrDuplicatedKey
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.byID[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[model.NormalizeEmail(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	user := s.byID[id]
	return &user, nil
}

// Len reports the number of stored users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// IdeaStore is an in-memory repository.IdeaRepository.
type IdeaStore struct {
	mu    sync.RWMutex
	ideas map[uuid.UUID]model.Idea
	now   func() time.Time
}

// NewIdeaStore returns an empty idea store.
func NewIdeaStore() *IdeaStore {
	return &IdeaStore{
		ideas: make(map[uuid.UUID]model.Idea),
		now:   time.Now,
	}
}

// Create runs the model create hook and stores the idea. A zero CreatedAt is
// set to now so tests may pin creation order explicitly.
func (s *IdeaStore) Create(_ context.Context, idea *model.Idea) error {
	if err := idea.BeforeCreate(nil); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ideas[idea.ID]; exists {
		return gorm.ErrDuplicatedKey
	}
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = s.now()
	}
	idea.UpdatedAt = idea.CreatedAt
	s.ideas[idea.ID] = cloneIdea(*idea)
	return nil
}

// Update never inserts; an unknown id returns gorm.ErrRecordNotFound.
func (s *IdeaStore) Update(_ context.Context, idea *model.Idea) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ideas[idea.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	idea.UpdatedAt = s.now()
	s.ideas[idea.ID] = cloneIdea(*idea)
	return nil
}

func (s *IdeaStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ideas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.ideas, id)
	return nil
}

func (s *IdeaStore) FindByID(_ context.Context, id uuid.UUID) (*model.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idea, ok := s.ideas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	idea = cloneIdea(idea)
	return &idea, nil
}

// List returns ideas newest first, capped at limit when limit > 0.
func (s *IdeaStore) List(_ context.Context, limit int) ([]model.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ideas := make([]model.Idea, 0, len(s.ideas))
	for _, idea := range s.ideas {
		ideas = append(ideas, cloneIdea(idea))
	}
	sort.Slice(ideas, func(i, j int) bool {
		return ideas[i].CreatedAt.After(ideas[j].CreatedAt)
	})
	if limit > 0 && len(ideas) > limit {
		ideas = ideas[:limit]
	}
	return ideas, nil
}

// Len reports the number of stored ideas.
func (s *IdeaStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ideas)
}

func cloneIdea(idea model.Idea) model.Idea {
	idea.Tags = append([]string{}, idea.Tags...)
	return idea
}
