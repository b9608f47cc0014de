package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideaboard/internal/cache"
	apperrors "ideaboard/internal/errors"
	"ideaboard/internal/model"
	"ideaboard/internal/repository"
)

const (
	ideaCacheTTL = 5 * time.Minute
	// ideaTombstoneTTL bounds how long a delete marker blocks refills.
	ideaTombstoneTTL = time.Minute
)

// ideaTombstone marks a deleted idea in the cache. It can never be valid JSON
// for an idea.
var ideaTombstone = []byte("deleted")

var errIdeaNotFound = apperrors.NotFound("Idea not found")

// IdeaInput carries the mutable fields of an idea. Fields are expected to be
// trimmed and non-blank; tags already normalized.
type IdeaInput struct {
	Title       string
	Summary     string
	Description string
	Tags        []string
}

// IdeaService handles idea operations. Reads are public; mutations require
// an identity and, for existing ideas, ownership.
type IdeaService interface {
	List(ctx context.Context, limit int) ([]model.Idea, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Idea, error)
	Create(ctx context.Context, owner model.Identity, input IdeaInput) (*model.Idea, error)
	Update(ctx context.Context, actor model.Identity, id uuid.UUID, input IdeaInput) (*model.Idea, error)
	Delete(ctx context.Context, actor model.Identity, id uuid.UUID) error
}

// IsOwner reports whether identity may mutate idea.
func IsOwner(identity model.Identity, idea *model.Idea) bool {
	return idea != nil && identity.ID != uuid.Nil && idea.UserID == identity.ID
}

type ideaService struct {
	repo  repository.IdeaRepository
	cache *cache.Client
}

// NewIdeaService creates a new idea service. cache may be nil.
func NewIdeaService(repo repository.IdeaRepository, cache *cache.Client) IdeaService {
	return &ideaService{
		repo:  repo,
		cache: cache,
	}
}

func (s *ideaService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("idea:%s", id.String())
}

// List returns ideas newest first, capped at limit when limit > 0.
func (s *ideaService) List(ctx context.Context, limit int) ([]model.Idea, error) {
	ideas, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	return ideas, nil
}

// Get retrieves an idea by ID with caching. Reads only fill an empty cache
// slot, so a record written by Update or a tombstone left by Delete is never
// overwritten by a read that started before them.
func (s *ideaService) Get(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	key := s.cacheKey(id)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		if bytes.Equal(data, ideaTombstone) {
			return nil, errIdeaNotFound
		}
		var cached model.Idea
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	idea, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(idea); err == nil {
		s.cache.SetNX(ctx, key, payload, ideaCacheTTL)
	}
	return idea, nil
}

// Create stores a new idea owned by owner.
func (s *ideaService) Create(ctx context.Context, owner model.Identity, input IdeaInput) (*model.Idea, error) {
	idea := &model.Idea{
		Title:       input.Title,
		Summary:     input.Summary,
		Description: input.Description,
		Tags:        input.Tags,
		UserID:      owner.ID,
	}
	if err := s.repo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	return idea, nil
}

// Update replaces the content of an idea owned by actor.
func (s *ideaService) Update(ctx context.Context, actor model.Identity, id uuid.UUID, input IdeaInput) (*model.Idea, error) {
	idea, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	idea.Title = input.Title
	idea.Summary = input.Summary
	idea.Description = input.Description
	idea.Tags = input.Tags
	if idea.Tags == nil {
		idea.Tags = []string{}
	}

	if err := s.repo.Update(ctx, idea); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errIdeaNotFound
		}
		return nil, fmt.Errorf("update idea: %w", err)
	}

	if payload, err := json.Marshal(idea); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, ideaCacheTTL)
	}
	return idea, nil
}

// Delete removes an idea owned by actor.
func (s *ideaService) Delete(ctx context.Context, actor model.Identity, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errIdeaNotFound
		}
		return fmt.Errorf("delete idea: %w", err)
	}
	_ = s.cache.Set(ctx, s.cacheKey(id), ideaTombstone, ideaTombstoneTTL)
	return nil
}

// findOwned always reads the store, never the cache, so ownership is checked
// against the current record.
func (s *ideaService) findOwned(ctx context.Context, actor model.Identity, id uuid.UUID) (*model.Idea, error) {
	idea, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsOwner(actor, idea) {
		return nil, apperrors.ErrForbidden
	}
	return idea, nil
}

func (s *ideaService) find(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	idea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errIdeaNotFound
		}
		return nil, fmt.Errorf("find idea: %w", err)
	}
	return idea, nil
}
