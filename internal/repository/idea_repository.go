package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideaboard/internal/model"
)

// IdeaRepository defines idea persistence operations.
type IdeaRepository interface {
	Create(ctx context.Context, idea *model.Idea) error
	Update(ctx context.Context, idea *model.Idea) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error)
	// List returns ideas newest first. A limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]model.Idea, error)
}

type ideaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new idea repository.
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

// Create creates a new idea.
func (r *ideaRepository) Create(ctx context.Context, idea *model.Idea) error {
	return r.db.WithContext(ctx).Create(idea).Error
}

// Update overwrites the content of an existing idea. It never inserts, so an
// idea deleted in the meantime yields gorm.ErrRecordNotFound.
func (r *ideaRepository) Update(ctx context.Context, idea *model.Idea) error {
	res := r.db.WithContext(ctx).
		Model(idea).
		Where("id = ?", idea.ID).
		Select("title", "summary", "description", "tags", "updated_at").
		Updates(idea)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an idea permanently.
func (r *ideaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Idea{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds an idea by ID.
func (r *ideaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Idea, error) {
	var idea model.Idea
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// List lists ideas ordered by creation time, newest first.
func (r *ideaRepository) List(ctx context.Context, limit int) ([]model.Idea, error) {
	ideas := []model.Idea{}
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}
