package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"ideaboard/internal/model"
	"ideaboard/internal/repository"
	"ideaboard/internal/service"
)

// seedUser is the account that owns imported ideas.
type seedUser struct {
	Name     string `env:"SEED_NAME" envDefault:"Seed User"`
	Email    string `env:"SEED_EMAIL" envDefault:"seed@example.com"`
	Password string `env:"SEED_PASSWORD,required,notEmpty"`
}

// seedIdea mirrors the create request body; tags may be a comma string or a list.
type seedIdea struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Tags        any    `json:"tags"`
}

type seedResult struct {
	Created int
	Skipped int
}

func loadIdeas(r io.Reader) ([]seedIdea, error) {
	var items []seedIdea
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode ideas: %w", err)
	}
	return items, nil
}

// ensureUser returns the seed user, creating it when the email is unknown.
// An existing user is reused as is; its password is not checked or changed.
func ensureUser(ctx context.Context, users repository.UserRepository, owner seedUser) (*model.User, bool, error) {
	existing, err := users.FindByEmail(ctx, owner.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find seed user: %w", err)
	}

	user := &model.User{
		Name:     owner.Name,
		Email:    owner.Email,
		Password: owner.Password,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create seed user: %w", err)
	}
	return user, true, nil
}

// seedIdeas creates every complete item owned by owner. Items missing a
// title, summary or description are skipped.
func seedIdeas(ctx context.Context, ideas service.IdeaService, owner model.Identity, items []seedIdea) (seedResult, error) {
	var result seedResult
	for _, item := range items {
		input := service.IdeaInput{
			Title:       strings.TrimSpace(item.Title),
			Summary:     strings.TrimSpace(item.Summary),
			Description: strings.TrimSpace(item.Description),
			Tags:        model.NormalizeTags(item.Tags),
		}
		if input.Title == "" || input.Summary == "" || input.Description == "" {
			result.Skipped++
			continue
		}

		if _, err := ideas.Create(ctx, owner, input); err != nil {
			return result, fmt.Errorf("create idea %q: %w", input.Title, err)
		}
		result.Created++
	}
	return result, nil
}
