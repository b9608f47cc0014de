package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Idea is the resource under access control. UserID is the owner.
type Idea struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Summary     string    `json:"summary" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Tags        []string  `json:"tags" gorm:"type:json;serializer:json"`
	UserID      uuid.UUID `json:"user" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Tags == nil {
		i.Tags = []string{}
	}
	return nil
}

// NormalizeTags turns a decoded JSON tags value into a tag list.
// A string is split on commas with each part trimmed and empty parts dropped.
// A list is passed through in order; numbers and booleans are kept in their
// JSON text form, nulls and nested values are dropped.
// Anything else yields an empty list.
func NormalizeTags(raw any) []string {
	tags := []string{}
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if tag := strings.TrimSpace(part); tag != "" {
				tags = append(tags, tag)
			}
		}
	case []string:
		tags = append(tags, v...)
	case []any:
		for _, item := range v {
			if tag, ok := scalarTag(item); ok {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

func scalarTag(item any) (string, bool) {
	switch v := item.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}
