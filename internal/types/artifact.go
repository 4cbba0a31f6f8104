package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Artifact is one generated document (quiz, lesson plan, worksheet, ...).
// Content holds the normalized document exactly as the validator produced
// it; Metadata keeps the raw model output and the prompt that produced it.
type Artifact struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Kind      string         `gorm:"not null;index;column:kind" json:"kind"`
	Title     string         `gorm:"not null;column:title" json:"title"`
	Content   datatypes.JSON `gorm:"column:content" json:"content"`
	Tags      datatypes.JSON `gorm:"column:tags" json:"tags,omitempty"`
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Artifact) TableName() string {
	return "artifact"
}
