package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/content"
	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/repos"
	"github.com/edudraft/edudraft-backend/internal/types"
)

var ErrArtifactNotFound = errors.New("artifact not found")

type ArtifactService interface {
	CreateFromDocument(ctx context.Context, tx *gorm.DB, userID uuid.UUID, doc *content.Document, rawOutput string, prompt string) (*types.Artifact, error)
	SetTags(ctx context.Context, artifactID uuid.UUID, tags []string) error
	GetForUser(ctx context.Context, userID uuid.UUID, artifactID uuid.UUID) (*types.Artifact, error)
	ListForUser(ctx context.Context, userID uuid.UUID, kind string) ([]*types.Artifact, error)
	Rename(ctx context.Context, userID uuid.UUID, artifactID uuid.UUID, title string) error
	Delete(ctx context.Context, userID uuid.UUID, artifactID uuid.UUID) error
}

type artifactService struct {
	db           *gorm.DB
	log          *logger.Logger
	artifactRepo repos.ArtifactRepo
}

func NewArtifactService(db *gorm.DB, baseLog *logger.Logger, artifactRepo repos.ArtifactRepo) ArtifactService {
	return &artifactService{
		db:           db,
		log:          baseLog.With("service", "ArtifactService"),
		artifactRepo: artifactRepo,
	}
}

// CreateFromDocument persists a validated document exactly once. Raw model
// output and the prompt are kept in metadata for support and regeneration.
func (as *artifactService) CreateFromDocument(ctx context.Context, tx *gorm.DB, userID uuid.UUID, doc *content.Document, rawOutput string, prompt string) (*types.Artifact, error) {
	if doc == nil {
		return nil, fmt.Errorf("document required")
	}

	contentJSON, err := json.Marshal(doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("serialize artifact content: %w", err)
	}
	metadataJSON, err := json.Marshal(map[string]any{
		"raw_output": rawOutput,
		"prompt":     prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("serialize artifact metadata: %w", err)
	}

	now := time.Now()
	artifact := &types.Artifact{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      string(doc.Kind),
		Title:     doc.Title,
		Content:   datatypes.JSON(contentJSON),
		Metadata:  datatypes.JSON(metadataJSON),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := as.artifactRepo.Create(ctx, tx, []*types.Artifact{artifact}); err != nil {
		return nil, fmt.Errorf("persist artifact: %w", err)
	}
	return artifact, nil
}

func (as *artifactService) SetTags(ctx context.Context, artifactID uuid.UUID, tags []string) error {
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("serialize tags: %w", err)
	}
	return as.artifactRepo.UpdateFields(ctx, nil, artifactID, map[string]any{
		"tags":       datatypes.JSON(tagsJSON),
		"updated_at": time.Now(),
	})
}

func (as *artifactService) GetForUser(ctx context.Context, userID uuid.UUID, artifactID uuid.UUID) (*types.Artifact, error) {
	found, err := as.artifactRepo.GetByIDs(ctx, nil, []uuid.UUID{artifactID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
		return nil, ErrArtifactNotFound
	}
	return found[0], nil
}

func (as *artifactService) ListForUser(ctx context.Context, userID uuid.UUID, kind string) ([]*types.Artifact, error) {
	return as.artifactRepo.GetByUserID(ctx, nil, userID, kind)
}

func (as *artifactService) Rename(ctx context.Context, userID uuid.UUID, artifactID uuid.UUID, title string) error {
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}
	if _, err := as.GetForUser(ctx, userID, artifactID); err != nil {
		return err
	}
	return as.artifactRepo.UpdateFields(ctx, nil, artifactID, map[string]any{
		"title":      title,
		"updated_at": time.Now(),
	})
}

func (as *artifactService) Delete(ctx context.Context, userID uuid.UUID, artifactID uuid.UUID) error {
	if _, err := as.GetForUser(ctx, userID, artifactID); err != nil {
		return err
	}
	return as.artifactRepo.Delete(ctx, nil, artifactID)
}
