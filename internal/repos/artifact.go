package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/types"
)

type ArtifactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, artifacts []*types.Artifact) ([]*types.Artifact, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, artifactIDs []uuid.UUID) ([]*types.Artifact, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind string) ([]*types.Artifact, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, artifactID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, artifactID uuid.UUID) error
}

type artifactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArtifactRepo(db *gorm.DB, baseLog *logger.Logger) ArtifactRepo {
	return &artifactRepo{db: db, log: baseLog.With("repo", "ArtifactRepo")}
}

func (ar *artifactRepo) Create(ctx context.Context, tx *gorm.DB, artifacts []*types.Artifact) ([]*types.Artifact, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(artifacts) == 0 {
		return []*types.Artifact{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&artifacts).Error; err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (ar *artifactRepo) GetByIDs(ctx context.Context, tx *gorm.DB, artifactIDs []uuid.UUID) ([]*types.Artifact, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Artifact
	if len(artifactIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", artifactIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *artifactRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, kind string) ([]*types.Artifact, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	q := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var results []*types.Artifact
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *artifactRepo) UpdateFields(ctx context.Context, tx *gorm.DB, artifactID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Artifact{}).
		Where("id = ?", artifactID).
		Updates(fields).Error
}

func (ar *artifactRepo) Delete(ctx context.Context, tx *gorm.DB, artifactID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", artifactID).
		Delete(&types.Artifact{}).Error
}
