package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/types"
)

// CreditTransactionRepo only appends and reads. The ledger is immutable:
// there is deliberately no update or delete here.
type CreditTransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, txns []*types.CreditTransaction) ([]*types.CreditTransaction, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CreditTransaction, error)
	CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type creditTransactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCreditTransactionRepo(db *gorm.DB, baseLog *logger.Logger) CreditTransactionRepo {
	return &creditTransactionRepo{db: db, log: baseLog.With("repo", "CreditTransactionRepo")}
}

func (cr *creditTransactionRepo) Create(ctx context.Context, tx *gorm.DB, txns []*types.CreditTransaction) ([]*types.CreditTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(txns) == 0 {
		return []*types.CreditTransaction{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (cr *creditTransactionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.CreditTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.CreditTransaction
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *creditTransactionRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CreditTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
