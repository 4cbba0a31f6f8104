package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/repos"
	"github.com/edudraft/edudraft-backend/internal/types"
)

var ErrAccountNotFound = errors.New("account not found")

// InsufficientCreditsError carries both amounts so the UI can prompt a
// top-up with exact numbers.
type InsufficientCreditsError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: %d required, %d available", e.Required, e.Available)
}

// LedgerService owns the per-account balance. Nothing else writes
// credits_balance; every mutation appends an immutable transaction with
// before/after captured inside the same atomic section.
type LedgerService interface {
	Deduct(ctx context.Context, userID uuid.UUID, amount int, description string) (*types.CreditTransaction, error)
	Credit(ctx context.Context, userID uuid.UUID, amount int, kind string, description string, relatedID *uuid.UUID) (*types.CreditTransaction, error)
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.CreditTransaction, error)
}

type ledgerService struct {
	db      *gorm.DB
	log     *logger.Logger
	txnRepo repos.CreditTransactionRepo
}

func NewLedgerService(db *gorm.DB, baseLog *logger.Logger, txnRepo repos.CreditTransactionRepo) LedgerService {
	return &ledgerService{
		db:      db,
		log:     baseLog.With("service", "LedgerService"),
		txnRepo: txnRepo,
	}
}

// Deduct moves amount off the balance only if the balance covers it. The
// guarded UPDATE takes the row lock; the re-read and the transaction append
// happen under that same lock, so concurrent deductions against one account
// serialize and can never overdraft.
func (ls *ledgerService) Deduct(ctx context.Context, userID uuid.UUID, amount int, description string) (*types.CreditTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deduct amount must be positive, got %d", amount)
	}

	var txn *types.CreditTransaction
	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&types.User{}).
			Where("id = ? AND credits_balance >= ?", userID, amount).
			UpdateColumn("credits_balance", gorm.Expr("credits_balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var user types.User
			if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAccountNotFound
				}
				return err
			}
			return &InsufficientCreditsError{Required: amount, Available: user.CreditsBalance}
		}

		var user types.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		txn = &types.CreditTransaction{
			ID:            uuid.New(),
			UserID:        userID,
			Kind:          types.CreditKindUsage,
			Amount:        -amount,
			BalanceBefore: user.CreditsBalance + amount,
			BalanceAfter:  user.CreditsBalance,
			Description:   description,
			CreatedAt:     time.Now(),
		}
		if _, err := ls.txnRepo.Create(ctx, tx, []*types.CreditTransaction{txn}); err != nil {
			return fmt.Errorf("append ledger transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ls.log.Info("Credits deducted",
		"user_id", userID,
		"amount", amount,
		"balance_after", txn.BalanceAfter,
	)
	return txn, nil
}

func (ls *ledgerService) Credit(ctx context.Context, userID uuid.UUID, amount int, kind string, description string, relatedID *uuid.UUID) (*types.CreditTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	switch kind {
	case types.CreditKindPurchase, types.CreditKindRefund, types.CreditKindBonus:
	default:
		return nil, fmt.Errorf("invalid credit kind %q", kind)
	}

	var txn *types.CreditTransaction
	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&types.User{}).
			Where("id = ?", userID).
			UpdateColumn("credits_balance", gorm.Expr("credits_balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAccountNotFound
		}

		var user types.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		txn = &types.CreditTransaction{
			ID:            uuid.New(),
			UserID:        userID,
			Kind:          kind,
			Amount:        amount,
			BalanceBefore: user.CreditsBalance - amount,
			BalanceAfter:  user.CreditsBalance,
			Description:   description,
			RelatedID:     relatedID,
			CreatedAt:     time.Now(),
		}
		if _, err := ls.txnRepo.Create(ctx, tx, []*types.CreditTransaction{txn}); err != nil {
			return fmt.Errorf("append ledger transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ls.log.Info("Credits added",
		"user_id", userID,
		"kind", kind,
		"amount", amount,
		"balance_after", txn.BalanceAfter,
	)
	return txn, nil
}

// Balance is a snapshot only. Deduct re-checks under its own atomic section,
// so callers must never treat this read as a reservation.
func (ls *ledgerService) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	var user types.User
	if err := ls.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}
	return user.CreditsBalance, nil
}

func (ls *ledgerService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.CreditTransaction, error) {
	return ls.txnRepo.GetByUserID(ctx, nil, userID, limit)
}
