package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	CreditKindPurchase = "purchase"
	CreditKindUsage    = "usage"
	CreditKindRefund   = "refund"
	CreditKindBonus    = "bonus"
)

// CreditTransaction is the append-only ledger record. Amount is signed
// (negative for usage) and BalanceAfter must equal BalanceBefore + Amount
// as captured inside the same atomic section that moved the balance.
// Rows are never updated or deleted.
type CreditTransaction struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Kind          string     `gorm:"not null;column:kind" json:"kind"`
	Amount        int        `gorm:"not null;column:amount" json:"amount"`
	BalanceBefore int        `gorm:"not null;column:balance_before" json:"balance_before"`
	BalanceAfter  int        `gorm:"not null;column:balance_after" json:"balance_after"`
	Description   string     `gorm:"column:description" json:"description,omitempty"`
	RelatedID     *uuid.UUID `gorm:"type:uuid;column:related_id" json:"related_id,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
}

func (CreditTransaction) TableName() string {
	return "credit_transaction"
}
