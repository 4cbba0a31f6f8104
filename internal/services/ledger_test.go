package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/repos"
	"github.com/edudraft/edudraft-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// _txlock=immediate makes concurrent write transactions serialize at
	// BEGIN instead of deadlocking on lock upgrade.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.Artifact{}, &types.CreditTransaction{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func seedUser(t *testing.T, db *gorm.DB, balance int) *types.User {
	t.Helper()
	user := &types.User{
		ID:             uuid.New(),
		Email:          fmt.Sprintf("%s@example.com", uuid.NewString()),
		Password:       "irrelevant",
		FirstName:      "Test",
		LastName:       "Teacher",
		CreditsBalance: balance,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newTestLedger(t *testing.T, db *gorm.DB) LedgerService {
	t.Helper()
	log := newTestLogger(t)
	return NewLedgerService(db, log, repos.NewCreditTransactionRepo(db, log))
}

func countTransactions(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&types.CreditTransaction{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return count
}

func TestLedgerDeductCapturesBeforeAndAfter(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	user := seedUser(t, db, 10)

	txn, err := ledger.Deduct(context.Background(), user.ID, 2, "quiz generation")
	if err != nil {
		t.Fatalf("Deduct: %v", err)
	}
	if txn.Amount != -2 {
		t.Fatalf("amount: want=-2 got=%d", txn.Amount)
	}
	if txn.BalanceBefore != 10 || txn.BalanceAfter != 8 {
		t.Fatalf("balances: want=10/8 got=%d/%d", txn.BalanceBefore, txn.BalanceAfter)
	}
	if txn.BalanceAfter != txn.BalanceBefore+txn.Amount {
		t.Fatalf("invariant balance_after = balance_before + amount violated: %+v", txn)
	}
	if txn.Kind != types.CreditKindUsage {
		t.Fatalf("kind: want=usage got=%q", txn.Kind)
	}

	balance, err := ledger.Balance(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 8 {
		t.Fatalf("balance after deduct: want=8 got=%d", balance)
	}
	if got := countTransactions(t, db, user.ID); got != 1 {
		t.Fatalf("transaction count: want=1 got=%d", got)
	}
}

func TestLedgerDeductInsufficientLeavesNoTrace(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	user := seedUser(t, db, 1)

	_, err := ledger.Deduct(context.Background(), user.ID, 2, "quiz generation")
	var insufficient *InsufficientCreditsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("want InsufficientCreditsError, got %v", err)
	}
	if insufficient.Required != 2 || insufficient.Available != 1 {
		t.Fatalf("amounts: want required=2 available=1 got=%d/%d", insufficient.Required, insufficient.Available)
	}

	balance, _ := ledger.Balance(context.Background(), user.ID)
	if balance != 1 {
		t.Fatalf("no partial deduction allowed: want=1 got=%d", balance)
	}
	if got := countTransactions(t, db, user.ID); got != 0 {
		t.Fatalf("failed deduct must append nothing: want=0 got=%d", got)
	}
}

func TestLedgerDeductUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)

	_, err := ledger.Deduct(context.Background(), uuid.New(), 1, "x")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerCreditAppendsTransaction(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	user := seedUser(t, db, 3)

	related := uuid.New()
	txn, err := ledger.Credit(context.Background(), user.ID, 20, types.CreditKindPurchase, "starter pack", &related)
	if err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if txn.BalanceBefore != 3 || txn.BalanceAfter != 23 || txn.Amount != 20 {
		t.Fatalf("credit capture: got %+v", txn)
	}
	if txn.RelatedID == nil || *txn.RelatedID != related {
		t.Fatalf("related id not kept: %+v", txn.RelatedID)
	}
}

func TestLedgerCreditRejectsUsageKind(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	user := seedUser(t, db, 0)

	if _, err := ledger.Credit(context.Background(), user.ID, 5, types.CreditKindUsage, "no", nil); err == nil {
		t.Fatalf("want error: usage must go through Deduct")
	}
}

// Two simultaneous deductions of 3 against a balance of 5 must produce
// exactly one success and one InsufficientCredits, never two of either.
func TestLedgerConcurrentDeductsNeverOverdraft(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	user := seedUser(t, db, 5)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, results[idx] = ledger.Deduct(context.Background(), user.ID, 3, "race")
		}(i)
	}
	wg.Wait()

	successes := 0
	insufficient := 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		default:
			var ic *InsufficientCreditsError
			if errors.As(err, &ic) {
				insufficient++
			} else {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	}
	if successes != 1 || insufficient != 1 {
		t.Fatalf("want exactly one success and one insufficient, got %d/%d", successes, insufficient)
	}

	balance, _ := ledger.Balance(context.Background(), user.ID)
	if balance != 2 {
		t.Fatalf("balance: want=2 got=%d", balance)
	}
	if got := countTransactions(t, db, user.ID); got != 1 {
		t.Fatalf("transaction count: want=1 got=%d", got)
	}
}

func TestLedgerConcurrentSingleCreditDrain(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	user := seedUser(t, db, 5)

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = ledger.Deduct(context.Background(), user.ID, 1, "drain")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	if successes != 5 {
		t.Fatalf("sum of successful deductions must equal starting balance: want=5 got=%d", successes)
	}
	balance, _ := ledger.Balance(context.Background(), user.ID)
	if balance != 0 {
		t.Fatalf("balance: want=0 got=%d", balance)
	}
}

func TestLedgerHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ledger := newTestLedger(t, db)
	user := seedUser(t, db, 0)

	if _, err := ledger.Credit(context.Background(), user.ID, 10, types.CreditKindBonus, "signup bonus", nil); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if _, err := ledger.Deduct(context.Background(), user.ID, 2, "quiz"); err != nil {
		t.Fatalf("Deduct: %v", err)
	}

	history, err := ledger.History(context.Background(), user.ID, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length: want=2 got=%d", len(history))
	}
	// Chained before/after across the two operations.
	if history[1].BalanceAfter != history[0].BalanceBefore {
		t.Fatalf("ledger chain broken: %d != %d", history[1].BalanceAfter, history[0].BalanceBefore)
	}
}
