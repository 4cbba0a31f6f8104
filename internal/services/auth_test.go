package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/apierr"
	"github.com/edudraft/edudraft-backend/internal/repos"
	"github.com/edudraft/edudraft-backend/internal/requestdata"
	"github.com/edudraft/edudraft-backend/internal/types"
)

func newTestAuth(t *testing.T, db *gorm.DB) (AuthService, LedgerService) {
	t.Helper()
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	ledger := NewLedgerService(db, log, repos.NewCreditTransactionRepo(db, log))
	return NewAuthService(db, log, userRepo, ledger, "test-secret", time.Hour), ledger
}

func TestRegisterGrantsSignupBonusThroughLedger(t *testing.T) {
	db := newTestDB(t)
	auth, ledger := newTestAuth(t, db)

	user := &types.User{
		Email:     "teacher@example.com",
		FirstName: "Ada",
		LastName:  "Nguyen",
		Password:  "correct horse",
	}
	if err := auth.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Password == "correct horse" {
		t.Fatalf("password stored without hashing")
	}

	balance, err := ledger.Balance(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 10 {
		t.Fatalf("signup bonus: want=10 got=%d", balance)
	}
	history, err := ledger.History(context.Background(), user.ID, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Kind != types.CreditKindBonus {
		t.Fatalf("bonus must be a ledger transaction, got %+v", history)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newTestAuth(t, db)

	first := &types.User{Email: "dup@example.com", FirstName: "A", LastName: "B", Password: "longenough"}
	if err := auth.RegisterUser(context.Background(), first); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	second := &types.User{Email: "Dup@Example.com", FirstName: "C", LastName: "D", Password: "longenough"}
	err := auth.RegisterUser(context.Background(), second)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("want 409 conflict, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newTestAuth(t, db)

	cases := []struct {
		name string
		user types.User
		code string
	}{
		{"bad email", types.User{Email: "nope", FirstName: "A", LastName: "B", Password: "longenough"}, "invalid_email"},
		{"short password", types.User{Email: "a@example.com", FirstName: "A", LastName: "B", Password: "short"}, "weak_password"},
		{"missing name", types.User{Email: "a@example.com", Password: "longenough"}, "missing_name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := tc.user
			err := auth.RegisterUser(context.Background(), &u)
			var apiErr *apierr.Error
			if !errors.As(err, &apiErr) || apiErr.Code != tc.code {
				t.Fatalf("want code %q, got %v", tc.code, err)
			}
		})
	}
}

func TestLoginRoundTripsThroughToken(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newTestAuth(t, db)

	user := &types.User{Email: "login@example.com", FirstName: "A", LastName: "B", Password: "longenough"}
	if err := auth.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	token, got, err := auth.LoginUser(context.Background(), "Login@Example.com", "longenough")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("user mismatch")
	}

	ctx, err := auth.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("token must carry the user id, got %+v", rd)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	auth, _ := newTestAuth(t, db)

	user := &types.User{Email: "login2@example.com", FirstName: "A", LastName: "B", Password: "longenough"}
	if err := auth.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	_, _, err := auth.LoginUser(context.Background(), "login2@example.com", "wrongpassword")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("want 401, got %v", err)
	}

	_, err = auth.SetContextFromToken(context.Background(), "not.a.token")
	if err == nil {
		t.Fatalf("garbage token must be rejected")
	}
}
