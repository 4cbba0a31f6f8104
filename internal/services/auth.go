package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/apierr"
	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/repos"
	"github.com/edudraft/edudraft-backend/internal/requestdata"
	"github.com/edudraft/edudraft-backend/internal/types"
)

// Credits granted to every new account so a teacher can try generation
// before purchasing.
const signupBonusCredits = 10

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, *types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	ledger       LedgerService
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	ledger LedgerService,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		userRepo:     userRepo,
		ledger:       ledger,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)

	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return apierr.New(http.StatusBadRequest, "invalid_email", fmt.Errorf("a valid email is required"))
	}
	if len(user.Password) < 8 {
		return apierr.New(http.StatusBadRequest, "weak_password", fmt.Errorf("password must be at least 8 characters"))
	}
	if user.FirstName == "" || user.LastName == "" {
		return apierr.New(http.StatusBadRequest, "missing_name", fmt.Errorf("first and last name are required"))
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return apierr.New(http.StatusConflict, "email_taken", fmt.Errorf("an account with this email already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)

	now := time.Now()
	user.ID = uuid.New()
	user.CreditsBalance = 0
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	// The bonus goes through the ledger so even the first balance has a
	// transaction behind it.
	if _, err := as.ledger.Credit(ctx, user.ID, signupBonusCredits, types.CreditKindBonus, "signup bonus", nil); err != nil {
		as.log.Warn("Signup bonus credit failed", "user_id", user.ID, "error", err)
	} else {
		user.CreditsBalance = signupBonusCredits
	}

	as.log.Info("User registered", "user_id", user.ID)
	return nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, *types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", nil, fmt.Errorf("look up user: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return "", nil, apierr.New(http.StatusUnauthorized, "invalid_credentials", fmt.Errorf("invalid email or password"))
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apierr.New(http.StatusUnauthorized, "invalid_credentials", fmt.Errorf("invalid email or password"))
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, errors.New("invalid token subject")
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
