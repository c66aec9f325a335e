// Package auth issues and verifies the bearer tokens that protect the
// wallet API. Passwords are bcrypt hashed; tokens are HS256 JWTs that
// carry the login time so sensitive flows can demand a fresh session.
package auth

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cashpoint/internal/config"
	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

type RegisterInput struct {
	Name     string
	Email    string
	Mobile   string
	DOB      string
	Password string
}

type LoginResult struct {
	Token   string
	Account *models.Account
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*models.Account, error)
	// Login accepts an email address or a mobile number as identifier.
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	VerifyToken(tokenString string) (*models.UserClaims, error)
}

type service struct {
	accounts repositories.AccountRepository
	secret   []byte
}

func NewService(accounts repositories.AccountRepository) Service {
	return &service{
		accounts: accounts,
		secret:   []byte(config.GetEnv("JWT_SECRET", "dev-only-secret")),
	}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Mobile = strings.TrimSpace(in.Mobile)

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Mobile:   in.Mobile,
		DOB:      in.DOB,
		Password: string(hash),
	}
	if err := s.accounts.Create(account); err != nil {
		if goerrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrAccountExists
		}
		return nil, err
	}
	return account, nil
}

func (s *service) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		account *models.Account
		err     error
	)
	if strings.Contains(identifier, "@") {
		account, err = s.accounts.GetByEmail(strings.ToLower(identifier))
	} else {
		account, err = s.accounts.GetByMobile(identifier)
	}
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, errors.ErrUnauthorized
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return nil, errors.ErrUnauthorized
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Account: account}, nil
}

func (s *service) issueToken(account *models.Account) (string, error) {
	now := time.Now()
	claims := &models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", account.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID:   account.ID,
		Email:    account.Email,
		IsAdmin:  account.IsAdmin,
		AuthTime: now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *service) VerifyToken(tokenString string) (*models.UserClaims, error) {
	claims := &models.UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.ErrUnauthorized
	}
	return claims, nil
}
