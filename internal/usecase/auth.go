package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/domain/repository"
	pkgAuth "github.com/raidergo/checkout/internal/pkg/auth"
)

// AuthUseCase handles buyer lifecycle and token management.
type AuthUseCase struct {
	buyers repository.BuyerRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(buyers repository.BuyerRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{buyers: buyers, hasher: hasher, tokens: strategy}
}

// Register creates a new buyer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, password string) (*model.Buyer, string, error) {
	email = normalizeEmail(email)
	if !validEmail(email) || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	buyer, err := u.buyers.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(buyer.ID)
	if err != nil {
		return nil, "", err
	}

	return buyer, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.Buyer, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	buyer, err := u.buyers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(buyer.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(buyer.ID)
	if err != nil {
		return nil, "", err
	}

	return buyer, token, nil
}

// ParseToken resolves a bearer token to a buyer id.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	return u.tokens.ParseToken(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1
}
