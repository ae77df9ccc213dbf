package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	pkgAuth "github.com/raidergo/checkout/internal/pkg/auth"
	"github.com/raidergo/checkout/internal/test"

	"golang.org/x/crypto/bcrypt"
)

func newAuthUseCase() (*AuthUseCase, *test.BuyerRepositoryStub) {
	buyers := &test.BuyerRepositoryStub{}
	hasher := pkgAuth.NewBcryptHasher(bcrypt.MinCost)
	strategy := pkgAuth.NewHMACStrategy("test-secret", pkgAuth.Options{})
	return NewAuthUseCase(buyers, hasher, strategy), buyers
}

func TestAuthRegisterAndLogin(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	buyer, token, err := uc.Register(ctx, "Buyer@Example.com ", "password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buyer.Email != "buyer@example.com" {
		t.Errorf("expected normalized email, got %q", buyer.Email)
	}
	if token == "" {
		t.Error("expected a token on registration")
	}

	parsedID, err := uc.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsedID != buyer.ID {
		t.Errorf("token resolves to %q, want %q", parsedID, buyer.ID)
	}

	same, token, err := uc.Authenticate(ctx, "buyer@example.com", "password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if same.ID != buyer.ID || token == "" {
		t.Errorf("unexpected login result: buyer=%+v token=%q", same, token)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password1"},
		{"no at sign", "buyer.example.com", "password1"},
		{"at sign first", "@example.com", "password1"},
		{"at sign last", "buyer@", "password1"},
		{"empty password", "buyer@example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := uc.Register(ctx, tc.email, tc.password); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, "buyer@example.com", test.RandomASCIIString(8, 16)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Register(ctx, "BUYER@example.com", test.RandomASCIIString(8, 16)); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthAuthenticateRejections(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, "buyer@example.com", "password1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "buyer@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "stranger@example.com", "password1"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "", "password1"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
}
