package repository

import (
	"context"

	"github.com/raidergo/checkout/internal/domain/model"
)

// BuyerRepository describes persistence operations for buyers.
type BuyerRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*model.Buyer, error)
	GetByEmail(ctx context.Context, email string) (*model.Buyer, error)
	GetByID(ctx context.Context, id string) (*model.Buyer, error)
}
