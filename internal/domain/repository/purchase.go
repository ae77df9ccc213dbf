package repository

import (
	"context"

	"github.com/raidergo/checkout/internal/domain/model"
)

// PurchaseRepository describes persistence operations with purchases.
// Create must be idempotent under the provider reference and the
// (buyer, course) uniqueness keys: inserting a duplicate returns the
// existing row with created=false instead of an error.
type PurchaseRepository interface {
	Create(ctx context.Context, p model.Purchase) (*model.Purchase, bool, error)
	GetByProviderRef(ctx context.Context, providerRef string) (*model.Purchase, error)
	GetByBuyerAndCourse(ctx context.Context, buyerID, courseID string) (*model.Purchase, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]model.Purchase, error)
}
