package usecase

import (
	"context"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/domain/repository"
	"github.com/raidergo/checkout/internal/metrics"
)

// PurchaseUseCase records verified purchases. Inserting the row is its
// only side effect; access derivation happens on read paths.
type PurchaseUseCase struct {
	purchases repository.PurchaseRepository
}

// NewPurchaseUseCase constructs PurchaseUseCase.
func NewPurchaseUseCase(purchases repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{purchases: purchases}
}

// Record persists a completed purchase idempotently. A repeated provider
// reference or (buyer, course) pair resolves to the already stored row and
// reports created=false; callers still treat that as success.
func (u *PurchaseUseCase) Record(ctx context.Context, buyerID, courseID string, amount float64, currency string, provider model.PaymentProvider, providerRef string) (*model.Purchase, bool, error) {
	if buyerID == "" || courseID == "" || providerRef == "" {
		return nil, false, domainErrors.ErrInvalidReference
	}
	if amount <= 0 || currency == "" {
		return nil, false, domainErrors.ErrInvalidAmount
	}

	purchase, created, err := u.purchases.Create(ctx, model.Purchase{
		BuyerID:     buyerID,
		CourseID:    courseID,
		Amount:      amount,
		Currency:    currency,
		Status:      model.PaymentStatusCompleted,
		Provider:    provider,
		ProviderRef: providerRef,
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		metrics.PurchasesRecorded.WithLabelValues(string(provider)).Inc()
	} else {
		metrics.DuplicatePurchases.Inc()
	}
	return purchase, created, nil
}

// ListByBuyer returns the buyer's purchase history, newest first.
func (u *PurchaseUseCase) ListByBuyer(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	return u.purchases.ListByBuyer(ctx, buyerID)
}
