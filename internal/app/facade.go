package app

import (
	"context"

	"github.com/raidergo/checkout/internal/adapter/verifone"
	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/usecase"
)

// Facade aggregates the application use cases behind a single surface
// consumed by HTTP handlers, middleware, and the catalog refresher.
type Facade struct {
	auth      *usecase.AuthUseCase
	catalog   *usecase.CatalogUseCase
	purchases *usecase.PurchaseUseCase
	checkout  *usecase.CheckoutUseCase
	webhook   *usecase.WebhookUseCase
}

func NewFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, purchases *usecase.PurchaseUseCase, checkout *usecase.CheckoutUseCase, webhook *usecase.WebhookUseCase) *Facade {
	return &Facade{auth: auth, catalog: catalog, purchases: purchases, checkout: checkout, webhook: webhook}
}

func (f *Facade) Register(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password)
	return token, err
}

func (f *Facade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *Facade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *Facade) Courses(ctx context.Context) ([]model.Course, error) {
	return f.catalog.ListActive(ctx)
}

func (f *Facade) RefreshCatalog(ctx context.Context) error {
	return f.catalog.Refresh(ctx)
}

func (f *Facade) Purchases(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	return f.purchases.ListByBuyer(ctx, buyerID)
}

func (f *Facade) BuyLink(ctx context.Context, buyerID, courseID string) (string, error) {
	return f.checkout.BuyLink(ctx, buyerID, courseID)
}

func (f *Facade) Capture(ctx context.Context, buyerID, orderID, courseID string, claimedAmount float64) (*model.Purchase, bool, error) {
	return f.checkout.Capture(ctx, buyerID, orderID, courseID, claimedAmount)
}

func (f *Facade) HandleNotification(ctx context.Context, n *verifone.Notification) (bool, error) {
	return f.webhook.HandleNotification(ctx, n)
}
