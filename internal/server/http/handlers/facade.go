package handlers

import (
	"context"

	"github.com/raidergo/checkout/internal/adapter/verifone"
	"github.com/raidergo/checkout/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (string, error)
}

// CatalogFacade exposes course catalog reads.
type CatalogFacade interface {
	Courses(ctx context.Context) ([]model.Course, error)
}

// PurchaseFacade exposes purchase history reads.
type PurchaseFacade interface {
	Purchases(ctx context.Context, buyerID string) ([]model.Purchase, error)
}

// CheckoutFacade drives buy-link generation and interactive capture.
type CheckoutFacade interface {
	BuyLink(ctx context.Context, buyerID, courseID string) (string, error)
	Capture(ctx context.Context, buyerID, orderID, courseID string, claimedAmount float64) (*model.Purchase, bool, error)
}

// WebhookFacade processes authenticated provider notifications.
type WebhookFacade interface {
	HandleNotification(ctx context.Context, n *verifone.Notification) (bool, error)
}

// CheckoutServiceFacade aggregates the full set of operations used across handlers.
type CheckoutServiceFacade interface {
	AuthFacade
	CatalogFacade
	PurchaseFacade
	CheckoutFacade
	WebhookFacade
}
