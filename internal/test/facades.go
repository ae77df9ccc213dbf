package test

import (
	"context"

	"github.com/raidergo/checkout/internal/adapter/verifone"
	"github.com/raidergo/checkout/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (string, error)
}

// Register delegates to provided function or returns a fixed token.
func (s AuthFacadeStub) Register(ctx context.Context, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password)
	}
	return "token", nil
}

// Authenticate delegates to provided function or returns a fixed token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken delegates to provided function or accepts any token.
func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "buyer-1", nil
}

// CatalogFacadeStub serves predefined courses.
type CatalogFacadeStub struct {
	CoursesFn func(context.Context) ([]model.Course, error)
}

// Courses returns configured courses or a single default one.
func (s CatalogFacadeStub) Courses(ctx context.Context) ([]model.Course, error) {
	if s.CoursesFn != nil {
		return s.CoursesFn(ctx)
	}
	return []model.Course{{ID: "course-1", Title: "Course", Price: 49.99, Currency: "USD", Active: true}}, nil
}

// PurchaseFacadeStub serves predefined purchase history.
type PurchaseFacadeStub struct {
	PurchasesFn func(context.Context, string) ([]model.Purchase, error)
}

// Purchases returns configured history or a single default row.
func (s PurchaseFacadeStub) Purchases(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	if s.PurchasesFn != nil {
		return s.PurchasesFn(ctx, buyerID)
	}
	return []model.Purchase{{BuyerID: buyerID, CourseID: "course-1", Amount: 49.99, Currency: "USD", Status: model.PaymentStatusCompleted}}, nil
}

// CheckoutFacadeStub simulates buy-link generation and capture.
type CheckoutFacadeStub struct {
	BuyLinkFn func(context.Context, string, string) (string, error)
	CaptureFn func(context.Context, string, string, string, float64) (*model.Purchase, bool, error)
}

// BuyLink delegates or returns a fixed URL.
func (s CheckoutFacadeStub) BuyLink(ctx context.Context, buyerID, courseID string) (string, error) {
	if s.BuyLinkFn != nil {
		return s.BuyLinkFn(ctx, buyerID, courseID)
	}
	return "https://checkout.example/buy?signature=abc", nil
}

// Capture delegates or reports a newly recorded purchase.
func (s CheckoutFacadeStub) Capture(ctx context.Context, buyerID, orderID, courseID string, claimedAmount float64) (*model.Purchase, bool, error) {
	if s.CaptureFn != nil {
		return s.CaptureFn(ctx, buyerID, orderID, courseID, claimedAmount)
	}
	return &model.Purchase{BuyerID: buyerID, CourseID: courseID, ProviderRef: orderID, Status: model.PaymentStatusCompleted}, true, nil
}

// WebhookFacadeStub records handled notifications.
type WebhookFacadeStub struct {
	HandleFn      func(context.Context, *verifone.Notification) (bool, error)
	Notifications []*verifone.Notification
}

// HandleNotification delegates or stores the notification and reports it recorded.
func (s *WebhookFacadeStub) HandleNotification(ctx context.Context, n *verifone.Notification) (bool, error) {
	if s.HandleFn != nil {
		return s.HandleFn(ctx, n)
	}
	s.Notifications = append(s.Notifications, n)
	return true, nil
}

// FacadeStub aggregates all facade stubs into one CheckoutServiceFacade.
type FacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	PurchaseFacadeStub
	CheckoutFacadeStub
	WebhookFacadeStub
}
