package usecase

import (
	"context"
	"log/slog"

	"github.com/raidergo/checkout/internal/adapter/paypal"
	"github.com/raidergo/checkout/internal/adapter/verifone"
	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/metrics"
)

// CheckoutUseCase drives the two buyer-facing payment flows: signed
// buy-link generation and interactive capture with server-side
// re-verification.
type CheckoutUseCase struct {
	catalog   *CatalogUseCase
	purchases *PurchaseUseCase
	links     *verifone.LinkBuilder
	orders    paypal.Client
	logger    *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(catalog *CatalogUseCase, purchases *PurchaseUseCase, links *verifone.LinkBuilder, orders paypal.Client, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{catalog: catalog, purchases: purchases, links: links, orders: orders, logger: logger}
}

// BuyLink produces a signed hosted-checkout URL for the course. Price and
// currency come from the stored catalog entry.
func (u *CheckoutUseCase) BuyLink(ctx context.Context, buyerID, courseID string) (string, error) {
	course, err := u.catalog.GetCourse(ctx, courseID)
	if err != nil {
		return "", err
	}
	return u.links.BuildURL(course, buyerID)
}

// Capture re-verifies a browser-reported approval with the provider and
// records the purchase. The claimed amount is advisory only; the recorded
// amount is what the provider confirms it charged.
func (u *CheckoutUseCase) Capture(ctx context.Context, buyerID, orderID, courseID string, claimedAmount float64) (*model.Purchase, bool, error) {
	order, err := u.orders.VerifyOrder(ctx, orderID)
	if err != nil {
		metrics.ProviderErrors.WithLabelValues(string(model.ProviderPayPal)).Inc()
		return nil, false, err
	}

	if order.CustomRef != "" {
		expected := verifone.ExternalReference(buyerID, courseID)
		if order.CustomRef != expected {
			u.logger.Warn("order correlation reference mismatch",
				slog.String("order", orderID),
				slog.String("expected", expected),
				slog.String("got", order.CustomRef),
			)
			return nil, false, domainErrors.ErrAuthenticity
		}
	}

	if claimedAmount > 0 && claimedAmount != order.Amount {
		u.logger.Warn("claimed amount differs from provider amount",
			slog.String("order", orderID),
			slog.Float64("claimed", claimedAmount),
			slog.Float64("charged", order.Amount),
		)
	}

	return u.purchases.Record(ctx, buyerID, courseID, order.Amount, order.Currency, model.ProviderPayPal, order.ID)
}
