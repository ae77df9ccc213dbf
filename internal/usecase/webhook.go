package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/raidergo/checkout/internal/adapter/verifone"
	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/domain/repository"
	"github.com/raidergo/checkout/internal/metrics"
)

// WebhookUseCase turns authenticated IPN notifications into purchase rows.
// It runs after signature verification; its own failures are acknowledged
// upstream so the provider stops redelivering.
type WebhookUseCase struct {
	buyers    repository.BuyerRepository
	purchases *PurchaseUseCase
	logger    *slog.Logger
}

// NewWebhookUseCase constructs WebhookUseCase.
func NewWebhookUseCase(buyers repository.BuyerRepository, purchases *PurchaseUseCase, logger *slog.Logger) *WebhookUseCase {
	return &WebhookUseCase{buyers: buyers, purchases: purchases, logger: logger}
}

// HandleNotification records the purchase carried by a paid notification.
// Non-paid statuses and notifications whose correlation token cannot be
// resolved to a known buyer are safe no-ops: recorded=false, no error.
func (u *WebhookUseCase) HandleNotification(ctx context.Context, n *verifone.Notification) (bool, error) {
	if !n.SaleStatus.Paid() {
		u.logger.Info("ignoring non-paid notification",
			slog.String("refno", n.RefNo),
			slog.String("status", string(n.SaleStatus)),
		)
		return false, nil
	}

	if n.RefNo == "" {
		metrics.WebhookRejected.WithLabelValues("missing_refno").Inc()
		u.logger.Warn("paid notification without provider reference", slog.String("external_ref", n.ExternalReference))
		return false, nil
	}

	buyerID, courseID := verifone.SplitExternalReference(n.ExternalReference)
	if courseID == "" {
		metrics.WebhookRejected.WithLabelValues("missing_reference").Inc()
		u.logger.Warn("paid notification without external reference", slog.String("refno", n.RefNo))
		return false, nil
	}

	if buyerID == "" {
		buyer, err := u.buyers.GetByEmail(ctx, n.CustomerEmail)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				metrics.WebhookRejected.WithLabelValues("unknown_buyer").Inc()
				u.logger.Warn("no buyer matches notification email",
					slog.String("refno", n.RefNo),
					slog.String("email", n.CustomerEmail),
				)
				return false, nil
			}
			return false, err
		}
		buyerID = buyer.ID
	}

	_, created, err := u.purchases.Record(ctx, buyerID, courseID, n.TotalPrice, n.Currency, model.ProviderVerifone, n.RefNo)
	if err != nil {
		return false, err
	}
	return created, nil
}
