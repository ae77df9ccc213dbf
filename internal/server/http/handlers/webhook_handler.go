package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raidergo/checkout/internal/adapter/verifone"
	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/metrics"
	"github.com/raidergo/checkout/internal/server/http/dto"
)

// WebhookHandler receives asynchronous payment notifications. Authenticated
// notifications are always acknowledged with 200 so the provider stops
// redelivering, even when business recording fails; such failures are
// logged for operator follow-up instead.
type WebhookHandler struct {
	facade   WebhookFacade
	verifier *verifone.IPNVerifier
	logger   *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade, verifier *verifone.IPNVerifier, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, verifier: verifier, logger: logger}
}

// HandleVerifone handles POST /api/webhooks/verifone.
func (h *WebhookHandler) HandleVerifone(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed form payload"})
		return
	}

	notification, err := h.verifier.Parse(c.Request.PostForm)
	if err != nil {
		if errors.Is(err, domainErrors.ErrSignatureMismatch) {
			metrics.WebhookRejected.WithLabelValues("bad_signature").Inc()
			h.logger.Warn("webhook signature verification failed", slog.String("remote", c.ClientIP()))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "signature verification failed"})
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed notification"})
		return
	}

	recorded, err := h.facade.HandleNotification(c.Request.Context(), notification)
	if err != nil {
		h.logger.Error("webhook processing failed",
			slog.String("refno", notification.RefNo),
			slog.String("error", err.Error()),
		)
	} else if recorded {
		h.logger.Info("purchase recorded from webhook", slog.String("refno", notification.RefNo))
	}

	c.String(http.StatusOK, "OK")
}
