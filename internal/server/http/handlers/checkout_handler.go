package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/server/http/dto"
)

// CheckoutHandler manages buy-link generation and interactive capture.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// BuyLink handles POST /api/checkout/link.
func (h *CheckoutHandler) BuyLink(c *gin.Context) {
	buyerID := CurrentBuyerID(c)

	var req dto.BuyLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CourseID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "courseId is required"})
		return
	}

	url, err := h.facade.BuyLink(c.Request.Context(), buyerID, req.CourseID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "course not found"})
		} else {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "checkout unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.BuyLinkResponse{URL: url})
}

// Capture handles POST /api/checkout/capture. The widget-level approval is
// a hint: nothing is recorded until the provider confirms the order
// server-side. A repeated capture for the same order succeeds without a
// second row.
func (h *CheckoutHandler) Capture(c *gin.Context) {
	buyerID := CurrentBuyerID(c)

	var req dto.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" || req.CourseID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "orderId and courseId are required"})
		return
	}

	_, _, err := h.facade.Capture(c.Request.Context(), buyerID, req.OrderID, req.CourseID, req.Amount)
	if err != nil {
		var unavailable domainErrors.ProviderUnavailableError
		switch {
		case errors.Is(err, domainErrors.ErrPaymentNotCompleted), errors.Is(err, domainErrors.ErrAuthenticity):
			c.JSON(http.StatusPaymentRequired, dto.ErrorResponse{Error: "payment could not be verified"})
		case errors.Is(err, domainErrors.ErrProviderAuth):
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "payment provider rejected our credentials"})
		case errors.As(err, &unavailable):
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "payment provider unavailable, please retry"})
		case errors.Is(err, domainErrors.ErrNotFound), errors.Is(err, domainErrors.ErrInvalidAmount), errors.Is(err, domainErrors.ErrInvalidReference):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid capture request"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CaptureResponse{Success: true})
}
