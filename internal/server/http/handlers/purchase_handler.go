package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/server/http/dto"
)

// PurchaseHandler serves the buyer's purchase history.
type PurchaseHandler struct {
	facade PurchaseFacade
}

// NewPurchaseHandler constructs PurchaseHandler.
func NewPurchaseHandler(facade PurchaseFacade) *PurchaseHandler {
	return &PurchaseHandler{facade: facade}
}

// List handles GET /api/purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	buyerID := CurrentBuyerID(c)
	purchases, err := h.facade.Purchases(c.Request.Context(), buyerID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(purchases) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		response = append(response, toPurchaseResponse(p))
	}

	c.JSON(http.StatusOK, response)
}

func toPurchaseResponse(p model.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		CourseID:  p.CourseID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		Provider:  string(p.Provider),
		CreatedAt: p.CreatedAt,
	}
}
