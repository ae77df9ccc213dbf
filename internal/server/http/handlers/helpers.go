package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/raidergo/checkout/internal/server/http/middleware"
)

// CurrentBuyerID extracts the authenticated buyer identifier from context.
func CurrentBuyerID(c *gin.Context) string {
	val, ok := c.Get(middleware.BuyerIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}
