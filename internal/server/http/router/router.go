package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/raidergo/checkout/internal/adapter/verifone"
	"github.com/raidergo/checkout/internal/server/http/handlers"
	"github.com/raidergo/checkout/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CheckoutServiceFacade, verifier *verifone.IPNVerifier, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	purchaseHandler := handlers.NewPurchaseHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, verifier, logger)

	engine.GET("/metrics", middleware.PrometheusHandler())

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/courses", catalogHandler.List)
	api.POST("/webhooks/verifone", webhookHandler.HandleVerifone)

	buyer := api.Group("")
	buyer.Use(middleware.AuthRequired(facade))
	buyer.GET("/purchases", purchaseHandler.List)
	buyer.POST("/checkout/link", checkoutHandler.BuyLink)
	buyer.POST("/checkout/capture", checkoutHandler.Capture)

	return engine
}
