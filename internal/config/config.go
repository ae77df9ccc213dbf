package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and
// flags. Provider credentials are validated eagerly: a missing secret fails
// process start instead of silently producing unsigned links or accepting
// unverified callbacks.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	PublicBaseURL   string
	AuthTokenSecret string

	PayPalBaseURL      string
	PayPalClientID     string
	PayPalClientSecret string

	VerifoneCheckoutURL   string
	VerifoneMerchantCode  string
	VerifoneBuyLinkSecret string
	VerifoneIPNSecret     string

	ProviderTimeout        time.Duration
	CatalogCacheTTL        time.Duration
	CatalogRefreshInterval time.Duration
	ShutdownTimeout        time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultAuthTokenSecret     = "change-me-in-production"
	defaultPayPalBaseURL       = "https://api-m.paypal.com"
	defaultVerifoneCheckoutURL = "https://secure.2checkout.com/checkout/buy"
	defaultProviderTimeout     = 10 * time.Second
	defaultCatalogCacheTTL     = 5 * time.Minute
	defaultCatalogRefresh      = time.Minute
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		PublicBaseURL:          getString(lookup, "PUBLIC_BASE_URL", ""),
		AuthTokenSecret:        getString(lookup, "AUTH_TOKEN_SECRET", defaultAuthTokenSecret),
		PayPalBaseURL:          getString(lookup, "PAYPAL_BASE_URL", defaultPayPalBaseURL),
		PayPalClientID:         getString(lookup, "PAYPAL_CLIENT_ID", ""),
		PayPalClientSecret:     getString(lookup, "PAYPAL_CLIENT_SECRET", ""),
		VerifoneCheckoutURL:    getString(lookup, "VERIFONE_CHECKOUT_URL", defaultVerifoneCheckoutURL),
		VerifoneMerchantCode:   getString(lookup, "VERIFONE_MERCHANT_CODE", ""),
		VerifoneBuyLinkSecret:  getString(lookup, "VERIFONE_BUY_LINK_SECRET", ""),
		VerifoneIPNSecret:      getString(lookup, "VERIFONE_IPN_SECRET", ""),
		ProviderTimeout:        getDuration(lookup, "PROVIDER_TIMEOUT", defaultProviderTimeout),
		CatalogCacheTTL:        getDuration(lookup, "CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		CatalogRefreshInterval: getDuration(lookup, "CATALOG_REFRESH_INTERVAL", defaultCatalogRefresh),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("raidergo-checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		providerTimeoutStr = cfg.ProviderTimeout.String()
		cacheTTLStr        = cfg.CatalogCacheTTL.String()
		refreshIntervalStr = cfg.CatalogRefreshInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PublicBaseURL, "public-url", cfg.PublicBaseURL, "Public base URL used for checkout return links")
	fs.StringVar(&cfg.AuthTokenSecret, "auth-secret", cfg.AuthTokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.PayPalBaseURL, "paypal-url", cfg.PayPalBaseURL, "PayPal REST API base URL")
	fs.StringVar(&cfg.VerifoneCheckoutURL, "verifone-url", cfg.VerifoneCheckoutURL, "Verifone hosted checkout base URL")
	fs.StringVar(&providerTimeoutStr, "provider-timeout", providerTimeoutStr, "Timeout for outbound provider calls")
	fs.StringVar(&cacheTTLStr, "catalog-ttl", cacheTTLStr, "Course catalog cache TTL")
	fs.StringVar(&refreshIntervalStr, "catalog-refresh", refreshIntervalStr, "Interval between catalog cache refreshes")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ProviderTimeout, err = time.ParseDuration(providerTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid provider timeout: %w", err)
	}

	if cfg.CatalogCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid catalog cache TTL: %w", err)
	}

	if cfg.CatalogRefreshInterval, err = time.ParseDuration(refreshIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid catalog refresh interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthTokenSecret = string(content)
	}

	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultProviderTimeout
	}

	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = defaultCatalogCacheTTL
	}

	if cfg.CatalogRefreshInterval <= 0 {
		cfg.CatalogRefreshInterval = defaultCatalogRefresh
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	required := []struct {
		value string
		name  string
	}{
		{cfg.DatabaseURI, "database URI"},
		{cfg.PublicBaseURL, "public base URL"},
		{cfg.PayPalClientID, "PayPal client id"},
		{cfg.PayPalClientSecret, "PayPal client secret"},
		{cfg.VerifoneMerchantCode, "Verifone merchant code"},
		{cfg.VerifoneBuyLinkSecret, "Verifone buy-link secret"},
		{cfg.VerifoneIPNSecret, "Verifone IPN secret"},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%s must be provided", r.name)
		}
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
