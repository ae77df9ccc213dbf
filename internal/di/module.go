package di

import (
	"go.uber.org/fx"

	"github.com/raidergo/checkout/internal/adapter/paypal"
	"github.com/raidergo/checkout/internal/adapter/verifone"
	"github.com/raidergo/checkout/internal/app"
	"github.com/raidergo/checkout/internal/catalog"
	"github.com/raidergo/checkout/internal/config"
	"github.com/raidergo/checkout/internal/logger"
	"github.com/raidergo/checkout/internal/pkg/auth"
	"github.com/raidergo/checkout/internal/server/http/router"
	"github.com/raidergo/checkout/internal/storage/postgres"
	"github.com/raidergo/checkout/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		paypal.Module,
		verifone.Module,
		catalog.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
