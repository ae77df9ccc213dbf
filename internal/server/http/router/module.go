package router

import (
	"go.uber.org/fx"

	"github.com/raidergo/checkout/internal/app"
	"github.com/raidergo/checkout/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.Facade) handlers.CheckoutServiceFacade { return f }),
	fx.Provide(Setup),
)
