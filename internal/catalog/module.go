package catalog

import (
	"go.uber.org/fx"

	"github.com/raidergo/checkout/internal/config"
)

// Module provides the course cache.
var Module = fx.Provide(newCache)

type cacheParams struct {
	fx.In

	Config *config.Config
}

func newCache(p cacheParams) *Cache {
	return NewCache(p.Config.CatalogCacheTTL, SystemClock{})
}
