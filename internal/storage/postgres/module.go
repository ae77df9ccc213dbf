package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/raidergo/checkout/internal/config"
	"github.com/raidergo/checkout/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.BuyerRepository { return s.Buyers() },
		func(s *Storage) repository.CourseRepository { return s.Courses() },
		func(s *Storage) repository.PurchaseRepository { return s.Purchases() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
