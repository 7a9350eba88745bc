package analytics

import (
	"go.uber.org/fx"

	"github.com/dantecodex/graph-mongo/internal/analytics/service"
	"github.com/dantecodex/graph-mongo/internal/cache"
)

var Module = fx.Module("analytics.service",
	fx.Provide(cache.NewProductCache),
	fx.Provide(service.NewService),
)
