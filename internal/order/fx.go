package order

import (
	"go.uber.org/fx"

	"github.com/dantecodex/graph-mongo/internal/order/service"
)

var Module = fx.Module("order.service",
	fx.Provide(service.NewService),
)
