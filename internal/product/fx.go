package product

import (
	"go.uber.org/fx"

	"github.com/dantecodex/graph-mongo/internal/product/service"
)

var Module = fx.Module("product.service",
	fx.Provide(service.NewService),
)
