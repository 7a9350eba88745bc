package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dantecodex/graph-mongo/internal/analytics"
	"github.com/dantecodex/graph-mongo/internal/config"
	"github.com/dantecodex/graph-mongo/internal/customer"
	customerdomain "github.com/dantecodex/graph-mongo/internal/customer/domain"
	"github.com/dantecodex/graph-mongo/internal/observability/logger"
	"github.com/dantecodex/graph-mongo/internal/order"
	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
	"github.com/dantecodex/graph-mongo/internal/product"
	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
	"github.com/dantecodex/graph-mongo/internal/seed"
	"github.com/dantecodex/graph-mongo/internal/server"
	"github.com/dantecodex/graph-mongo/internal/store"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		store.Module,
		customer.Module,
		product.Module,
		order.Module,
		analytics.Module,
		fx.Invoke(func(
			lc fx.Lifecycle,
			cfg config.Config,
			log *zap.Logger,
			customers customerdomain.Repository,
			products productdomain.Repository,
			orders orderdomain.Repository,
		) {
			if cfg.SeedDir == "" {
				return
			}
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return seed.Run(ctx, cfg.SeedDir, log, seed.Repositories{
						Customers: customers,
						Products:  products,
						Orders:    orders,
					})
				},
			})
		}),
		server.Module,
	)
	app.Run()
}
