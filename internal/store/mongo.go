// Package store implements the domain repositories on MongoDB. Three
// collections — customers, products, orders — are keyed by the dataset's own
// string identifiers rather than ObjectIDs, so re-importing the CSV sources
// leaves every reference intact.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dantecodex/graph-mongo/internal/config"
	customerdomain "github.com/dantecodex/graph-mongo/internal/customer/domain"
	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

const (
	collCustomers = "customers"
	collProducts  = "products"
	collOrders    = "orders"
)

// NewClient constructs the shared Mongo client and ties its lifetime to the
// fx application: connect and ping on start, disconnect on stop.
func NewClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("build mongo client: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
			defer cancel()
			if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
				return fmt.Errorf("ping mongo: %w", err)
			}
			log.Info("mongo connected", zap.String("database", cfg.MongoDatabase))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})
	return client, nil
}

// NewDatabase selects the configured database from the shared client.
func NewDatabase(client *mongo.Client, cfg config.Config) *mongo.Database {
	return client.Database(cfg.MongoDatabase)
}

// EnsureIndexes creates the lookup indexes the analytics queries lean on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	orderIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
		{Keys: bson.D{{Key: "orderDate", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := db.Collection(collOrders).Indexes().CreateMany(ctx, orderIndexes); err != nil {
		return fmt.Errorf("create order indexes: %w", err)
	}

	categoryIndex := mongo.IndexModel{Keys: bson.D{{Key: "category", Value: 1}}}
	if _, err := db.Collection(collProducts).Indexes().CreateOne(ctx, categoryIndex); err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}

var Module = fx.Module("store",
	fx.Provide(NewClient),
	fx.Provide(NewDatabase),
	fx.Provide(NewCustomerRepository),
	fx.Provide(NewProductRepository),
	fx.Provide(NewOrderRepository),
	fx.Invoke(func(lc fx.Lifecycle, db *mongo.Database) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return EnsureIndexes(ctx, db)
			},
		})
	}),
)

// Compile-time interface checks.
var (
	_ customerdomain.Repository = (*CustomerRepository)(nil)
	_ productdomain.Repository  = (*ProductRepository)(nil)
	_ orderdomain.Repository    = (*OrderRepository)(nil)
)
