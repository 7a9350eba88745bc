// Package seed bulk-imports the CSV dataset into the document store.
// Documents are upserted by their natural string key, so re-running the
// import against the same files is idempotent.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	customerdomain "github.com/dantecodex/graph-mongo/internal/customer/domain"
	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

const (
	customersFile = "customers.csv"
	productsFile  = "products.csv"
	ordersFile    = "orders.csv"
)

// Repositories groups the collection writers the importer needs.
type Repositories struct {
	Customers customerdomain.Repository
	Products  productdomain.Repository
	Orders    orderdomain.Repository
}

// Run imports every CSV file found under dir. Missing files are skipped so a
// partial dataset can still be loaded.
func Run(ctx context.Context, dir string, log *zap.Logger, repos Repositories) error {
	log = log.Named("seed")

	if path := filepath.Join(dir, customersFile); exists(path) {
		customers, err := loadCustomers(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", customersFile, err)
		}
		if err := repos.Customers.UpsertMany(ctx, customers); err != nil {
			return fmt.Errorf("import customers: %w", err)
		}
		log.Info("imported customers", zap.Int("count", len(customers)))
	}

	if path := filepath.Join(dir, productsFile); exists(path) {
		products, err := loadProducts(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", productsFile, err)
		}
		if err := repos.Products.UpsertMany(ctx, products); err != nil {
			return fmt.Errorf("import products: %w", err)
		}
		log.Info("imported products", zap.Int("count", len(products)))
	}

	if path := filepath.Join(dir, ordersFile); exists(path) {
		orders, err := loadOrders(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", ordersFile, err)
		}
		if err := repos.Orders.UpsertMany(ctx, orders); err != nil {
			return fmt.Errorf("import orders: %w", err)
		}
		log.Info("imported orders", zap.Int("count", len(orders)))
	}

	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
