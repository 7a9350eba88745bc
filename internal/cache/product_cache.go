package cache

import (
	"github.com/dantecodex/graph-mongo/internal/config"
	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

// NewProductCache backs the analytics join step's product-by-ID lookups.
// A non-positive TTL disables caching entirely.
func NewProductCache(cfg config.Config) Cache[string, productdomain.Product] {
	if cfg.ProductCacheTTL <= 0 {
		return NoopCache[string, productdomain.Product]{}
	}
	return NewTTLCache[string, productdomain.Product]()
}
