package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	analyticsdomain "github.com/dantecodex/graph-mongo/internal/analytics/domain"
	"github.com/dantecodex/graph-mongo/internal/cache"
	"github.com/dantecodex/graph-mongo/internal/config"
	"github.com/dantecodex/graph-mongo/internal/lineitem"
	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

const dateOnly = "2006-01-02"

type ServiceParam struct {
	fx.In

	Config       config.Config
	Log          *zap.Logger
	Orders       orderdomain.Repository
	Products     productdomain.Repository
	ProductCache cache.Cache[string, productdomain.Product]
}

// Service answers the four analytic queries over the order and product
// collections. It holds no per-request state; every operation is idempotent
// against unchanged data.
type Service struct {
	log      *zap.Logger
	orders   orderdomain.Repository
	products productdomain.Repository
	cache    cache.Cache[string, productdomain.Product]
	cacheTTL time.Duration
}

func NewService(p ServiceParam) analyticsdomain.Service {
	return &Service{
		log:      p.Log.Named("analytics.service"),
		orders:   p.Orders,
		products: p.Products,
		cache:    p.ProductCache,
		cacheTTL: p.Config.ProductCacheTTL,
	}
}

// CustomerSpending aggregates every order belonging to the customer,
// regardless of status. Pending and canceled orders count toward spend; that
// policy is inherited from the upstream dataset semantics.
func (s *Service) CustomerSpending(ctx context.Context, customerID string) (*analyticsdomain.CustomerSpending, error) {
	totals, err := s.orders.SpendingByCustomer(ctx, strings.TrimSpace(customerID))
	if err != nil {
		return nil, fmt.Errorf("aggregate customer spending: %w", err)
	}
	if totals == nil || totals.OrderCount == 0 {
		return nil, nil
	}
	return &analyticsdomain.CustomerSpending{
		CustomerID:        strings.TrimSpace(customerID),
		TotalSpent:        round2(totals.TotalSpent),
		OrderCount:        totals.OrderCount,
		AverageOrderValue: round2(totals.TotalSpent / float64(totals.OrderCount)),
		LastOrderDate:     totals.LastOrderDate,
	}, nil
}

// TopSellingProducts ranks products by units sold across all orders and all
// statuses. Line items referencing an unknown product are dropped at the join
// step (inner-join semantics); products with no sales never appear.
func (s *Service) TopSellingProducts(ctx context.Context, limit int) ([]analyticsdomain.TopProduct, error) {
	if limit < 1 {
		limit = 1
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	sold := make(map[string]int64)
	for _, order := range orders {
		items, err := lineitem.DecodeOrder(order.ID, order.RawProducts)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			sold[item.ProductID] += int64(item.Quantity)
		}
	}

	ranked := make([]analyticsdomain.TopProduct, 0, len(sold))
	for productID, total := range sold {
		ranked = append(ranked, analyticsdomain.TopProduct{ProductID: productID, TotalSold: total})
	}
	// Ties break on productId so identical input always ranks identically.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalSold != ranked[j].TotalSold {
			return ranked[i].TotalSold > ranked[j].TotalSold
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]string, 0, len(ranked))
	for _, entry := range ranked {
		ids = append(ids, entry.ProductID)
	}
	byID, err := s.resolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]analyticsdomain.TopProduct, 0, len(ranked))
	for _, entry := range ranked {
		product, ok := byID[entry.ProductID]
		if !ok {
			s.log.Warn("dropping line-item group with no matching product",
				zap.String("product_id", entry.ProductID),
				zap.Int64("total_sold", entry.TotalSold))
			continue
		}
		entry.Name = product.Name
		result = append(result, entry)
	}
	return result, nil
}

// SalesAnalytics computes revenue totals and the per-category breakdown for
// completed orders in [startDate, endDate]. The two aggregations share a
// predicate but not an ordering dependency, so they run concurrently.
func (s *Service) SalesAnalytics(ctx context.Context, startDate, endDate string) (*analyticsdomain.SalesAnalytics, error) {
	from, err := parseDate(startDate, false)
	if err != nil {
		return nil, analyticsdomain.ErrInvalidStartDate
	}
	to, err := parseDate(endDate, true)
	if err != nil {
		return nil, analyticsdomain.ErrInvalidEndDate
	}

	var (
		totals    orderdomain.RevenueTotals
		breakdown []analyticsdomain.CategoryBreakdown
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.orders.RevenueBetween(gctx, from, to)
		if err != nil {
			return fmt.Errorf("aggregate revenue: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.categoryBreakdown(gctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &analyticsdomain.SalesAnalytics{
		TotalRevenue:      round2(totals.TotalRevenue),
		CompletedOrders:   totals.CompletedOrders,
		CategoryBreakdown: breakdown,
	}, nil
}

func (s *Service) categoryBreakdown(ctx context.Context, from, to time.Time) ([]analyticsdomain.CategoryBreakdown, error) {
	orders, err := s.orders.CompletedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("find completed orders: %w", err)
	}

	type decoded struct {
		orderID string
		items   []lineitem.Item
	}
	all := make([]decoded, 0, len(orders))
	idSet := make(map[string]struct{})
	for _, order := range orders {
		items, err := lineitem.DecodeOrder(order.ID, order.RawProducts)
		if err != nil {
			return nil, err
		}
		all = append(all, decoded{orderID: order.ID, items: items})
		for _, item := range items {
			idSet[item.ProductID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	byID, err := s.resolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	revenue := make(map[string]float64)
	for _, order := range all {
		for _, item := range order.items {
			product, ok := byID[item.ProductID]
			if !ok {
				continue
			}
			revenue[product.Category] += float64(item.Quantity) * item.PriceAtPurchase
		}
	}

	breakdown := make([]analyticsdomain.CategoryBreakdown, 0, len(revenue))
	for category, total := range revenue {
		breakdown = append(breakdown, analyticsdomain.CategoryBreakdown{
			Category: category,
			Revenue:  round2(total),
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Revenue != breakdown[j].Revenue {
			return breakdown[i].Revenue > breakdown[j].Revenue
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown, nil
}

// CustomerOrders pages through a customer's orders, most recent first.
// A page past the end is a valid empty result carrying the true totalPages.
func (s *Service) CustomerOrders(ctx context.Context, customerID string, page, limit int) (*analyticsdomain.CustomerOrdersResponse, error) {
	if page < 1 {
		return nil, analyticsdomain.ErrInvalidPage
	}
	if limit < 1 {
		return nil, analyticsdomain.ErrInvalidLimit
	}

	customerID = strings.TrimSpace(customerID)
	total, err := s.orders.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("count customer orders: %w", err)
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	orders, err := s.orders.FindByCustomer(ctx, customerID, int64(page-1)*int64(limit), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("find customer orders: %w", err)
	}
	for i := range orders {
		items, err := lineitem.DecodeOrder(orders[i].ID, orders[i].RawProducts)
		if err != nil {
			return nil, err
		}
		orders[i].Products = items
	}

	return &analyticsdomain.CustomerOrdersResponse{
		Orders:      orders,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// resolveProducts batch-loads products by identifier, consulting the TTL
// cache first and fetching only the misses.
func (s *Service) resolveProducts(ctx context.Context, ids []string) (map[string]productdomain.Product, error) {
	byID := make(map[string]productdomain.Product, len(ids))
	misses := make([]string, 0, len(ids))
	for _, id := range ids {
		if product, ok := s.cache.Get(id); ok {
			byID[id] = product
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return byID, nil
	}

	products, err := s.products.FindByIDs(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	for _, product := range products {
		byID[product.ID] = product
		s.cache.Set(product.ID, product, s.cacheTTL)
	}
	return byID, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp. A date-only
// end bound is widened to 23:59:59.999 so a same-day range covers the whole
// day.
func parseDate(value string, endOfDay bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateOnly, value); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Millisecond)
		}
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
