package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"

	analyticsdomain "github.com/dantecodex/graph-mongo/internal/analytics/domain"
	"github.com/dantecodex/graph-mongo/internal/cache"
	"github.com/dantecodex/graph-mongo/internal/config"
	"github.com/dantecodex/graph-mongo/internal/lineitem"
	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

// fakeOrderRepo serves orders from a slice with the same observable
// semantics the Mongo repository provides.
type fakeOrderRepo struct {
	orders []orderdomain.Order
}

func (f *fakeOrderRepo) Get(ctx context.Context, id string) (*orderdomain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, orderdomain.ErrNotFound
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]orderdomain.Order, error) {
	return append([]orderdomain.Order(nil), f.orders...), nil
}

func (f *fakeOrderRepo) byCustomer(customerID string) []orderdomain.Order {
	var matched []orderdomain.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			matched = append(matched, o)
		}
	}
	return matched
}

func (f *fakeOrderRepo) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	return int64(len(f.byCustomer(customerID))), nil
}

func (f *fakeOrderRepo) FindByCustomer(ctx context.Context, customerID string, skip, limit int64) ([]orderdomain.Order, error) {
	matched := f.byCustomer(customerID)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OrderDate.After(matched[j].OrderDate)
	})
	if skip >= int64(len(matched)) {
		return nil, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeOrderRepo) CompletedBetween(ctx context.Context, from, to time.Time) ([]orderdomain.Order, error) {
	var matched []orderdomain.Order
	for _, o := range f.orders {
		if o.Status != orderdomain.StatusCompleted {
			continue
		}
		if o.OrderDate.Before(from) || o.OrderDate.After(to) {
			continue
		}
		matched = append(matched, o)
	}
	return matched, nil
}

func (f *fakeOrderRepo) SpendingByCustomer(ctx context.Context, customerID string) (*orderdomain.SpendingTotals, error) {
	matched := f.byCustomer(customerID)
	if len(matched) == 0 {
		return nil, nil
	}
	totals := &orderdomain.SpendingTotals{}
	for _, o := range matched {
		totals.TotalSpent += o.TotalAmount
		totals.OrderCount++
		if o.OrderDate.After(totals.LastOrderDate) {
			totals.LastOrderDate = o.OrderDate
		}
	}
	return totals, nil
}

func (f *fakeOrderRepo) RevenueBetween(ctx context.Context, from, to time.Time) (orderdomain.RevenueTotals, error) {
	matched, _ := f.CompletedBetween(ctx, from, to)
	totals := orderdomain.RevenueTotals{}
	for _, o := range matched {
		totals.TotalRevenue += o.TotalAmount
		totals.CompletedOrders++
	}
	return totals, nil
}

func (f *fakeOrderRepo) UpsertMany(ctx context.Context, orders []orderdomain.Order) error {
	return nil
}

type fakeProductRepo struct {
	products map[string]productdomain.Product
}

func (f *fakeProductRepo) Get(ctx context.Context, id string) (*productdomain.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, productdomain.ErrNotFound
}

func (f *fakeProductRepo) List(ctx context.Context) ([]productdomain.Product, error) {
	var all []productdomain.Product
	for _, p := range f.products {
		all = append(all, p)
	}
	return all, nil
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []string) ([]productdomain.Product, error) {
	var matched []productdomain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (f *fakeProductRepo) UpsertMany(ctx context.Context, products []productdomain.Product) error {
	return nil
}

func newTestService(orders []orderdomain.Order, products map[string]productdomain.Product) analyticsdomain.Service {
	return NewService(ServiceParam{
		Config:       config.Config{ProductCacheTTL: time.Minute},
		Log:          zap.NewNop(),
		Orders:       &fakeOrderRepo{orders: orders},
		Products:     &fakeProductRepo{products: products},
		ProductCache: cache.NewTTLCache[string, productdomain.Product](),
	})
}

func mustEncode(t *testing.T, items []lineitem.Item) string {
	t.Helper()
	raw, err := lineitem.Encode(items)
	if err != nil {
		t.Fatalf("encode line items: %v", err)
	}
	return raw
}

func date(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCustomerSpendingTotals(t *testing.T) {
	svc := newTestService([]orderdomain.Order{
		{ID: "O1", CustomerID: "C1", RawProducts: "[]", TotalAmount: 150.00, OrderDate: date("2024-03-01T10:00:00Z"), Status: orderdomain.StatusCompleted},
		{ID: "O2", CustomerID: "C1", RawProducts: "[]", TotalAmount: 50.00, OrderDate: date("2024-03-05T10:00:00Z"), Status: orderdomain.StatusCompleted},
		{ID: "O3", CustomerID: "C2", RawProducts: "[]", TotalAmount: 999.00, OrderDate: date("2024-03-02T10:00:00Z"), Status: orderdomain.StatusCompleted},
	}, nil)

	resp, err := svc.CustomerSpending(context.Background(), "C1")
	if err != nil {
		t.Fatalf("customer spending: %v", err)
	}
	if resp == nil {
		t.Fatalf("expected a result")
	}
	if resp.TotalSpent != 200.00 {
		t.Fatalf("expected totalSpent 200.00, got %v", resp.TotalSpent)
	}
	if resp.OrderCount != 2 {
		t.Fatalf("expected orderCount 2, got %d", resp.OrderCount)
	}
	if resp.AverageOrderValue != 100.00 {
		t.Fatalf("expected averageOrderValue 100.00, got %v", resp.AverageOrderValue)
	}
	if !resp.LastOrderDate.Equal(date("2024-03-05T10:00:00Z")) {
		t.Fatalf("expected lastOrderDate of O2, got %v", resp.LastOrderDate)
	}
}

func TestCustomerSpendingIncludesEveryStatus(t *testing.T) {
	svc := newTestService([]orderdomain.Order{
		{ID: "O1", CustomerID: "C1", RawProducts: "[]", TotalAmount: 10.00, OrderDate: date("2024-01-01T00:00:00Z"), Status: orderdomain.StatusPending},
		{ID: "O2", CustomerID: "C1", RawProducts: "[]", TotalAmount: 20.00, OrderDate: date("2024-01-02T00:00:00Z"), Status: orderdomain.StatusCanceled},
	}, nil)

	resp, err := svc.CustomerSpending(context.Background(), "C1")
	if err != nil {
		t.Fatalf("customer spending: %v", err)
	}
	if resp == nil || resp.TotalSpent != 30.00 || resp.OrderCount != 2 {
		t.Fatalf("expected pending and canceled orders to count, got %+v", resp)
	}
}

func TestCustomerSpendingNoOrders(t *testing.T) {
	svc := newTestService(nil, nil)

	resp, err := svc.CustomerSpending(context.Background(), "C404")
	if err != nil {
		t.Fatalf("expected empty result, got error %v", err)
	}
	if resp != nil {
		t.Fatalf("expected nil result, got %+v", resp)
	}
}

func TestCustomerSpendingRoundsToTwoDecimals(t *testing.T) {
	svc := newTestService([]orderdomain.Order{
		{ID: "O1", CustomerID: "C1", RawProducts: "[]", TotalAmount: 10.25, OrderDate: date("2024-01-01T00:00:00Z"), Status: orderdomain.StatusCompleted},
		{ID: "O2", CustomerID: "C1", RawProducts: "[]", TotalAmount: 10.24, OrderDate: date("2024-01-02T00:00:00Z"), Status: orderdomain.StatusCompleted},
	}, nil)

	resp, err := svc.CustomerSpending(context.Background(), "C1")
	if err != nil {
		t.Fatalf("customer spending: %v", err)
	}
	if resp.TotalSpent != 20.49 {
		t.Fatalf("expected totalSpent 20.49, got %v", resp.TotalSpent)
	}
	if resp.AverageOrderValue != 10.25 {
		t.Fatalf("expected averageOrderValue 10.25, got %v", resp.AverageOrderValue)
	}
}

func topSellerFixtures(t *testing.T) ([]orderdomain.Order, map[string]productdomain.Product) {
	t.Helper()
	orders := []orderdomain.Order{
		{
			ID: "O1", CustomerID: "C1", Status: orderdomain.StatusCompleted,
			OrderDate: date("2024-02-01T00:00:00Z"), TotalAmount: 100,
			RawProducts: mustEncode(t, []lineitem.Item{
				{ProductID: "P1", Quantity: 3, PriceAtPurchase: 10},
				{ProductID: "P2", Quantity: 2, PriceAtPurchase: 20},
			}),
		},
		{
			ID: "O2", CustomerID: "C2", Status: orderdomain.StatusPending,
			OrderDate: date("2024-02-02T00:00:00Z"), TotalAmount: 60,
			RawProducts: mustEncode(t, []lineitem.Item{
				{ProductID: "P2", Quantity: 3, PriceAtPurchase: 20},
			}),
		},
	}
	products := map[string]productdomain.Product{
		"P1": {ID: "P1", Name: "Keyboard", Category: "Electronics", Price: 10},
		"P2": {ID: "P2", Name: "Mouse", Category: "Electronics", Price: 20},
	}
	return orders, products
}

func TestTopSellingProductsRanksAndLimits(t *testing.T) {
	orders, products := topSellerFixtures(t)
	svc := newTestService(orders, products)

	resp, err := svc.TopSellingProducts(context.Background(), 1)
	if err != nil {
		t.Fatalf("top selling products: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(resp))
	}
	if resp[0].ProductID != "P2" || resp[0].TotalSold != 5 {
		t.Fatalf("expected P2 with 5 sold, got %+v", resp[0])
	}
	if resp[0].Name != "Mouse" {
		t.Fatalf("expected joined product name, got %q", resp[0].Name)
	}
}

func TestTopSellingProductsClampsLimit(t *testing.T) {
	orders, products := topSellerFixtures(t)
	svc := newTestService(orders, products)

	resp, err := svc.TopSellingProducts(context.Background(), 0)
	if err != nil {
		t.Fatalf("top selling products: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected limit clamped to 1, got %d entries", len(resp))
	}
}

func TestTopSellingProductsDeterministicTieBreak(t *testing.T) {
	orders := []orderdomain.Order{
		{
			ID: "O1", CustomerID: "C1", Status: orderdomain.StatusCompleted,
			OrderDate: date("2024-02-01T00:00:00Z"), TotalAmount: 10,
			RawProducts: mustEncode(t, []lineitem.Item{
				{ProductID: "PB", Quantity: 4, PriceAtPurchase: 1},
				{ProductID: "PA", Quantity: 4, PriceAtPurchase: 1},
			}),
		},
	}
	products := map[string]productdomain.Product{
		"PA": {ID: "PA", Name: "A"},
		"PB": {ID: "PB", Name: "B"},
	}
	svc := newTestService(orders, products)

	for i := 0; i < 5; i++ {
		resp, err := svc.TopSellingProducts(context.Background(), 2)
		if err != nil {
			t.Fatalf("top selling products: %v", err)
		}
		if len(resp) != 2 || resp[0].ProductID != "PA" || resp[1].ProductID != "PB" {
			t.Fatalf("expected deterministic [PA PB], got %+v", resp)
		}
	}
}

func TestTopSellingProductsDropsOrphanedReferences(t *testing.T) {
	orders := []orderdomain.Order{
		{
			ID: "O1", CustomerID: "C1", Status: orderdomain.StatusCompleted,
			OrderDate: date("2024-02-01T00:00:00Z"), TotalAmount: 10,
			RawProducts: mustEncode(t, []lineitem.Item{
				{ProductID: "GHOST", Quantity: 9, PriceAtPurchase: 1},
				{ProductID: "P1", Quantity: 1, PriceAtPurchase: 1},
			}),
		},
	}
	products := map[string]productdomain.Product{
		"P1": {ID: "P1", Name: "Keyboard"},
	}
	svc := newTestService(orders, products)

	resp, err := svc.TopSellingProducts(context.Background(), 5)
	if err != nil {
		t.Fatalf("top selling products: %v", err)
	}
	if len(resp) != 1 || resp[0].ProductID != "P1" {
		t.Fatalf("expected orphaned group dropped, got %+v", resp)
	}
}

func TestTopSellingProductsSurfacesDecodeFailure(t *testing.T) {
	orders := []orderdomain.Order{
		{ID: "BAD", CustomerID: "C1", RawProducts: "{broken", TotalAmount: 1, OrderDate: date("2024-02-01T00:00:00Z"), Status: orderdomain.StatusCompleted},
	}
	svc := newTestService(orders, nil)

	_, err := svc.TopSellingProducts(context.Background(), 5)
	var decodeErr *lineitem.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *lineitem.DecodeError, got %v", err)
	}
	if decodeErr.OrderID != "BAD" {
		t.Fatalf("expected offending order BAD, got %q", decodeErr.OrderID)
	}
}

func TestSalesAnalyticsSameDayRange(t *testing.T) {
	orders := []orderdomain.Order{
		{
			ID: "O1", CustomerID: "C1", Status: orderdomain.StatusCompleted,
			OrderDate: date("2024-04-10T18:30:00Z"), TotalAmount: 40,
			RawProducts: mustEncode(t, []lineitem.Item{
				{ProductID: "P1", Quantity: 2, PriceAtPurchase: 20},
			}),
		},
		// In range but not completed: excluded everywhere.
		{
			ID: "O2", CustomerID: "C1", Status: orderdomain.StatusPending,
			OrderDate: date("2024-04-10T12:00:00Z"), TotalAmount: 500,
			RawProducts: mustEncode(t, []lineitem.Item{
				{ProductID: "P1", Quantity: 5, PriceAtPurchase: 100},
			}),
		},
		// Completed but out of range.
		{
			ID: "O3", CustomerID: "C2", Status: orderdomain.StatusCompleted,
			OrderDate: date("2024-04-11T00:00:01Z"), TotalAmount: 70,
			RawProducts: mustEncode(t, []lineitem.Item{
				{ProductID: "P2", Quantity: 1, PriceAtPurchase: 70},
			}),
		},
	}
	products := map[string]productdomain.Product{
		"P1": {ID: "P1", Name: "Keyboard", Category: "Electronics"},
		"P2": {ID: "P2", Name: "Desk", Category: "Furniture"},
	}
	svc := newTestService(orders, products)

	resp, err := svc.SalesAnalytics(context.Background(), "2024-04-10", "2024-04-10")
	if err != nil {
		t.Fatalf("sales analytics: %v", err)
	}
	if resp.TotalRevenue != 40 {
		t.Fatalf("expected totalRevenue 40, got %v", resp.TotalRevenue)
	}
	if resp.CompletedOrders != 1 {
		t.Fatalf("expected 1 completed order, got %d", resp.CompletedOrders)
	}
	if len(resp.CategoryBreakdown) != 1 {
		t.Fatalf("expected 1 category, got %+v", resp.CategoryBreakdown)
	}
	if got := resp.CategoryBreakdown[0]; got.Category != "Electronics" || got.Revenue != 40 {
		t.Fatalf("expected Electronics 40, got %+v", got)
	}
}

func TestSalesAnalyticsCategoryBreakdownSortsByRevenue(t *testing.T) {
	orders := []orderdomain.Order{
		{
			ID: "O1", CustomerID: "C1", Status: orderdomain.StatusCompleted,
			OrderDate: date("2024-04-02T09:00:00Z"), TotalAmount: 125,
			RawProducts: mustEncode(t, []lineitem.Item{
				{ProductID: "P1", Quantity: 1, PriceAtPurchase: 25},
				{ProductID: "P2", Quantity: 2, PriceAtPurchase: 50},
			}),
		},
	}
	products := map[string]productdomain.Product{
		"P1": {ID: "P1", Category: "Electronics"},
		"P2": {ID: "P2", Category: "Furniture"},
	}
	svc := newTestService(orders, products)

	resp, err := svc.SalesAnalytics(context.Background(), "2024-04-01", "2024-04-30")
	if err != nil {
		t.Fatalf("sales analytics: %v", err)
	}
	if len(resp.CategoryBreakdown) != 2 {
		t.Fatalf("expected 2 categories, got %+v", resp.CategoryBreakdown)
	}
	if resp.CategoryBreakdown[0].Category != "Furniture" || resp.CategoryBreakdown[0].Revenue != 100 {
		t.Fatalf("expected Furniture 100 first, got %+v", resp.CategoryBreakdown[0])
	}
	if resp.CategoryBreakdown[1].Category != "Electronics" || resp.CategoryBreakdown[1].Revenue != 25 {
		t.Fatalf("expected Electronics 25 second, got %+v", resp.CategoryBreakdown[1])
	}
}

func TestSalesAnalyticsEmptyRange(t *testing.T) {
	svc := newTestService(nil, nil)

	resp, err := svc.SalesAnalytics(context.Background(), "2024-04-01", "2024-04-30")
	if err != nil {
		t.Fatalf("sales analytics: %v", err)
	}
	if resp.TotalRevenue != 0 || resp.CompletedOrders != 0 {
		t.Fatalf("expected zero totals, got %+v", resp)
	}
	if len(resp.CategoryBreakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", resp.CategoryBreakdown)
	}
}

func TestSalesAnalyticsRejectsBadDates(t *testing.T) {
	svc := newTestService(nil, nil)

	if _, err := svc.SalesAnalytics(context.Background(), "not-a-date", "2024-04-30"); !errors.Is(err, analyticsdomain.ErrInvalidStartDate) {
		t.Fatalf("expected ErrInvalidStartDate, got %v", err)
	}
	if _, err := svc.SalesAnalytics(context.Background(), "2024-04-01", "30/04/2024"); !errors.Is(err, analyticsdomain.ErrInvalidEndDate) {
		t.Fatalf("expected ErrInvalidEndDate, got %v", err)
	}
}

func customerOrdersFixtures(t *testing.T) []orderdomain.Order {
	t.Helper()
	raw := mustEncode(t, []lineitem.Item{{ProductID: "P1", Quantity: 1, PriceAtPurchase: 5}})
	orders := make([]orderdomain.Order, 0, 5)
	for i := 0; i < 5; i++ {
		orders = append(orders, orderdomain.Order{
			ID:          string(rune('A' + i)),
			CustomerID:  "C1",
			RawProducts: raw,
			TotalAmount: 5,
			OrderDate:   date("2024-05-01T00:00:00Z").Add(time.Duration(i) * 24 * time.Hour),
			Status:      orderdomain.StatusCompleted,
		})
	}
	return orders
}

func TestCustomerOrdersPagination(t *testing.T) {
	svc := newTestService(customerOrdersFixtures(t), nil)

	resp, err := svc.CustomerOrders(context.Background(), "C1", 2, 2)
	if err != nil {
		t.Fatalf("customer orders: %v", err)
	}
	if resp.TotalPages != 3 {
		t.Fatalf("expected totalPages 3, got %d", resp.TotalPages)
	}
	if resp.CurrentPage != 2 {
		t.Fatalf("expected currentPage 2, got %d", resp.CurrentPage)
	}
	if len(resp.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(resp.Orders))
	}
	// Reverse-chronological: page 2 of size 2 holds the 3rd and 4th newest.
	if resp.Orders[0].ID != "C" || resp.Orders[1].ID != "B" {
		t.Fatalf("expected orders [C B], got [%s %s]", resp.Orders[0].ID, resp.Orders[1].ID)
	}
	for _, o := range resp.Orders {
		if len(o.Products) != 1 {
			t.Fatalf("expected decoded line items on order %s", o.ID)
		}
	}
}

func TestCustomerOrdersPastTheEnd(t *testing.T) {
	svc := newTestService(customerOrdersFixtures(t), nil)

	resp, err := svc.CustomerOrders(context.Background(), "C1", 9, 2)
	if err != nil {
		t.Fatalf("expected no error past the end, got %v", err)
	}
	if len(resp.Orders) != 0 {
		t.Fatalf("expected empty page, got %d orders", len(resp.Orders))
	}
	if resp.TotalPages != 3 {
		t.Fatalf("expected true totalPages 3, got %d", resp.TotalPages)
	}
}

func TestCustomerOrdersValidation(t *testing.T) {
	svc := newTestService(nil, nil)

	if _, err := svc.CustomerOrders(context.Background(), "C1", 0, 10); !errors.Is(err, analyticsdomain.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := svc.CustomerOrders(context.Background(), "C1", 1, 0); !errors.Is(err, analyticsdomain.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
}
