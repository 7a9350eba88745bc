// Package domain declares the analytics query contracts and response shapes.
package domain

import (
	"context"
	"errors"
	"time"

	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
)

// CustomerSpending summarizes one customer's orders across every status.
type CustomerSpending struct {
	CustomerID        string    `json:"customerId"`
	TotalSpent        float64   `json:"totalSpent"`
	OrderCount        int64     `json:"orderCount"`
	AverageOrderValue float64   `json:"averageOrderValue"`
	LastOrderDate     time.Time `json:"lastOrderDate"`
}

// TopProduct is one entry of the top-sellers ranking.
type TopProduct struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	TotalSold int64  `json:"totalSold"`
}

// CategoryBreakdown is per-category revenue over a date range.
type CategoryBreakdown struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// SalesAnalytics combines revenue totals with the category breakdown for
// completed orders in a date range.
type SalesAnalytics struct {
	TotalRevenue      float64             `json:"totalRevenue"`
	CompletedOrders   int64               `json:"completedOrders"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
}

// CustomerOrdersResponse is one page of a customer's order history.
type CustomerOrdersResponse struct {
	Orders      []orderdomain.Order `json:"orders"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
}

// Service is the analytics query façade. Every operation is stateless,
// read-only and safe to invoke concurrently. An empty dataset is a valid
// zero-valued answer, never an error.
type Service interface {
	// CustomerSpending returns nil when the customer has no orders.
	CustomerSpending(ctx context.Context, customerID string) (*CustomerSpending, error)
	// TopSellingProducts clamps limit to a minimum of 1.
	TopSellingProducts(ctx context.Context, limit int) ([]TopProduct, error)
	// SalesAnalytics accepts dates as 2006-01-02 or RFC 3339; a date-only
	// end is widened to the end of that calendar day.
	SalesAnalytics(ctx context.Context, startDate, endDate string) (*SalesAnalytics, error)
	// CustomerOrders requires page and limit >= 1; pages past the end
	// return an empty list with the true totalPages.
	CustomerOrders(ctx context.Context, customerID string, page, limit int) (*CustomerOrdersResponse, error)
}

var (
	ErrInvalidStartDate = errors.New("invalid_start_date")
	ErrInvalidEndDate   = errors.New("invalid_end_date")
	ErrInvalidPage      = errors.New("invalid_page")
	ErrInvalidLimit     = errors.New("invalid_limit")
)
