// Package domain contains the order document model and access contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/dantecodex/graph-mongo/internal/lineitem"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// ValidStatus reports whether status is one of the closed order states.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Order is a persisted order document. Line items are stored in RawProducts
// using the dataset's single-quoted convention and are only materialized into
// Products by the lineitem codec; TotalAmount is the imported figure and is
// not re-derived from the items.
type Order struct {
	ID          string          `bson:"_id" json:"_id"`
	CustomerID  string          `bson:"customerId" json:"customerId"`
	RawProducts string          `bson:"products" json:"-"`
	Products    []lineitem.Item `bson:"-" json:"products"`
	TotalAmount float64         `bson:"totalAmount" json:"totalAmount"`
	OrderDate   time.Time       `bson:"orderDate" json:"orderDate"`
	Status      string          `bson:"status" json:"status"`
}

// SpendingTotals is the raw aggregation result for one customer's orders.
type SpendingTotals struct {
	TotalSpent    float64   `bson:"totalSpent"`
	OrderCount    int64     `bson:"orderCount"`
	LastOrderDate time.Time `bson:"lastOrderDate"`
}

// RevenueTotals is the raw aggregation result over completed orders in a
// date range.
type RevenueTotals struct {
	TotalRevenue    float64 `bson:"totalRevenue"`
	CompletedOrders int64   `bson:"completedOrders"`
}

// Repository is the orders collection access contract. Customer identifiers
// are compared by canonical string form on both sides of the predicate, so
// documents whose customerId was stored under a different native
// representation still match.
type Repository interface {
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
	// FindByCustomer returns the customer's orders sorted most recent first.
	FindByCustomer(ctx context.Context, customerID string, skip, limit int64) ([]Order, error)
	// CompletedBetween returns completed orders with orderDate in [from, to].
	CompletedBetween(ctx context.Context, from, to time.Time) ([]Order, error)
	// SpendingByCustomer aggregates the customer's orders across every
	// status. A customer with no orders yields (nil, nil).
	SpendingByCustomer(ctx context.Context, customerID string) (*SpendingTotals, error)
	// RevenueBetween aggregates completed orders in [from, to]; zero totals
	// when nothing matches.
	RevenueBetween(ctx context.Context, from, to time.Time) (RevenueTotals, error)
	UpsertMany(ctx context.Context, orders []Order) error
}

// Service exposes read access to orders with line items decoded.
type Service interface {
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
}

var (
	ErrInvalidID     = errors.New("invalid_order_id")
	ErrInvalidStatus = errors.New("invalid_order_status")
	ErrNotFound      = errors.New("order_not_found")
)
