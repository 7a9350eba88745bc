// Package domain contains the product document model and access contracts.
package domain

import (
	"context"
	"errors"
)

// Product is a persisted product document keyed by its upstream identifier.
// Category is an open set of labels used only as an aggregation grouping key.
type Product struct {
	ID       string  `bson:"_id" json:"_id"`
	Name     string  `bson:"name" json:"name"`
	Category string  `bson:"category" json:"category"`
	Price    float64 `bson:"price" json:"price"`
	Stock    int     `bson:"stock" json:"stock"`
}

// Repository is the products collection access contract.
type Repository interface {
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	// FindByIDs returns the products whose identifiers appear in ids.
	// Missing identifiers are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)
	UpsertMany(ctx context.Context, products []Product) error
}

// Service exposes read access to products.
type Service interface {
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
}

var (
	ErrInvalidID = errors.New("invalid_product_id")
	ErrNotFound  = errors.New("product_not_found")
)
