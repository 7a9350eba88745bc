// Package domain contains the customer document model and access contracts.
package domain

import (
	"context"
	"errors"
)

// Customer is a persisted customer document. Identifiers are assigned by the
// upstream dataset, not generated by the store, so CSV re-imports keep their
// natural keys stable.
type Customer struct {
	ID       string `bson:"_id" json:"_id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Age      int    `bson:"age" json:"age"`
	Location string `bson:"location" json:"location"`
	Gender   string `bson:"gender" json:"gender"`
}

// Repository is the customers collection access contract.
type Repository interface {
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	UpsertMany(ctx context.Context, customers []Customer) error
}

// Service exposes read access to customers.
type Service interface {
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
}

var (
	ErrInvalidID = errors.New("invalid_customer_id")
	ErrNotFound  = errors.New("customer_not_found")
)
