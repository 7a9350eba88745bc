package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
)

// OrderRepository is the typed accessor over the orders collection.
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) orderdomain.Repository {
	return &OrderRepository{coll: db.Collection(collOrders)}
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, orderdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]orderdomain.Order, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var orders []orderdomain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	return r.coll.CountDocuments(ctx, customerKeyFilter(customerID))
}

func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID string, skip, limit int64) ([]orderdomain.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "orderDate", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, customerKeyFilter(customerID), opts)
	if err != nil {
		return nil, err
	}
	var orders []orderdomain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) CompletedBetween(ctx context.Context, from, to time.Time) ([]orderdomain.Order, error) {
	cursor, err := r.coll.Find(ctx, completedRangeFilter(from, to))
	if err != nil {
		return nil, err
	}
	var orders []orderdomain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) SpendingByCustomer(ctx context.Context, customerID string) (*orderdomain.SpendingTotals, error) {
	cursor, err := r.coll.Aggregate(ctx, customerSpendingPipeline(customerID))
	if err != nil {
		return nil, err
	}
	var rows []orderdomain.SpendingTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *OrderRepository) RevenueBetween(ctx context.Context, from, to time.Time) (orderdomain.RevenueTotals, error) {
	cursor, err := r.coll.Aggregate(ctx, revenuePipeline(from, to))
	if err != nil {
		return orderdomain.RevenueTotals{}, err
	}
	var rows []orderdomain.RevenueTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return orderdomain.RevenueTotals{}, err
	}
	if len(rows) == 0 {
		return orderdomain.RevenueTotals{}, nil
	}
	return rows[0], nil
}

func (r *OrderRepository) UpsertMany(ctx context.Context, orders []orderdomain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(orders))
	for _, order := range orders {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: order.ID}}).
			SetReplacement(order).
			SetUpsert(true))
	}
	_, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}
