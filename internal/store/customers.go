package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	customerdomain "github.com/dantecodex/graph-mongo/internal/customer/domain"
)

// CustomerRepository is the typed accessor over the customers collection.
type CustomerRepository struct {
	coll *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) customerdomain.Repository {
	return &CustomerRepository{coll: db.Collection(collCustomers)}
}

func (r *CustomerRepository) Get(ctx context.Context, id string) (*customerdomain.Customer, error) {
	var customer customerdomain.Customer
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, customerdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]customerdomain.Customer, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var customers []customerdomain.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepository) UpsertMany(ctx context.Context, customers []customerdomain.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(customers))
	for _, customer := range customers {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: customer.ID}}).
			SetReplacement(customer).
			SetUpsert(true))
	}
	_, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}
