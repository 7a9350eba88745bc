package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

// ProductRepository is the typed accessor over the products collection.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) productdomain.Repository {
	return &ProductRepository{coll: db.Collection(collProducts)}
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*productdomain.Product, error) {
	var product productdomain.Product
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, productdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]productdomain.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var products []productdomain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]productdomain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var products []productdomain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) UpsertMany(ctx context.Context, products []productdomain.Product) error {
	if len(products) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(products))
	for _, product := range products {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: product.ID}}).
			SetReplacement(product).
			SetUpsert(true))
	}
	_, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}
