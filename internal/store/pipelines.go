package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// customerKeyFilter matches orders whose customerId equals customerID once
// both sides are normalized to their canonical string form. Identifiers are
// stored as strings today, but historical imports wrote some references under
// native document identifiers, so the comparison goes through $toString
// rather than a plain field equality.
func customerKeyFilter(customerID string) bson.D {
	return bson.D{{Key: "$expr", Value: bson.D{
		{Key: "$eq", Value: bson.A{
			bson.D{{Key: "$toString", Value: "$customerId"}},
			customerID,
		}},
	}}}
}

// customerSpendingPipeline folds every order of one customer, regardless of
// status, into spend totals.
func customerSpendingPipeline(customerID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: customerKeyFilter(customerID)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$customerId"},
			{Key: "totalSpent", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
			{Key: "orderCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "lastOrderDate", Value: bson.D{{Key: "$max", Value: "$orderDate"}}},
		}}},
	}
}

// completedRangeFilter matches completed orders with orderDate in [from, to].
func completedRangeFilter(from, to time.Time) bson.D {
	return bson.D{
		{Key: "orderDate", Value: bson.D{
			{Key: "$gte", Value: from},
			{Key: "$lte", Value: to},
		}},
		{Key: "status", Value: "completed"},
	}
}

// revenuePipeline sums revenue and counts completed orders in [from, to].
func revenuePipeline(from, to time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: completedRangeFilter(from, to)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
			{Key: "completedOrders", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}
