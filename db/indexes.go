package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the query paths rely on. Failures are
// logged and returned but the server still starts; mongo enforces the unique
// ones once created.
func EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var firstErr error
	create := func(coll *mongo.Collection, model mongo.IndexModel) {
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			log.Println("EnsureIndexes:", coll.Name(), "index error:", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	create(UserCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
	create(UserCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "userid", Value: 1}},
		Options: options.Index().SetName("userid_unique").SetUnique(true),
	})
	create(OrderCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderNumber", Value: 1}},
		Options: options.Index().SetName("ordernumber_unique").SetUnique(true),
	})
	// text search over the catalog
	create(ProductCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "tags", Value: "text"},
		},
		Options: options.Index().SetName("product_text"),
	})
	create(ProductCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "productid", Value: 1}},
		Options: options.Index().SetName("productid_unique").SetUnique(true),
	})
	// thread lookups scan by participant pair
	create(MessageCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "sender", Value: 1},
			{Key: "receiver", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("message_participants"),
	})

	return firstErr
}
