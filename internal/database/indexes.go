package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureInvoiceIndexes(db *mongo.Database, collection string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(collection).Indexes()

	createdAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_index"),
	}

	_, err := indexes.CreateOne(ctx, createdAtIndex)
	if err != nil {
		return err
	}

	typeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}},
		Options: options.Index().SetName("type_index"),
	}

	_, err = indexes.CreateOne(ctx, typeIndex)
	return err
}
