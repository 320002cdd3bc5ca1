package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the admin and storefront queries rely on.
// Every index is attempted; the first failure is returned.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var firstErr error
	for _, ensure := range []func(context.Context, *mongo.Database) error{
		EnsureProductIndexes,
		EnsureOrderIndexes,
		EnsureUserIndexes,
	} {
		if err := ensure(ctx, db); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func EnsureProductIndexes(ctx context.Context, db *mongo.Database) error {
	return createIndex(ctx, db.Collection(ProductsCollection), mongo.IndexModel{
		Keys:    bson.D{{Key: "available", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("available_createdAt"),
	})
}

func EnsureOrderIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("userId_createdAt"),
		},
	}
	for _, index := range indexes {
		if err := createIndex(ctx, db.Collection(OrdersCollection), index); err != nil {
			return err
		}
	}
	return nil
}

func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	return createIndex(ctx, db.Collection(UsersCollection), mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	})
}

func createIndex(ctx context.Context, collection *mongo.Collection, index mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	name := ""
	if index.Options != nil && index.Options.Name != nil {
		name = *index.Options.Name
	}
	log := logrus.WithFields(logrus.Fields{
		"collection": collection.Name(),
		"index":      name,
	})

	log.Debug("creating index")
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		log.WithError(err).Warn("index creation failed")
		return err
	}
	log.Debug("index ready")
	return nil
}
