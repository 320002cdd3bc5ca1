package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeadmin/internal/models"
)

// OrderRepository reads orders and updates their status. Orders are created
// by checkout and never deleted here.
type OrderRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewOrderRepository(db *mongo.Database, timeout time.Duration) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection(OrdersCollection),
		timeout:    timeout,
	}
}

// ListNewestFirst returns orders sorted by creation time, newest first. A nil
// owner lists every order.
func (r *OrderRepository) ListNewestFirst(ctx context.Context, owner *primitive.ObjectID) ([]models.Order, error) {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if owner != nil {
		filter["userId"] = *owner
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus overwrites the status field. Concurrent updates race and the
// last write wins.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoResult
	}
	return nil
}
