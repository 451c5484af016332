package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CounterStore keeps one document per counter key and increments it with a
// single findAndModify.
type CounterStore struct {
	coll *mongo.Collection
}

func NewCounterStore(db *mongo.Database) *CounterStore {
	return &CounterStore{coll: db.Collection(countersCollection)}
}

func (s *CounterStore) Next(ctx context.Context, key string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDocument
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{
			"$inc": bson.M{"sequence": int64(1)},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", key, err)
	}
	if doc.Sequence <= 0 {
		return 0, fmt.Errorf("counter %s returned invalid sequence %d", key, doc.Sequence)
	}
	return doc.Sequence, nil
}

func (s *CounterStore) Current(ctx context.Context, key string) (int64, error) {
	var doc counterDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	return doc.Sequence, nil
}
