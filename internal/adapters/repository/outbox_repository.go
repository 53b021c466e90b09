package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

const outboxCollection = "outbox_events"

type MongoOutboxStore struct {
	db *mongo.Database
}

var _ ports.OutboxStore = (*MongoOutboxStore)(nil)

func NewMongoOutboxStore(db *mongo.Database) *MongoOutboxStore {
	return &MongoOutboxStore{db: db}
}

func (s *MongoOutboxStore) Append(ctx context.Context, event *domain.OutboxEvent) error {
	_, err := s.db.Collection(outboxCollection).InsertOne(ctx, event)
	return err
}

func (s *MongoOutboxStore) FetchUnprocessed(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := s.db.Collection(outboxCollection).
		Find(ctx, bson.M{"processed_at": nil}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []*domain.OutboxEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *MongoOutboxStore) MarkProcessed(ctx context.Context, id string) error {
	res, err := s.db.Collection(outboxCollection).UpdateOne(ctx,
		bson.M{"_id": id, "processed_at": nil},
		bson.M{"$set": bson.M{"processed_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
