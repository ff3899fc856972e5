package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/wordsphere/pkg/errors"
)

// Mongo defaults.
const (
	DefaultDatabase   = "wordsphere"
	DefaultCollection = "analyses"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string
	Collection string
}

// MongoStore persists records in a MongoDB collection keyed by record ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures an
// index on created_at.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// Save upserts rec.
func (s *MongoStore) Save(ctx context.Context, rec Record) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save analysis %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record with the given id.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeNotFound, "analysis %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis %s: %w", id, err)
	}
	return &rec, nil
}

// Recent returns up to n records, newest first.
func (s *MongoStore) Recent(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		n = DefaultRecent
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(n))
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	out := []Record{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode analyses: %w", err)
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
