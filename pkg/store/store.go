// Package store keeps a history of completed analyses.
//
// The server records every analysis it serves so recent results can be
// listed and fetched by ID. [MemoryStore] backs tests and single-process
// deployments; [MongoStore] persists to MongoDB.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/wordsphere/pkg/keyword"
)

// DefaultRecent is the number of records returned when no limit is given.
const DefaultRecent = 20

// Record is one served analysis.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	URL       string            `json:"url" bson:"url"`
	Words     []keyword.Keyword `json:"words" bson:"words"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Cached    bool              `json:"cached" bson:"cached"`
}

// FromResult builds a Record for r.
func FromResult(r *keyword.Result, cached bool) Record {
	return Record{
		ID:        r.ID,
		URL:       r.URL,
		Words:     r.Words,
		CreatedAt: r.CreatedAt,
		Cached:    cached,
	}
}

// Store persists analysis records.
//
// Get returns an error with code NOT_FOUND for an unknown id. Recent
// returns at most n records, newest first.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Recent(ctx context.Context, n int) ([]Record, error)
	Close() error
}
