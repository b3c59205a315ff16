// Package mongo implements the record store on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stargazers/stargazing-api/internal/api/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	backend        = "mongo"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Store bundles the MongoDB-backed repositories.
type Store struct {
	Users  *UserRepository
	Events *EventRepository
}

// NewStore wires both repositories against db.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		Users:  NewUserRepository(db),
		Events: NewEventRepository(db),
	}
}

// EnsureIndexes creates the unique indexes that back the uniqueness rules.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.Users.EnsureIndexes(ctx); err != nil {
		return err
	}
	return s.Events.EnsureIndexes(ctx)
}

// duplicateKeyField returns the first of fields mentioned in a duplicate key
// error, or "" when err is not a duplicate key error.
func duplicateKeyField(err error, fields ...string) string {
	if !mongo.IsDuplicateKeyError(err) {
		return ""
	}
	msg := err.Error()
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			msg += " " + e.Message
		}
	}
	for _, f := range fields {
		if strings.Contains(msg, f) {
			return f
		}
	}
	return fields[len(fields)-1]
}

func observe(collection, op string, start time.Time) {
	metrics.StoreOperationDuration.
		WithLabelValues(backend, collection, op).
		Observe(time.Since(start).Seconds())
}
