package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stargazers/stargazing-api/internal/core/ports"
	"github.com/stargazers/stargazing-api/internal/infrastructure/config"
	"github.com/stargazers/stargazing-api/internal/infrastructure/db/file"
	mongodb "github.com/stargazers/stargazing-api/internal/infrastructure/db/mongo"
	"github.com/stargazers/stargazing-api/internal/infrastructure/http/handlers"
)

// recordStore is the backend selected by STORE_DRIVER.
type recordStore struct {
	Users  ports.UserRepository
	Events ports.EventRepository
	Checks []handlers.Check
	close  func()
}

func (s *recordStore) Close() {
	if s.close != nil {
		s.close()
	}
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*recordStore, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		store := mongodb.NewStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo record store")
		return &recordStore{
			Users:  store.Users,
			Events: store.Events,
			Checks: []handlers.Check{handlers.MongoCheck(db)},
			close:  func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.StoreFile:
		store, err := file.Open(cfg.Store.DataDir)
		if err != nil {
			return nil, err
		}
		log.Info().Str("dir", cfg.Store.DataDir).Msg("using file record store")
		return &recordStore{Users: store.Users, Events: store.Events}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
