package db

import (
	"context"
	"time"

	"reidossalgados/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store bundles the MongoDB collections the storefront uses. It is created
// once in main and injected into the handler packages, so tests can swap it
// for a store pointed at a throwaway database.
type Store struct {
	Client     *mongo.Client
	Admin      *mongo.Collection
	Orders     *mongo.Collection
	Settings   *mongo.Collection
	Categories *mongo.Collection
	Menu       *mongo.Collection
}

// Connect dials MongoDB and binds the named collections.
func Connect(ctx context.Context, cfg *config.Config) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	database := client.Database(cfg.MongoDB)
	return &Store{
		Client:     client,
		Admin:      database.Collection("admin"),
		Orders:     database.Collection("pedidos"),
		Settings:   database.Collection("settings"),
		Categories: database.Collection("categories"),
		Menu:       database.Collection("menu"),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
