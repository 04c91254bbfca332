package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dkoosis/trigen/internal/config"
)

const backendMongo = "mongodb"

// Mongo stores records in a MongoDB collection.
type Mongo struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// OpenMongo configures a client for cfg. The driver connects lazily, so an
// unreachable server surfaces on the first Save rather than here.
func OpenMongo(cfg config.Store, timeout time.Duration) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("configuring mongodb client: %w", err)
	}
	return &Mongo{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: timeout,
	}, nil
}

// Save pings the primary, then inserts rec.
func (m *Mongo) Save(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return &Error{Op: OpConnect, Backend: backendMongo, Err: err}
	}
	if _, err := m.coll.InsertOne(ctx, rec); err != nil {
		return &Error{Op: OpInsert, Backend: backendMongo, Err: err}
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
