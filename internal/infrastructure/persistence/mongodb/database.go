// Package mongodb implements the domain repository interfaces on MongoDB.
// Every repository owns one collection and maps aggregates to dedicated
// BSON documents: UUIDs are stored as strings, decimals as strings to
// keep exact precision, and coordinates as GeoJSON so the 2dsphere
// indexes can serve the geospatial queries.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"github.com/logistics-erp/hrm/internal/infrastructure/config"
)

// Database holds the MongoDB client and the application database handle
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewDatabase connects to MongoDB with the given configuration. Command
// tracing is attached when enabled so every query shows up as a span.
func NewDatabase(ctx context.Context, cfg *config.MongoConfig, traceCommands bool) (*Database, error) {
	var monitor *event.CommandMonitor
	if traceCommands {
		monitor = otelmongo.NewMonitor()
	}
	return NewDatabaseWithMonitor(ctx, cfg, monitor)
}

// NewDatabaseWithMonitor connects to MongoDB with an explicit command monitor.
// The caller assembles the monitor chain (tracing, command metrics) and a nil
// monitor disables command observation entirely.
func NewDatabaseWithMonitor(ctx context.Context, cfg *config.MongoConfig, monitor *event.CommandMonitor) (*Database, error) {
	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	if monitor != nil {
		opts.SetMonitor(monitor)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Database{
		Client: client,
		DB:     client.Database(cfg.Database),
	}, nil
}

// Ping checks that the primary is reachable
func (d *Database) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
