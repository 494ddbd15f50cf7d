// Package testutil provides shared helpers for integration tests. It
// starts one MongoDB container per test run and hands every test its own
// database so tests stay isolated without paying the container startup
// cost repeatedly.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/logistics-erp/hrm/internal/infrastructure/persistence/mongodb"
)

const mongoImage = "mongo:7"

var (
	containerOnce sync.Once
	containerURI  string
	containerErr  error
)

// mongoURI starts the shared container on first use and returns its
// connection string. The container lives until the test process exits;
// testcontainers' reaper removes it afterwards.
func mongoURI(t *testing.T) string {
	t.Helper()

	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := tcmongo.Run(ctx, mongoImage)
		if err != nil {
			containerErr = fmt.Errorf("start mongodb container: %w", err)
			return
		}
		uri, err := container.ConnectionString(ctx)
		if err != nil {
			containerErr = fmt.Errorf("container connection string: %w", err)
			return
		}
		containerURI = uri
	})

	if containerErr != nil {
		t.Skipf("mongodb container unavailable: %v", containerErr)
	}
	return containerURI
}

// MongoDatabase connects to the shared container and returns a freshly
// named database with all collection indexes in place. The database is
// dropped and the client disconnected when the test finishes.
func MongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI(t)))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, readpref.Primary()))

	name := "hrm_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	db := client.Database(name)
	require.NoError(t, mongodb.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}
