package repositories_test

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"

	"burgerpos/internal/repositories"
)

func TestMongoBackupRepository_Upsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates the snapshot document", func(mt *mtest.T) {
		repo := repositories.NewMongoBackupRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "backup_produtos"}}}},
		))

		created, err := repo.Upsert(context.Background(), "produtos", json.RawMessage(`[{"name":"X-Bacon","price":"25.9"}]`))
		require.NoError(t, err)
		assert.True(t, created)
	})

	mt.Run("updates an existing snapshot", func(mt *mtest.T) {
		repo := repositories.NewMongoBackupRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		created, err := repo.Upsert(context.Background(), "produtos", json.RawMessage(`[]`))
		require.NoError(t, err)
		assert.False(t, created)
	})

	mt.Run("reports server errors", func(mt *mtest.T) {
		repo := repositories.NewMongoBackupRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate key error",
			Name:    "DuplicateKey",
		}))

		_, err := repo.Upsert(context.Background(), "produtos", json.RawMessage(`[]`))
		assert.Error(t, err)
	})
}

func TestMongoBackupRepository_Fetch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the stored array", func(mt *mtest.T) {
		repo := repositories.NewMongoBackupRepository(mt.DB)
		doc := bson.D{
			{Key: "_id", Value: "backup_pedidos"},
			{Key: "pedidos", Value: bson.A{
				bson.D{{Key: "id", Value: "o1"}, {Key: "delivery_fee", Value: "7"}},
				bson.D{{Key: "id", Value: "o2"}, {Key: "delivery_fee", Value: "0"}},
			}},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "burgerpos.pedidos", mtest.FirstBatch, doc))

		raw, err := repo.Fetch(context.Background(), "pedidos")
		require.NoError(t, err)

		var records []map[string]string
		require.NoError(t, json.Unmarshal(raw, &records))
		assert.Equal(t, []map[string]string{
			{"id": "o1", "delivery_fee": "7"},
			{"id": "o2", "delivery_fee": "0"},
		}, records)
	})

	mt.Run("missing document", func(mt *mtest.T) {
		repo := repositories.NewMongoBackupRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "burgerpos.pedidos", mtest.FirstBatch))

		_, err := repo.Fetch(context.Background(), "pedidos")
		assert.ErrorIs(t, err, repositories.ErrSnapshotNotFound)
	})

	mt.Run("document without the collection field", func(mt *mtest.T) {
		repo := repositories.NewMongoBackupRepository(mt.DB)
		doc := bson.D{{Key: "_id", Value: "backup_pedidos"}}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "burgerpos.pedidos", mtest.FirstBatch, doc))

		_, err := repo.Fetch(context.Background(), "pedidos")
		assert.ErrorIs(t, err, repositories.ErrSnapshotNotFound)
	})
}

func TestBackupDocumentID(t *testing.T) {
	assert.Equal(t, "backup_produtos", repositories.BackupDocumentID("produtos"))
}

func TestConnectMongoDB_DisconnectsWhenPingFails(t *testing.T) {
	var closed atomic.Bool
	monitor := &event.PoolMonitor{Event: func(e *event.PoolEvent) {
		if e.Type == event.PoolClosedEvent {
			closed.Store(true)
		}
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	db, err := repositories.ConnectMongoDB(ctx, "mongodb://127.0.0.1:1/?directConnection=true", "burgerpos",
		options.Client().SetPoolMonitor(monitor))
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping MongoDB")
	assert.True(t, closed.Load(), "client left connected after failed ping")
}
