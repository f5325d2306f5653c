package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSnapshotNotFound = errors.New("backup snapshot not found")

// BackupRepository is the remote mirror of the local collections.
type BackupRepository interface {
	// Upsert merges records into the snapshot for key and reports whether the
	// snapshot document had to be created.
	Upsert(ctx context.Context, key string, records json.RawMessage) (bool, error)
	// Fetch returns the JSON array stored in the snapshot for key.
	Fetch(ctx context.Context, key string) (json.RawMessage, error)
}

// BackupDocumentID is the id of the snapshot document of a collection.
func BackupDocumentID(key string) string {
	return "backup_" + key
}

// MongoBackupRepository stores each snapshot as document backup_<key> in collection <key>,
// holding the array under field <key>.
type MongoBackupRepository struct {
	db *mongo.Database
}

// NewMongoBackupRepository creates a new instance of MongoBackupRepository.
func NewMongoBackupRepository(db *mongo.Database) *MongoBackupRepository {
	return &MongoBackupRepository{db: db}
}

// ConnectMongoDB opens a client, verifies it with a ping and returns the named database.
func ConnectMongoDB(ctx context.Context, uri, database string, extra ...*options.ClientOptions) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, append([]*options.ClientOptions{clientOpts}, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// Upsert sets field <key> on the snapshot document, leaving any other fields untouched.
func (r *MongoBackupRepository) Upsert(ctx context.Context, key string, records json.RawMessage) (bool, error) {
	wrapped, err := json.Marshal(map[string]json.RawMessage{key: records})
	if err != nil {
		return false, fmt.Errorf("failed to wrap %s snapshot: %w", key, err)
	}
	var fields bson.D
	if err := bson.UnmarshalExtJSON(wrapped, false, &fields); err != nil {
		return false, fmt.Errorf("failed to convert %s snapshot: %w", key, err)
	}

	filter := bson.M{"_id": BackupDocumentID(key)}
	update := bson.M{"$set": fields}
	opts := options.Update().SetUpsert(true)

	res, err := r.db.Collection(key).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, fmt.Errorf("failed to upsert %s snapshot: %w", key, err)
	}
	return res.UpsertedCount > 0, nil
}

// Fetch reads the snapshot document and returns field <key> as a JSON array.
func (r *MongoBackupRepository) Fetch(ctx context.Context, key string) (json.RawMessage, error) {
	var doc bson.Raw
	err := r.db.Collection(key).FindOne(ctx, bson.M{"_id": BackupDocumentID(key)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, BackupDocumentID(key))
		}
		return nil, fmt.Errorf("failed to fetch %s snapshot: %w", key, err)
	}

	value, err := doc.LookupErr(key)
	if err != nil || value.Type != bson.TypeArray {
		return nil, fmt.Errorf("%w: %s has no %s array", ErrSnapshotNotFound, BackupDocumentID(key), key)
	}

	out, err := bson.MarshalExtJSON(bson.D{{Key: key, Value: value}}, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s snapshot: %w", key, err)
	}
	var unwrapped map[string]json.RawMessage
	if err := json.Unmarshal(out, &unwrapped); err != nil {
		return nil, fmt.Errorf("failed to decode %s snapshot: %w", key, err)
	}
	return unwrapped[key], nil
}
