package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"burgerpos/internal/models"
)

// GORMKeyValueStore keeps values in the kv_entries table of a SQL database.
type GORMKeyValueStore struct {
	db *gorm.DB
}

// NewGORMKeyValueStore creates a new instance of GORMKeyValueStore.
// The kv_entries table must exist; see Migrate.
func NewGORMKeyValueStore(db *gorm.DB) *GORMKeyValueStore {
	return &GORMKeyValueStore{
		db: db,
	}
}

// Migrate creates or updates the kv_entries table.
func (s *GORMKeyValueStore) Migrate() error {
	if err := s.db.AutoMigrate(&models.KeyValueEntry{}); err != nil {
		return fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return nil
}

// Get retrieves the value stored under key.
func (s *GORMKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.KeyValueEntry
	if err := s.db.WithContext(ctx).First(&entry, "entry_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Set inserts or overwrites the value stored under key.
func (s *GORMKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	entry := models.KeyValueEntry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if res.Error != nil {
		return fmt.Errorf("failed to set key %s: %w", key, res.Error)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *GORMKeyValueStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&models.KeyValueEntry{}, "entry_key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
