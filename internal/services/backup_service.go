package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"burgerpos/internal/repositories"
)

// BackupStatus is the outcome of pushing or pulling one collection.
type BackupStatus string

const (
	BackupCreated  BackupStatus = "created"
	BackupUpdated  BackupStatus = "updated"
	BackupSkipped  BackupStatus = "skipped"
	BackupRestored BackupStatus = "restored"
	BackupNotFound BackupStatus = "not_found"
	BackupFailed   BackupStatus = "failed"
)

// BackupResult reports what happened to a single key.
type BackupResult struct {
	Key    string       `json:"key"`
	Status BackupStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

// BackupService mirrors the local collections to the remote document store.
// Only one push or pull runs at a time.
type BackupService struct {
	mu     sync.Mutex
	local  repositories.KeyValueStore
	remote repositories.BackupRepository
	keys   []string
}

// NewBackupService creates a BackupService for the given collection keys.
func NewBackupService(local repositories.KeyValueStore, remote repositories.BackupRepository, keys ...string) *BackupService {
	return &BackupService{
		local:  local,
		remote: remote,
		keys:   keys,
	}
}

// Push uploads every local collection. The first failing key stops the run; the results
// gathered so far are returned together with the error.
func (s *BackupService) Push(ctx context.Context) ([]BackupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]BackupResult, 0, len(s.keys))
	for _, key := range s.keys {
		result, err := s.pushKey(ctx, key)
		if err != nil {
			log.Printf("Backup push of %s failed: %v", key, err)
			results = append(results, BackupResult{Key: key, Status: BackupFailed, Error: err.Error()})
			return results, fmt.Errorf("backup push of %s: %w", key, err)
		}
		log.Printf("Backup push of %s: %s", key, result.Status)
		results = append(results, result)
	}
	return results, nil
}

func (s *BackupService) pushKey(ctx context.Context, key string) (BackupResult, error) {
	data, err := s.local.Get(ctx, key)
	if errors.Is(err, repositories.ErrKeyNotFound) {
		return BackupResult{Key: key, Status: BackupSkipped}, nil
	}
	if err != nil {
		return BackupResult{}, err
	}
	if !isJSONArray(data) {
		return BackupResult{}, fmt.Errorf("local value under %s is not a JSON array", key)
	}

	created, err := s.remote.Upsert(ctx, key, json.RawMessage(data))
	if err != nil {
		return BackupResult{}, err
	}
	if created {
		return BackupResult{Key: key, Status: BackupCreated}, nil
	}
	return BackupResult{Key: key, Status: BackupUpdated}, nil
}

// Pull replaces each local collection with its remote snapshot. Keys with no snapshot are
// reported as not found and left untouched.
func (s *BackupService) Pull(ctx context.Context) ([]BackupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]BackupResult, 0, len(s.keys))
	for _, key := range s.keys {
		records, err := s.remote.Fetch(ctx, key)
		if errors.Is(err, repositories.ErrSnapshotNotFound) {
			log.Printf("Backup pull of %s: no remote snapshot", key)
			results = append(results, BackupResult{Key: key, Status: BackupNotFound})
			continue
		}
		if err == nil {
			err = s.local.Set(ctx, key, records)
		}
		if err != nil {
			log.Printf("Backup pull of %s failed: %v", key, err)
			results = append(results, BackupResult{Key: key, Status: BackupFailed, Error: err.Error()})
			return results, fmt.Errorf("backup pull of %s: %w", key, err)
		}
		log.Printf("Backup pull of %s: restored", key)
		results = append(results, BackupResult{Key: key, Status: BackupRestored})
	}
	return results, nil
}

func isJSONArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '[' && json.Valid(trimmed)
}
