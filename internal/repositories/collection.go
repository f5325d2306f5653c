package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
)

// collection stores a list of records as one JSON array under a fixed key.
//
// Loading fails open: a missing key or an unreadable array yields an empty list, and
// individual records that cannot be decoded, normalized or validated are dropped.
// Errors from the underlying store itself are returned.
type collection[T any] struct {
	store     KeyValueStore
	key       string
	validate  *validator.Validate
	decode    func(json.RawMessage, *T) error
	normalize func(*T) error
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.key, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("Ignoring malformed collection %s: %v", c.key, err)
		return []T{}, nil
	}

	decode := c.decode
	if decode == nil {
		decode = func(raw json.RawMessage, v *T) error { return json.Unmarshal(raw, v) }
	}
	out := make([]T, 0, len(records))
	for i, r := range records {
		var rec T
		if err := decode(r, &rec); err != nil {
			log.Printf("Dropping record %d of %s: %v", i, c.key, err)
			continue
		}
		if c.normalize != nil {
			if err := c.normalize(&rec); err != nil {
				log.Printf("Dropping record %d of %s: %v", i, c.key, err)
				continue
			}
		}
		if err := c.validate.Struct(rec); err != nil {
			log.Printf("Dropping record %d of %s: %v", i, c.key, err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}
