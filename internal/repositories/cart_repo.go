package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"burgerpos/internal/models"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the interface for open carts.
type CartRepository interface {
	Get(ctx context.Context, id string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, id string) error
}

// KVCartRepository stores each open cart as its own JSON document under cart:<id>.
type KVCartRepository struct {
	store KeyValueStore
}

// NewKVCartRepository creates a new instance of KVCartRepository.
func NewKVCartRepository(store KeyValueStore) *KVCartRepository {
	return &KVCartRepository{store: store}
}

// Get returns the cart with the given ID.
func (r *KVCartRepository) Get(ctx context.Context, id string) (*models.Cart, error) {
	data, err := r.store.Get(ctx, CartKey(id))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCartNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart %s failed: %w", id, err)
	}
	return &cart, nil
}

// Save writes the whole cart.
func (r *KVCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	return r.store.Set(ctx, CartKey(cart.ID), data)
}

// Delete discards the cart.
func (r *KVCartRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CartKey(id))
}

// CartKey is the storage key of a cart.
func CartKey(id string) string {
	return fmt.Sprintf("cart:%s", id)
}
