package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"burgerpos/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order history access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order models.Order) error
	Delete(ctx context.Context, id string) error
}

// KVOrderRepository keeps the order history as a single JSON array in a KeyValueStore,
// oldest first.
type KVOrderRepository struct {
	orders *collection[models.Order]
	mu     sync.Mutex
}

// NewKVOrderRepository creates an order repository stored under key.
func NewKVOrderRepository(store KeyValueStore, key string) *KVOrderRepository {
	return &KVOrderRepository{
		orders: &collection[models.Order]{
			store:     store,
			key:       key,
			validate:  models.NewValidator(),
			decode:    decodeOrder,
			normalize: normalizeOrder,
		},
	}
}

// GetAll returns every order, oldest first.
func (r *KVOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	return r.orders.load(ctx)
}

// GetByID returns an order by its ID.
func (r *KVOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	orders, err := r.orders.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
}

// Create appends an order to the history.
func (r *KVOrderRepository) Create(ctx context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.orders.load(ctx)
	if err != nil {
		return err
	}
	return r.orders.save(ctx, append(orders, order))
}

// Delete removes the order with the given ID.
func (r *KVOrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.orders.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(orders) {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return r.orders.save(ctx, kept)
}

func normalizeOrder(o *models.Order) error {
	if o.Timestamp.IsZero() {
		return errors.New("missing timestamp")
	}
	o.PaymentMethod = models.NormalizePaymentMethod(string(o.PaymentMethod))
	for i := range o.Items {
		line := &o.Items[i].Item
		if line.AddOns == nil {
			line.AddOns = []models.AddOn{}
		}
		if c, ok := models.ParseCategory(string(line.Category)); ok {
			line.Category = c
		}
	}
	return nil
}
