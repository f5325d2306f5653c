package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"burgerpos/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product name already in catalog")
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByName(ctx context.Context, name string) (*models.Product, error)
	Create(ctx context.Context, product models.Product) error
	Update(ctx context.Context, original, updated models.Product) error
	Delete(ctx context.Context, target models.Product) error
}

// KVProductRepository keeps the catalog as a single JSON array in a KeyValueStore.
type KVProductRepository struct {
	products *collection[models.Product]
	mu       sync.Mutex
}

// NewKVProductRepository creates a catalog repository stored under key.
func NewKVProductRepository(store KeyValueStore, key string) *KVProductRepository {
	return &KVProductRepository{
		products: &collection[models.Product]{
			store:     store,
			key:       key,
			validate:  models.NewValidator(),
			decode:    decodeProduct,
			normalize: normalizeProduct,
		},
	}
}

// GetAll returns the catalog in stored order.
func (r *KVProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.products.load(ctx)
}

// GetByName returns the product with the given name.
func (r *KVProductRepository) GetByName(ctx context.Context, name string) (*models.Product, error) {
	products, err := r.products.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProductNotFound, name)
}

// Create appends a product. Names must be unique.
func (r *KVProductRepository) Create(ctx context.Context, product models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.products.load(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.Name == product.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateProduct, product.Name)
		}
	}
	return r.products.save(ctx, append(products, product))
}

// Update overwrites, in place, every product matching the identity of original.
func (r *KVProductRepository) Update(ctx context.Context, original, updated models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.products.load(ctx)
	if err != nil {
		return err
	}
	matched := false
	for _, p := range products {
		if !p.SameIdentity(original) && p.Name == updated.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateProduct, updated.Name)
		}
	}
	for i := range products {
		if products[i].SameIdentity(original) {
			products[i] = updated
			matched = true
		}
	}
	if !matched {
		return fmt.Errorf("%w: %s", ErrProductNotFound, original.Name)
	}
	return r.products.save(ctx, products)
}

// Delete removes every product matching the identity of target.
func (r *KVProductRepository) Delete(ctx context.Context, target models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.products.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.SameIdentity(target) {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return fmt.Errorf("%w: %s", ErrProductNotFound, target.Name)
	}
	return r.products.save(ctx, kept)
}

func normalizeProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	c, ok := models.ParseCategory(string(p.Category))
	if !ok {
		return fmt.Errorf("unknown category %q", p.Category)
	}
	p.Category = c
	return nil
}
