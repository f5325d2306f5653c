package services

import (
	"context"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/models"
	"burgerpos/internal/repositories"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts returns the catalog filtered by name query and category, in display order.
func (s *ProductService) GetAllProducts(ctx context.Context, query, category string) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.FilterCatalog(products, query, category), nil
}

// CreateProduct adds a product to the catalog.
func (s *ProductService) CreateProduct(ctx context.Context, product models.Product) error {
	return s.repo.Create(ctx, product)
}

// UpdateProduct replaces the product identified by original.
func (s *ProductService) UpdateProduct(ctx context.Context, original, updated models.Product) error {
	return s.repo.Update(ctx, original, updated)
}

// DeleteProduct removes the product identified by target.
func (s *ProductService) DeleteProduct(ctx context.Context, target models.Product) error {
	return s.repo.Delete(ctx, target)
}
