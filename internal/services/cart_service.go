package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/models"
	"burgerpos/internal/repositories"
)

// CartView is an open cart with its derived quantities and running total.
type CartView struct {
	Cart       models.Cart
	Items      []models.OrderItem
	Quantities map[string]int
	Subtotal   decimal.Decimal
}

// CartService handles business logic related to open carts.
type CartService struct {
	cartRepo     repositories.CartRepository
	productRepo  repositories.ProductRepository
	orderService *OrderService
	now          Clock
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, orderService *OrderService, now Clock) *CartService {
	if now == nil {
		now = time.Now
	}
	return &CartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		orderService: orderService,
		now:          now,
	}
}

// CreateCart opens an empty cart.
func (s *CartService) CreateCart(ctx context.Context) (*CartView, error) {
	now := s.now()
	cart := &models.Cart{
		ID:        uuid.New().String(),
		Lines:     []models.CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return viewOf(cart), nil
}

// GetCart returns the cart with its derived view.
func (s *CartService) GetCart(ctx context.Context, id string) (*CartView, error) {
	cart, err := s.cartRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return viewOf(cart), nil
}

// DiscardCart drops an open cart without creating an order.
func (s *CartService) DiscardCart(ctx context.Context, id string) error {
	if _, err := s.cartRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, id)
}

// AddItem appends a new line for the named catalog product.
func (s *CartService) AddItem(ctx context.Context, cartID, productName string) (*CartView, error) {
	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByName(ctx, productName)
	if err != nil {
		return nil, err
	}
	cart.Lines = aggregation.AddToCart(cart.Lines, *product, uuid.New().String())
	return s.save(ctx, cart)
}

// RemoveItem removes the most recently added line for the product name. Removing a name
// that is not in the cart leaves it unchanged.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productName string) (*CartView, error) {
	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	lines, removed := aggregation.RemoveFromCart(cart.Lines, productName)
	if !removed {
		return viewOf(cart), nil
	}
	cart.Lines = lines
	return s.save(ctx, cart)
}

// AddAddOn attaches an add-on to one specific line.
func (s *CartService) AddAddOn(ctx context.Context, cartID, lineID string, addOn models.AddOn) (*CartView, error) {
	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	lines, err := aggregation.AttachAddOn(cart.Lines, lineID, addOn)
	if err != nil {
		return nil, err
	}
	cart.Lines = lines
	return s.save(ctx, cart)
}

// Checkout turns the cart into an order and closes the cart.
func (s *CartService) Checkout(ctx context.Context, cartID string, details CheckoutDetails) (*models.Order, error) {
	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	order, err := s.orderService.PlaceOrder(ctx, cart.Lines, details)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Delete(ctx, cartID); err != nil {
		return nil, fmt.Errorf("order %s created but cart %s was not closed: %w", order.ID, cartID, err)
	}
	return order, nil
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) (*CartView, error) {
	cart.UpdatedAt = s.now()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart %s: %w", cart.ID, err)
	}
	return viewOf(cart), nil
}

func viewOf(cart *models.Cart) *CartView {
	return &CartView{
		Cart:       *cart,
		Items:      aggregation.GroupCartLines(cart.Lines),
		Quantities: aggregation.CartQuantities(cart.Lines),
		Subtotal:   aggregation.CartTotal(cart.Lines, decimal.Zero),
	}
}
