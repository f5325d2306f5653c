package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/models"
	"burgerpos/internal/repositories"
	"burgerpos/pkg/rabbitmq"
)

var (
	ErrEmptyCart = errors.New("cart has no items")
	ErrUnderpaid = errors.New("cash tendered is less than the order total")
)

// Clock returns the current time in the shop's timezone.
type Clock func() time.Time

// CheckoutDetails is what the cashier fills in when closing a sale.
type CheckoutDetails struct {
	Customer      models.Customer
	DeliveryFee   decimal.Decimal
	PaymentMethod models.PaymentMethod
	Note          string
	ChangeFor     *decimal.Decimal
}

// OrderHistory is a filtered view of the history, newest first, with its totals.
type OrderHistory struct {
	Orders  []models.Order
	Summary aggregation.Summary
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	now       Clock
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher, now Clock) *OrderService {
	if now == nil {
		now = time.Now
	}
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		now:       now,
	}
}

// PlaceOrder turns cart lines into an order, grouping identical lines, and stores it.
func (s *OrderService) PlaceOrder(ctx context.Context, lines []models.CartLine, details CheckoutDetails) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := models.Order{
		ID:            uuid.New().String(),
		Timestamp:     s.now(),
		Customer:      details.Customer,
		Items:         aggregation.GroupCartLines(lines),
		DeliveryFee:   details.DeliveryFee,
		PaymentMethod: models.NormalizePaymentMethod(string(details.PaymentMethod)),
		Note:          details.Note,
	}

	total := aggregation.OrderTotal(order)
	if order.PaymentMethod == models.PaymentCash && details.ChangeFor != nil {
		if aggregation.ChangeDue(*details.ChangeFor, total).IsNegative() {
			return nil, fmt.Errorf("%w: tendered %s, total %s", ErrUnderpaid,
				aggregation.FormatBRL(*details.ChangeFor), aggregation.FormatBRL(total))
		}
		tendered := *details.ChangeFor
		order.ChangeFor = &tendered
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	publishEvent(s.publisher, orderCreatedRoutingKey, rabbitmq.OrderEvent{
		OrderID:       order.ID,
		Total:         total.StringFixed(2),
		PaymentMethod: string(order.PaymentMethod),
		Items:         len(order.Items),
	})

	return &order, nil
}

// ListOrders returns the orders inside the requested window, newest first.
func (s *OrderService) ListOrders(ctx context.Context, q aggregation.RangeQuery) (*OrderHistory, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered, err := aggregation.FilterOrdersByRange(orders, q, s.now())
	if err != nil {
		return nil, err
	}
	// Ties on timestamp keep the later-recorded order first.
	newestFirst := make([]models.Order, len(filtered))
	for i, o := range filtered {
		newestFirst[len(filtered)-1-i] = o
	}
	sort.SliceStable(newestFirst, func(i, j int) bool {
		return newestFirst[i].Timestamp.After(newestFirst[j].Timestamp)
	})
	return &OrderHistory{
		Orders:  newestFirst,
		Summary: aggregation.Summarize(filtered),
	}, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// DeleteOrder removes an order from the history.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	publishEvent(s.publisher, orderDeletedRoutingKey, rabbitmq.OrderEvent{OrderID: id})
	return nil
}
