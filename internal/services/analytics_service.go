package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/models"
	"burgerpos/internal/repositories"
)

// AnalyticsService derives chart data from the order history.
type AnalyticsService struct {
	orderRepo repositories.OrderRepository
	now       Clock
}

func NewAnalyticsService(orderRepo repositories.OrderRepository, now Clock) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{orderRepo: orderRepo, now: now}
}

// SalesByMonth buckets by the month in the shop's timezone.
func (s *AnalyticsService) SalesByMonth(ctx context.Context, mode aggregation.ValueMode) ([]aggregation.Bucket, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.BucketSalesByMonth(orders, mode, s.now().Location()), nil
}

// SalesByWeekday covers the current Monday-anchored week.
func (s *AnalyticsService) SalesByWeekday(ctx context.Context, mode aggregation.ValueMode) ([]aggregation.Bucket, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.BucketSalesByWeekday(orders, mode, s.now()), nil
}

func (s *AnalyticsService) TopSellingItems(ctx context.Context) ([]aggregation.ItemSales, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.TopSellingItems(orders), nil
}

func (s *AnalyticsService) RevenueByPaymentMethod(ctx context.Context) (map[models.PaymentMethod]decimal.Decimal, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.RevenueByPaymentMethod(orders), nil
}

func (s *AnalyticsService) MonthToDateRevenue(ctx context.Context) (decimal.Decimal, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return aggregation.MonthToDateRevenue(orders, s.now()), nil
}
