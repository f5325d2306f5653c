package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/models"
	"burgerpos/internal/services"
)

func TestAnalyticsService(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	service := services.NewAnalyticsService(mockRepo, fixedClock)

	// fixedNow is Friday 15/03/2024; the week starts on Monday 11/03.
	history := []models.Order{
		{ID: "1", Timestamp: fixedNow, PaymentMethod: models.PaymentPIX,
			Items: []models.OrderItem{{Item: burgerLine("a"), Quantity: 2}}},
		{ID: "2", Timestamp: time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC), PaymentMethod: models.PaymentCash,
			Items: []models.OrderItem{{Item: burgerLine("b"), Quantity: 1}}},
		{ID: "3", Timestamp: time.Date(2024, time.February, 20, 9, 0, 0, 0, time.UTC), PaymentMethod: models.PaymentCard,
			Items: []models.OrderItem{{Item: burgerLine("c"), Quantity: 1}}},
	}
	mockRepo.On("GetAll", ctx).Return(history, nil)

	monthly, err := service.SalesByMonth(ctx, aggregation.ModeCount)
	require.NoError(t, err)
	require.Len(t, monthly, 12)
	assert.True(t, decimal.NewFromInt(1).Equal(monthly[1].Value))
	assert.True(t, decimal.NewFromInt(2).Equal(monthly[2].Value))

	weekday, err := service.SalesByWeekday(ctx, aggregation.ModeUnits)
	require.NoError(t, err)
	require.Len(t, weekday, 7)
	assert.True(t, decimal.NewFromInt(1).Equal(weekday[time.Monday].Value))
	assert.True(t, decimal.NewFromInt(2).Equal(weekday[time.Friday].Value))

	items, err := service.TopSellingItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []aggregation.ItemSales{{Name: "X-Burger", Units: 4}}, items)

	byMethod, err := service.RevenueByPaymentMethod(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(byMethod[models.PaymentPIX]))
	assert.True(t, decimal.NewFromInt(20).Equal(byMethod[models.PaymentCash]))

	mtd, err := service.MonthToDateRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(mtd))
}

func TestAnalyticsService_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	service := services.NewAnalyticsService(mockRepo, fixedClock)

	mockRepo.On("GetAll", ctx).Return(nil, fmt.Errorf("database error"))

	_, err := service.SalesByMonth(ctx, aggregation.ModeValue)
	assert.Error(t, err)
	_, err = service.MonthToDateRevenue(ctx)
	assert.Error(t, err)
}
