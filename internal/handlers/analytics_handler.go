package handlers

import (
	"github.com/gofiber/fiber/v2"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/services"
)

// AnalyticsHandler serves chart-ready aggregates over the order history.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RegisterRoutes registers the analytics routes with the Fiber app.
func (h *AnalyticsHandler) RegisterRoutes(router fiber.Router) {
	analyticsRoutes := router.Group("/analytics")
	analyticsRoutes.Get("/monthly", h.HandleMonthly)
	analyticsRoutes.Get("/weekday", h.HandleWeekday)
	analyticsRoutes.Get("/items", h.HandleTopItems)
	analyticsRoutes.Get("/payment-methods", h.HandlePaymentMethods)
	analyticsRoutes.Get("/month-to-date", h.HandleMonthToDate)
}

func (h *AnalyticsHandler) HandleMonthly(c *fiber.Ctx) error {
	mode, err := aggregation.ParseValueMode(c.Query("mode"))
	if err != nil {
		return badRequest(c, "Invalid mode", err)
	}
	buckets, err := h.service.SalesByMonth(c.UserContext(), mode)
	if err != nil {
		return errorResponse(c, "Could not compute monthly sales", err)
	}
	return c.JSON(fiber.Map{"mode": mode, "buckets": buckets})
}

func (h *AnalyticsHandler) HandleWeekday(c *fiber.Ctx) error {
	mode, err := aggregation.ParseValueMode(c.Query("mode"))
	if err != nil {
		return badRequest(c, "Invalid mode", err)
	}
	buckets, err := h.service.SalesByWeekday(c.UserContext(), mode)
	if err != nil {
		return errorResponse(c, "Could not compute weekday sales", err)
	}
	return c.JSON(fiber.Map{"mode": mode, "buckets": buckets})
}

func (h *AnalyticsHandler) HandleTopItems(c *fiber.Ctx) error {
	items, err := h.service.TopSellingItems(c.UserContext())
	if err != nil {
		return errorResponse(c, "Could not compute item sales", err)
	}
	return c.JSON(items)
}

func (h *AnalyticsHandler) HandlePaymentMethods(c *fiber.Ctx) error {
	revenue, err := h.service.RevenueByPaymentMethod(c.UserContext())
	if err != nil {
		return errorResponse(c, "Could not compute revenue by payment method", err)
	}
	return c.JSON(revenue)
}

// HandleMonthToDate is the dashboard headline figure.
func (h *AnalyticsHandler) HandleMonthToDate(c *fiber.Ctx) error {
	total, err := h.service.MonthToDateRevenue(c.UserContext())
	if err != nil {
		return errorResponse(c, "Could not compute month-to-date revenue", err)
	}
	return c.JSON(fiber.Map{
		"total":           total,
		"total_formatted": aggregation.FormatBRL(total),
	})
}
