package handlers

import (
	"github.com/gofiber/fiber/v2"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/models"
	"burgerpos/internal/services"
)

// OrderHandler handles HTTP requests for the order history.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleGetOrders lists the history for ?range= (today by default), newest first.
// A custom range takes ?start= and ?end= as DD/MM/YYYY.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	kind, err := aggregation.ParseRangeKind(c.Query("range"))
	if err != nil {
		return badRequest(c, "Invalid range", err)
	}
	history, err := h.service.ListOrders(c.UserContext(), aggregation.RangeQuery{
		Kind:  kind,
		Start: c.Query("start"),
		End:   c.Query("end"),
	})
	if err != nil {
		return errorResponse(c, "Could not retrieve orders", err)
	}

	orders := make([]fiber.Map, len(history.Orders))
	for i, o := range history.Orders {
		orders[i] = orderResponse(o)
	}
	return c.JSON(fiber.Map{
		"orders":          orders,
		"count":           history.Summary.Count,
		"total":           history.Summary.Revenue,
		"total_formatted": aggregation.FormatBRL(history.Summary.Revenue),
	})
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, "Could not retrieve order", err)
	}
	return c.JSON(orderResponse(*order))
}

// HandleDeleteOrder removes an order from the history.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if err := h.service.DeleteOrder(c.UserContext(), orderID); err != nil {
		return errorResponse(c, "Could not delete order", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order " + orderID + " deleted successfully",
	})
}

// orderResponse adds the computed total and, for cash sales, the change due.
func orderResponse(o models.Order) fiber.Map {
	total := aggregation.OrderTotal(o)
	resp := fiber.Map{
		"order":           o,
		"total":           total,
		"total_formatted": aggregation.FormatBRL(total),
	}
	if o.ChangeFor != nil {
		change := aggregation.ChangeDue(*o.ChangeFor, total)
		resp["change_due"] = change
		resp["change_due_formatted"] = aggregation.FormatBRL(change)
	}
	return resp
}
