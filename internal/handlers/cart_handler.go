package handlers

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"burgerpos/internal/aggregation"
	"burgerpos/internal/models"
	"burgerpos/internal/services"
)

// CartHandler handles HTTP requests for open carts ("vendas").
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: models.NewValidator(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/carts")
	cartRoutes.Post("/", h.HandleCreateCart)
	cartRoutes.Get("/:id", h.HandleGetCart)
	cartRoutes.Delete("/:id", h.HandleDiscardCart)
	cartRoutes.Post("/:id/lines", h.HandleAddLine)
	cartRoutes.Delete("/:id/lines/:name", h.HandleRemoveLine)
	cartRoutes.Post("/:id/lines/:lineID/addons", h.HandleAddAddOn)
	cartRoutes.Post("/:id/checkout", h.HandleCheckout)
}

// AddLineRequest names the catalog product to add.
type AddLineRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddOnRequest is an add-on typed at the counter. Price uses Brazilian separators, e.g. "4,50".
type AddOnRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Price string `json:"price" validate:"required"`
}

// CheckoutRequest closes the sale. Amounts use Brazilian separators and may be empty.
type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" validate:"max=100"`
	CustomerAddress string `json:"customer_address" validate:"max=200"`
	DeliveryFee     string `json:"delivery_fee"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
	Note            string `json:"note" validate:"max=500"`
	ChangeFor       string `json:"change_for"`
}

// HandleCreateCart opens a new empty cart.
func (h *CartHandler) HandleCreateCart(c *fiber.Ctx) error {
	view, err := h.service.CreateCart(c.UserContext())
	if err != nil {
		return errorResponse(c, "Could not create cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cartResponse(view))
}

// HandleGetCart returns a cart with its grouped items and running total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	view, err := h.service.GetCart(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, "Could not retrieve cart", err)
	}
	return c.JSON(cartResponse(view))
}

// HandleDiscardCart drops a cart without creating an order.
func (h *CartHandler) HandleDiscardCart(c *fiber.Ctx) error {
	cartID := c.Params("id")
	if err := h.service.DiscardCart(c.UserContext(), cartID); err != nil {
		return errorResponse(c, "Could not discard cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart " + cartID + " discarded",
	})
}

// HandleAddLine appends one line for a catalog product.
func (h *CartHandler) HandleAddLine(c *fiber.Ctx) error {
	var req AddLineRequest
	if ok, err := validateBody(c, h.validate, &req); !ok {
		return err
	}
	view, err := h.service.AddItem(c.UserContext(), c.Params("id"), req.Name)
	if err != nil {
		return errorResponse(c, "Could not add item to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cartResponse(view))
}

// HandleRemoveLine removes the most recently added line for a product name.
func (h *CartHandler) HandleRemoveLine(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return badRequest(c, "Invalid product name", err)
	}
	view, err := h.service.RemoveItem(c.UserContext(), c.Params("id"), name)
	if err != nil {
		return errorResponse(c, "Could not remove item from cart", err)
	}
	return c.JSON(cartResponse(view))
}

// HandleAddAddOn attaches an add-on to a single cart line.
func (h *CartHandler) HandleAddAddOn(c *fiber.Ctx) error {
	var req AddOnRequest
	if ok, err := validateBody(c, h.validate, &req); !ok {
		return err
	}
	price, err := aggregation.ParseBRL(req.Price)
	if err != nil {
		return badRequest(c, "Invalid add-on price", err)
	}
	addOn := models.AddOn{Name: req.Name, Price: price}
	if ok, err := validateStruct(c, h.validate, &addOn); !ok {
		return err
	}
	view, err := h.service.AddAddOn(c.UserContext(), c.Params("id"), c.Params("lineID"), addOn)
	if err != nil {
		return errorResponse(c, "Could not add add-on", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cartResponse(view))
}

// HandleCheckout turns the cart into an order.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if ok, err := validateBody(c, h.validate, &req); !ok {
		return err
	}

	details := services.CheckoutDetails{
		Customer:      models.Customer{Name: req.CustomerName, Address: req.CustomerAddress},
		DeliveryFee:   decimal.Zero,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Note:          req.Note,
	}
	if req.DeliveryFee != "" {
		fee, err := aggregation.ParseBRL(req.DeliveryFee)
		if err != nil {
			return badRequest(c, "Invalid delivery fee", err)
		}
		if fee.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Delivery fee cannot be negative",
			})
		}
		details.DeliveryFee = fee
	}
	if req.ChangeFor != "" {
		tendered, err := aggregation.ParseBRL(req.ChangeFor)
		if err != nil {
			return badRequest(c, "Invalid change amount", err)
		}
		details.ChangeFor = &tendered
	}

	order, err := h.service.Checkout(c.UserContext(), c.Params("id"), details)
	if err != nil {
		return errorResponse(c, "Could not check out cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(orderResponse(*order))
}

func cartResponse(view *services.CartView) fiber.Map {
	return fiber.Map{
		"cart":               view.Cart,
		"items":              view.Items,
		"quantities":         view.Quantities,
		"subtotal":           view.Subtotal,
		"subtotal_formatted": aggregation.FormatBRL(view.Subtotal),
	}
}
