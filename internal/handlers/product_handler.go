package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"burgerpos/internal/models"
	"burgerpos/internal/services"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: models.NewValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/", h.HandleUpdateProduct)
	productRoutes.Delete("/", h.HandleDeleteProduct)
}

// UpdateProductRequest carries the product as it was read and its replacement.
type UpdateProductRequest struct {
	Original models.Product `json:"original"`
	Updated  models.Product `json:"updated"`
}

// HandleGetProducts lists the catalog, optionally filtered by ?q= and ?category=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext(), c.Query("q"), c.Query("category"))
	if err != nil {
		return errorResponse(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleCreateProduct adds a product to the catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if ok, err := h.parseProduct(c, &product); !ok {
		return err
	}
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return errorResponse(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites the product matching the original name, category and price.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	req.Original = canonicalProduct(req.Original)
	req.Updated = canonicalProduct(req.Updated)
	if ok, err := validateStruct(c, h.validate, &req); !ok {
		return err
	}
	if err := h.service.UpdateProduct(c.UserContext(), req.Original, req.Updated); err != nil {
		return errorResponse(c, "Could not update product", err)
	}
	return c.JSON(req.Updated)
}

// HandleDeleteProduct removes the product identified by the request body.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	var product models.Product
	if ok, err := h.parseProduct(c, &product); !ok {
		return err
	}
	if err := h.service.DeleteProduct(c.UserContext(), product); err != nil {
		return errorResponse(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product " + product.Name + " deleted successfully",
	})
}

func (h *ProductHandler) parseProduct(c *fiber.Ctx, product *models.Product) (bool, error) {
	if err := c.BodyParser(product); err != nil {
		return false, badRequest(c, "Invalid request body", err)
	}
	*product = canonicalProduct(*product)
	return validateStruct(c, h.validate, product)
}

// canonicalProduct accepts the legacy Portuguese category labels.
func canonicalProduct(p models.Product) models.Product {
	p.Name = strings.TrimSpace(p.Name)
	if category, ok := models.ParseCategory(string(p.Category)); ok {
		p.Category = category
	}
	return p
}
