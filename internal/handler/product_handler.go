package handler

import (
	"github.com/gofiber/fiber/v2"

	"smart-inventory/internal/service"
)

type ProductHandler struct {
	catalog service.CatalogService
	ledger  service.LedgerService
}

func NewProductHandler(catalog service.CatalogService, ledger service.LedgerService) *ProductHandler {
	return &ProductHandler{catalog: catalog, ledger: ledger}
}

// CreateProductRequest is a new product plus the username recording it.
type CreateProductRequest struct {
	service.ProductInput
	Actor string `json:"actor"`
}

// CreateProduct adds a product and records its opening stock
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.catalog.AddProduct(c.UserContext(), req.ProductInput, req.Actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

// GetProducts lists active or deactivated products
// GET /api/v1/products?status=active|deactivated
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	active, ok := activeFilter(c)
	if !ok {
		return badStatusFilter(c)
	}

	get := h.catalog.GetDeactivated
	if active {
		get = h.catalog.GetActive
	}
	products, err := get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": products})
}

// GET /api/v1/products/:sku
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetBySku(c.UserContext(), c.Params("sku"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// UpdateProduct applies a partial edit
// PUT /api/v1/products/:sku
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var edit service.ProductEdit
	if err := c.BodyParser(&edit); err != nil {
		return invalidJSON(c)
	}
	edit.SKU = c.Params("sku")

	product, err := h.catalog.EditProduct(c.UserContext(), edit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// PATCH /api/v1/products/:sku/toggle-active
func (h *ProductHandler) ToggleActive(c *fiber.Ctx) error {
	product, err := h.catalog.ToggleActive(c.UserContext(), c.Params("sku"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product status updated", "data": product})
}

// GetProductTransactions returns the ledger of one product
// GET /api/v1/products/:sku/transactions
func (h *ProductHandler) GetProductTransactions(c *fiber.Ctx) error {
	entries, err := h.ledger.GetTransactionsForProduct(c.UserContext(), c.Params("sku"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": entries})
}
