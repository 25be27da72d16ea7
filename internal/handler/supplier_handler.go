package handler

import (
	"github.com/gofiber/fiber/v2"

	"smart-inventory/internal/service"
)

type SupplierHandler struct {
	catalog service.CatalogService
}

func NewSupplierHandler(catalog service.CatalogService) *SupplierHandler {
	return &SupplierHandler{catalog: catalog}
}

// POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var in service.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return invalidJSON(c)
	}

	supplier, err := h.catalog.CreateSupplier(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}

// GET /api/v1/suppliers?status=active|deactivated
func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	active, ok := activeFilter(c)
	if !ok {
		return badStatusFilter(c)
	}

	get := h.catalog.GetDeactivatedSuppliers
	if active {
		get = h.catalog.GetActiveSuppliers
	}
	suppliers, err := get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": suppliers})
}

// GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	supplier, err := h.catalog.GetSupplier(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": supplier})
}

// UpdateSupplier edits the non-empty fields of the body
// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in service.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return invalidJSON(c)
	}

	supplier, err := h.catalog.EditSupplier(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier updated", "data": supplier})
}

// PATCH /api/v1/suppliers/:id/toggle-active
func (h *SupplierHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	supplier, err := h.catalog.ToggleSupplierActive(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier status updated", "data": supplier})
}
