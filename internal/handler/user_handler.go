package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"smart-inventory/internal/model"
	"smart-inventory/internal/service"
)

type UserHandler struct {
	identity service.IdentityService
}

func NewUserHandler(identity service.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// CreateUser registers an admin, a staff member or a supplier depending on
// the "kind" field of the body
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.NewUser
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	rec, err := h.identity.CreateUser(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully", "data": rec})
}

// PATCH /api/v1/users/:username/toggle-active
func (h *UserHandler) ToggleActive(c *fiber.Ctx) error {
	user, err := h.identity.ToggleActive(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User status updated", "data": user})
}

type accountLister func(ctx context.Context) ([]model.UserResponse, error)

func (h *UserHandler) list(c *fiber.Ctx, active, deactivated accountLister) error {
	isActive, ok := activeFilter(c)
	if !ok {
		return badStatusFilter(c)
	}
	get := deactivated
	if isActive {
		get = active
	}
	users, err := get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": users})
}

// GET /api/v1/admins?status=active|deactivated
func (h *UserHandler) GetAdmins(c *fiber.Ctx) error {
	return h.list(c, h.identity.GetActivatedAdmins, h.identity.GetDeactivatedAdmins)
}

// GET /api/v1/staff?status=active|deactivated
func (h *UserHandler) GetStaff(c *fiber.Ctx) error {
	return h.list(c, h.identity.GetActivatedStaff, h.identity.GetDeactivatedStaff)
}

// GET /api/v1/admins/:username
func (h *UserHandler) GetAdmin(c *fiber.Ctx) error {
	user, err := h.identity.GetAdmin(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

// GET /api/v1/staff/:username
func (h *UserHandler) GetStaffMember(c *fiber.Ctx) error {
	user, err := h.identity.GetStaffMember(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

// PUT /api/v1/admins/:username
func (h *UserHandler) UpdateAdmin(c *fiber.Ctx) error {
	var edit service.AccountEdit
	if err := c.BodyParser(&edit); err != nil {
		return invalidJSON(c)
	}
	user, err := h.identity.EditAdmin(c.UserContext(), c.Params("username"), edit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User updated successfully", "data": user})
}

// PUT /api/v1/staff/:username
func (h *UserHandler) UpdateStaffMember(c *fiber.Ctx) error {
	var edit service.AccountEdit
	if err := c.BodyParser(&edit); err != nil {
		return invalidJSON(c)
	}
	user, err := h.identity.EditStaffMember(c.UserContext(), c.Params("username"), edit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User updated successfully", "data": user})
}
