package handler

import (
	"github.com/gofiber/fiber/v2"

	"smart-inventory/internal/service"
)

type RoleHandler struct {
	identity service.IdentityService
}

func NewRoleHandler(identity service.IdentityService) *RoleHandler {
	return &RoleHandler{identity: identity}
}

// GetRoles returns all available roles with their permissions
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.identity.GetRoles(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch roles"})
	}
	return c.JSON(fiber.Map{"data": roles})
}

// GetPermissions returns every permission known to the system
// GET /api/v1/permissions
func (h *RoleHandler) GetPermissions(c *fiber.Ctx) error {
	perms, err := h.identity.GetPermissions(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch permissions"})
	}
	return c.JSON(fiber.Map{"data": perms})
}
