package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"smart-inventory/internal/service"
	"smart-inventory/internal/ws"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Products  *ProductHandler
	Suppliers *SupplierHandler
	Stock     *StockHandler
	Users     *UserHandler
	Auth      *AuthHandler
	Roles     *RoleHandler
}

func NewHandlers(catalog service.CatalogService, ledger service.LedgerService, identity service.IdentityService) *Handlers {
	return &Handlers{
		Products:  NewProductHandler(catalog, ledger),
		Suppliers: NewSupplierHandler(catalog),
		Stock:     NewStockHandler(ledger),
		Users:     NewUserHandler(identity),
		Auth:      NewAuthHandler(identity),
		Roles:     NewRoleHandler(identity),
	}
}

// Register mounts the API routes under api (normally /api/v1).
func (h *Handlers) Register(api fiber.Router) {
	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/change-password", h.Auth.ChangePassword)

	// Product Routes
	api.Get("/products", h.Products.GetProducts)
	api.Post("/products", h.Products.CreateProduct)
	api.Get("/products/:sku", h.Products.GetProduct)
	api.Put("/products/:sku", h.Products.UpdateProduct)
	api.Patch("/products/:sku/toggle-active", h.Products.ToggleActive)
	api.Get("/products/:sku/transactions", h.Products.GetProductTransactions)

	// Supplier Routes
	api.Get("/suppliers", h.Suppliers.GetSuppliers)
	api.Post("/suppliers", h.Suppliers.CreateSupplier)
	api.Get("/suppliers/:id", h.Suppliers.GetSupplier)
	api.Put("/suppliers/:id", h.Suppliers.UpdateSupplier)
	api.Patch("/suppliers/:id/toggle-active", h.Suppliers.ToggleActive)

	// Stock Routes
	stock := api.Group("/stock")
	stock.Get("/reasons", h.Stock.GetReasons)
	stock.Post("/reasons", h.Stock.AddReason)
	stock.Delete("/reasons/:id", h.Stock.DeleteReason)
	stock.Post("/incoming", h.Stock.RecordIncoming)
	stock.Post("/outgoing", h.Stock.RecordOutgoing)
	stock.Post("/adjustment", h.Stock.RecordAdjustment)
	stock.Get("/transactions", h.Stock.GetTransactions)

	// User Management Routes
	api.Post("/users", h.Users.CreateUser)
	api.Patch("/users/:username/toggle-active", h.Users.ToggleActive)
	api.Get("/admins", h.Users.GetAdmins)
	api.Get("/admins/:username", h.Users.GetAdmin)
	api.Put("/admins/:username", h.Users.UpdateAdmin)
	api.Get("/staff", h.Users.GetStaff)
	api.Get("/staff/:username", h.Users.GetStaffMember)
	api.Put("/staff/:username", h.Users.UpdateStaffMember)

	// Role Routes
	api.Get("/roles", h.Roles.GetRoles)
	api.Get("/permissions", h.Roles.GetPermissions)
}

// RegisterWebsocket mounts the stock event stream at /ws.
func RegisterWebsocket(app fiber.Router, hub *ws.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(hub.Serve))
}
