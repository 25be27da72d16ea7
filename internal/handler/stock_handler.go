package handler

import (
	"github.com/gofiber/fiber/v2"

	"smart-inventory/internal/service"
)

type StockHandler struct {
	ledger service.LedgerService
}

func NewStockHandler(ledger service.LedgerService) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// IncomingRequest is a movement that may be the opening entry of a product
// whose stock was set at creation.
type IncomingRequest struct {
	service.StockMovement
	IsNewProduct bool `json:"is_new_product"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

// POST /api/v1/stock/incoming
func (h *StockHandler) RecordIncoming(c *fiber.Ctx) error {
	var req IncomingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	entry, err := h.ledger.RecordIncoming(c.UserContext(), req.StockMovement, req.IsNewProduct)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Incoming stock recorded", "data": entry})
}

// POST /api/v1/stock/outgoing
func (h *StockHandler) RecordOutgoing(c *fiber.Ctx) error {
	var mv service.StockMovement
	if err := c.BodyParser(&mv); err != nil {
		return invalidJSON(c)
	}
	entry, err := h.ledger.RecordOutgoing(c.UserContext(), mv)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Outgoing stock recorded", "data": entry})
}

// RecordAdjustment takes a signed quantity
// POST /api/v1/stock/adjustment
func (h *StockHandler) RecordAdjustment(c *fiber.Ctx) error {
	var mv service.StockMovement
	if err := c.BodyParser(&mv); err != nil {
		return invalidJSON(c)
	}
	entry, err := h.ledger.RecordAdjustment(c.UserContext(), mv)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Stock adjustment recorded", "data": entry})
}

// GetTransactions lists the whole ledger, or one product's with ?sku=
// GET /api/v1/stock/transactions
func (h *StockHandler) GetTransactions(c *fiber.Ctx) error {
	var (
		entries interface{}
		err     error
	)
	if sku := c.Query("sku"); sku != "" {
		entries, err = h.ledger.GetTransactionsForProduct(c.UserContext(), sku)
	} else {
		entries, err = h.ledger.GetTransactions(c.UserContext())
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": entries})
}

// GET /api/v1/stock/reasons
func (h *StockHandler) GetReasons(c *fiber.Ctx) error {
	reasons, err := h.ledger.GetReasonTypes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": reasons})
}

// POST /api/v1/stock/reasons
func (h *StockHandler) AddReason(c *fiber.Ctx) error {
	var req ReasonRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	reason, err := h.ledger.AddReasonType(c.UserContext(), req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Reason created", "data": reason})
}

// DELETE /api/v1/stock/reasons/:id
func (h *StockHandler) DeleteReason(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.ledger.DeleteReasonType(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reason deleted"})
}
