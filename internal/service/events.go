package service

// Event types and actions pushed to websocket clients.
const (
	EventStockUpdate   = "stock_update"
	EventCatalogUpdate = "catalog_update"

	ActionStockIn         = "stock_in"
	ActionStockOut        = "stock_out"
	ActionStockAdjusted   = "stock_adjusted"
	ActionProductCreated  = "product_created"
	ActionProductUpdated  = "product_updated"
	ActionProductToggled  = "product_toggled"
	ActionSupplierToggled = "supplier_toggled"
)

// EventPublisher receives events after the change they describe has been
// committed. Implementations must not block. *ws.Hub satisfies it.
type EventPublisher interface {
	Publish(eventType, action, message string, data interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, string, string, interface{}) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
