package model

// Permission represents an action that can be granted to a role
type Permission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // e.g., "AddProduct"
	Description string `gorm:"type:varchar(255)" json:"description"`
}

func (Permission) TableName() string {
	return "permissions"
}

const (
	// User management
	PermCreateUser     = "CreateUser"
	PermEditUser       = "EditUser"
	PermDeactivateUser = "DeactivateUser"
	PermViewUsers      = "ViewUsers"
	// Product management
	PermAddProduct         = "AddProduct"
	PermEditProduct        = "EditProduct"
	PermDeactivateProduct  = "DeactivateProduct"
	PermViewProductDetails = "ViewProductDetails"
	PermViewProductHistory = "ViewProductHistory"
	// Supplier management
	PermAddSupplier         = "AddSupplier"
	PermEditSupplier        = "EditSupplier"
	PermDeactivateSupplier  = "DeactivateSupplier"
	PermViewSupplierDetails = "ViewSupplierDetails"
	// Stock management
	PermRecordIncomingStock = "RecordIncomingStock"
	PermRecordOutgoingStock = "RecordOutgoingStock"
	PermRecordAdjustment    = "RecordAdjustment"
	PermViewStockLevels     = "ViewStockLevels"
	// Forecasts
	PermViewForecast       = "ViewForecast"
	PermViewForecastAlerts = "ViewForecastAlerts"
	PermRefreshForecasts   = "RefreshForecasts"
	// Procurement
	PermCreatePurchaseOrder       = "CreatePurchaseOrder"
	PermEditPurchaseOrder         = "EditPurchaseOrder"
	PermViewPurchaseOrder         = "ViewPurchaseOrder"
	PermExportPurchaseOrderToPdf  = "ExportPurchaseOrderToPdf"
	PermUpdatePurchaseOrderStatus = "UpdatePurchaseOrderStatus"
	// Reports
	PermViewReports   = "ViewReports"
	PermExportReports = "ExportReports"
	// Notifications
	PermViewLowStockAlerts           = "ViewLowStockAlerts"
	PermViewStockoutPredictionAlerts = "ViewStockoutPredictionAlerts"
	PermViewSlowMovingAlerts         = "ViewSlowMovingAlerts"
)

// Default permissions for the system
var DefaultPermissions = []Permission{
	{Name: PermCreateUser, Description: "Create User"},
	{Name: PermEditUser, Description: "Edit User"},
	{Name: PermDeactivateUser, Description: "Deactivate User"},
	{Name: PermViewUsers, Description: "View Users"},
	{Name: PermAddProduct, Description: "Add Product"},
	{Name: PermEditProduct, Description: "Edit Product"},
	{Name: PermDeactivateProduct, Description: "Deactivate Product"},
	{Name: PermViewProductDetails, Description: "View Product Details"},
	{Name: PermViewProductHistory, Description: "View Product History"},
	{Name: PermAddSupplier, Description: "Add Supplier"},
	{Name: PermEditSupplier, Description: "Edit Supplier"},
	{Name: PermDeactivateSupplier, Description: "Deactivate Supplier"},
	{Name: PermViewSupplierDetails, Description: "View Supplier Details"},
	{Name: PermRecordIncomingStock, Description: "Record Incoming Stock"},
	{Name: PermRecordOutgoingStock, Description: "Record Outgoing Stock"},
	{Name: PermRecordAdjustment, Description: "Record Adjustment"},
	{Name: PermViewStockLevels, Description: "View Stock Levels"},
	{Name: PermViewForecast, Description: "View Forecast"},
	{Name: PermViewForecastAlerts, Description: "View Forecast Alerts"},
	{Name: PermRefreshForecasts, Description: "Refresh Forecasts"},
	{Name: PermCreatePurchaseOrder, Description: "Create Purchase Order"},
	{Name: PermEditPurchaseOrder, Description: "Edit Purchase Order"},
	{Name: PermViewPurchaseOrder, Description: "View Purchase Order"},
	{Name: PermExportPurchaseOrderToPdf, Description: "Export Purchase Order To PDF"},
	{Name: PermUpdatePurchaseOrderStatus, Description: "Update Purchase Order Status"},
	{Name: PermViewReports, Description: "View Reports"},
	{Name: PermExportReports, Description: "Export Reports"},
	{Name: PermViewLowStockAlerts, Description: "View Low Stock Alerts"},
	{Name: PermViewStockoutPredictionAlerts, Description: "View Stockout Prediction Alerts"},
	{Name: PermViewSlowMovingAlerts, Description: "View Slow Moving Alerts"},
}
