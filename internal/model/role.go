package model

// Role groups permissions. Enforcement lives outside this service; only the
// association is stored.
type Role struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role names as constants
const (
	RoleAdmin              = "Admin"
	RoleManager            = "Manager"
	RoleInventoryManager   = "InventoryManager"
	RoleProcurementOfficer = "ProcurementOfficer"
	RoleSalesUser          = "SalesUser"
	RoleViewer             = "Viewer"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{Name: RoleAdmin},
	{Name: RoleManager},
	{Name: RoleInventoryManager},
	{Name: RoleProcurementOfficer},
	{Name: RoleSalesUser},
	{Name: RoleViewer},
}

// DefaultRolePermissions maps a role to the permissions it is seeded with.
// A nil entry means every permission.
var DefaultRolePermissions = map[string][]string{
	RoleAdmin: nil,
	RoleManager: {
		PermViewUsers, PermAddProduct, PermEditProduct, PermDeactivateProduct,
		PermViewProductDetails, PermViewProductHistory, PermAddSupplier, PermEditSupplier,
		PermDeactivateSupplier, PermViewSupplierDetails, PermRecordIncomingStock,
		PermRecordOutgoingStock, PermRecordAdjustment, PermViewStockLevels,
		PermViewReports, PermExportReports,
	},
	RoleInventoryManager: {
		PermAddProduct, PermEditProduct, PermViewProductDetails, PermViewProductHistory,
		PermRecordIncomingStock, PermRecordOutgoingStock, PermRecordAdjustment,
		PermViewStockLevels, PermViewLowStockAlerts,
	},
	RoleProcurementOfficer: {
		PermViewSupplierDetails, PermAddSupplier, PermEditSupplier, PermViewProductDetails,
		PermCreatePurchaseOrder, PermEditPurchaseOrder, PermViewPurchaseOrder,
		PermUpdatePurchaseOrderStatus,
	},
	RoleSalesUser: {
		PermViewProductDetails, PermRecordOutgoingStock, PermViewStockLevels,
	},
	RoleViewer: {
		PermViewProductDetails, PermViewSupplierDetails, PermViewStockLevels,
	},
}
