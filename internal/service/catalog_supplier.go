package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"smart-inventory/internal/model"
)

// SupplierInput is used both to register a supplier and to edit one. On edit,
// empty fields keep their stored value.
type SupplierInput struct {
	Name               string `json:"name" validate:"required,notblank,max=255"`
	ContactPersonName  string `json:"contact_person_name" validate:"required,notblank,max=255"`
	ContactPersonEmail string `json:"contact_person_email" validate:"required,email,max=255"`
	ContactPersonPhone string `json:"contact_person_phone" validate:"required,notblank,max=50"`
	ContactPersonRole  string `json:"contact_person_role" validate:"required,notblank,max=100"`
	Address            string `json:"address" validate:"required,notblank,max=255"`
	Phone              string `json:"phone" validate:"required,notblank,max=50"`
	Email              string `json:"email" validate:"required,email,max=255"`
	Website            string `json:"website" validate:"omitempty,url,max=255"`
}

func (s *catalogService) CreateSupplier(ctx context.Context, in SupplierInput) (*model.Supplier, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{IsActive: true}
	applySupplierInput(supplier, &in)

	if err := s.checkSupplierContacts(ctx, supplier); err != nil {
		return nil, err
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, storeErr(s.log, "create supplier", err, nil, ErrSupplierConflict)
	}

	s.log.Info("supplier created", zap.Uint("supplier_id", supplier.ID), zap.String("name", supplier.Name))
	return supplier, nil
}

func (s *catalogService) checkSupplierContacts(ctx context.Context, supplier *model.Supplier) error {
	taken, err := s.suppliers.ContactTaken(ctx, supplier)
	if err != nil {
		return storeErr(s.log, "check supplier contacts", err, nil, nil)
	}
	if taken {
		return ErrSupplierConflict
	}
	return nil
}

// EditSupplier merges the non-empty fields of in onto the stored supplier,
// validates the result and writes only the columns that changed.
func (s *catalogService) EditSupplier(ctx context.Context, id uint, in SupplierInput) (*model.Supplier, error) {
	current, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(s.log, "find supplier", err, ErrSupplierNotFound, nil)
	}

	merged := supplierInputOf(current)
	mergeSupplierInput(&merged, &in)
	if err := validate(&merged); err != nil {
		return nil, err
	}

	fields := supplierChanges(current, &merged)
	if len(fields) == 0 {
		return nil, ErrNoChanges
	}

	next := *current
	applySupplierInput(&next, &merged)
	if err := s.checkSupplierContacts(ctx, &next); err != nil {
		return nil, err
	}

	if err := s.suppliers.UpdateFields(ctx, id, fields); err != nil {
		return nil, storeErr(s.log, "update supplier", err, ErrSupplierNotFound, ErrSupplierConflict)
	}
	return s.GetSupplier(ctx, id)
}

func (s *catalogService) ToggleSupplierActive(ctx context.Context, id uint) (*model.Supplier, error) {
	if err := s.suppliers.ToggleActive(ctx, id); err != nil {
		return nil, storeErr(s.log, "toggle supplier", err, ErrSupplierNotFound, nil)
	}
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Publish(EventCatalogUpdate, ActionSupplierToggled,
		fmt.Sprintf("supplier '%s' active=%t", supplier.Name, supplier.IsActive), supplier)
	return supplier, nil
}

func (s *catalogService) GetSupplier(ctx context.Context, id uint) (*model.Supplier, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(s.log, "find supplier", err, ErrSupplierNotFound, nil)
	}
	return supplier, nil
}

func (s *catalogService) GetActiveSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.listSuppliers(ctx, true)
}

func (s *catalogService) GetDeactivatedSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.listSuppliers(ctx, false)
}

func (s *catalogService) listSuppliers(ctx context.Context, active bool) ([]model.Supplier, error) {
	suppliers, err := s.suppliers.FindByActive(ctx, active)
	if err != nil {
		return nil, storeErr(s.log, "list suppliers", err, nil, nil)
	}
	return suppliers, nil
}

func applySupplierInput(sp *model.Supplier, in *SupplierInput) {
	sp.Name = in.Name
	sp.ContactPersonName = in.ContactPersonName
	sp.ContactPersonEmail = in.ContactPersonEmail
	sp.ContactPersonPhone = in.ContactPersonPhone
	sp.ContactPersonRole = in.ContactPersonRole
	sp.Address = in.Address
	sp.Phone = in.Phone
	sp.Email = in.Email
	sp.Website = in.Website
}

func supplierInputOf(sp *model.Supplier) SupplierInput {
	return SupplierInput{
		Name:               sp.Name,
		ContactPersonName:  sp.ContactPersonName,
		ContactPersonEmail: sp.ContactPersonEmail,
		ContactPersonPhone: sp.ContactPersonPhone,
		ContactPersonRole:  sp.ContactPersonRole,
		Address:            sp.Address,
		Phone:              sp.Phone,
		Email:              sp.Email,
		Website:            sp.Website,
	}
}

func mergeSupplierInput(dst, src *SupplierInput) {
	set := func(d *string, v string) {
		if v != "" {
			*d = v
		}
	}
	set(&dst.Name, src.Name)
	set(&dst.ContactPersonName, src.ContactPersonName)
	set(&dst.ContactPersonEmail, src.ContactPersonEmail)
	set(&dst.ContactPersonPhone, src.ContactPersonPhone)
	set(&dst.ContactPersonRole, src.ContactPersonRole)
	set(&dst.Address, src.Address)
	set(&dst.Phone, src.Phone)
	set(&dst.Email, src.Email)
	set(&dst.Website, src.Website)
}

func supplierChanges(sp *model.Supplier, in *SupplierInput) map[string]interface{} {
	fields := map[string]interface{}{}
	diff := func(column, old, next string) {
		if old != next {
			fields[column] = next
		}
	}
	diff("name", sp.Name, in.Name)
	diff("contact_person_name", sp.ContactPersonName, in.ContactPersonName)
	diff("contact_person_email", sp.ContactPersonEmail, in.ContactPersonEmail)
	diff("contact_person_phone", sp.ContactPersonPhone, in.ContactPersonPhone)
	diff("contact_person_role", sp.ContactPersonRole, in.ContactPersonRole)
	diff("address", sp.Address, in.Address)
	diff("phone", sp.Phone, in.Phone)
	diff("email", sp.Email, in.Email)
	diff("website", sp.Website, in.Website)
	return fields
}
