package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"smart-inventory/pkg/validator"
)

// Error kinds. Every error returned by a service wraps exactly one of them,
// so callers can branch with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPersistence       = errors.New("persistence failure")
)

var (
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrSupplierNotFound = fmt.Errorf("supplier %w", ErrNotFound)
	ErrReasonNotFound   = fmt.Errorf("reason %w", ErrNotFound)
	ErrActorNotFound    = fmt.Errorf("actor %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrRoleNotFound     = fmt.Errorf("role %w", ErrNotFound)

	ErrSKUExists        = fmt.Errorf("%w: sku already exists", ErrConflict)
	ErrReasonExists     = fmt.Errorf("%w: reason already exists", ErrConflict)
	ErrReasonInUse      = fmt.Errorf("%w: reason is referenced by stock transactions", ErrConflict)
	ErrSupplierConflict = fmt.Errorf("%w: supplier contact details already registered", ErrConflict)
	ErrUsernameTaken    = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrEmailTaken       = fmt.Errorf("%w: email already registered", ErrConflict)

	ErrNoChanges          = fmt.Errorf("%w: no changes detected", ErrValidation)
	ErrProductInactive    = fmt.Errorf("%w: product is deactivated", ErrValidation)
	ErrSupplierInactive   = fmt.Errorf("%w: supplier is deactivated", ErrValidation)
	ErrOpeningStock       = fmt.Errorf("%w: opening quantity does not match product stock", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrValidation)
	ErrInactiveAccount    = fmt.Errorf("%w: account must be active", ErrValidation)
	ErrUnknownUserKind    = fmt.Errorf("%w: unknown user kind", ErrValidation)
)

// ValidationError lists the input fields that failed validation.
type ValidationError struct {
	Fields []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.FailedField, f.Tag))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// validate runs the struct validator and wraps failures in a ValidationError.
func validate(v interface{}) error {
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// invalid builds a ValidationError for a single field checked by hand.
func invalid(field, tag string) error {
	return &ValidationError{Fields: []*validator.ErrorResponse{{FailedField: field, Tag: tag}}}
}

// storeErr maps a gorm error onto the taxonomy. notFound and conflict are
// returned for record-not-found and unique-key violations; anything else is
// logged and reported as a persistence failure.
func storeErr(log *zap.Logger, op string, err error, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey) && conflict != nil:
		return conflict
	}
	log.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, ErrPersistence)
}

// passThrough reports whether err already belongs to the taxonomy and can be
// returned to the caller unchanged.
func passThrough(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrPersistence)
}
