package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"smart-inventory/internal/model"
	"smart-inventory/internal/repository"
	"smart-inventory/pkg/password"
)

type UserKind string

const (
	UserKindAdmin    UserKind = "admin"
	UserKindStaff    UserKind = "staff"
	UserKindSupplier UserKind = "supplier"
)

// AccountInput registers an administrator or a staff member.
type AccountInput struct {
	Username  string `json:"username" validate:"required,notblank,max=100"`
	FirstName string `json:"first_name" validate:"required,notblank,max=100"`
	LastName  string `json:"last_name" validate:"required,notblank,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6"`
	RoleID    uint   `json:"role_id" validate:"required,gt=0"`
	IsActive  bool   `json:"is_active"`
}

// NewUser is one of three kinds of user. Kind selects which of Account or
// Supplier is read.
type NewUser struct {
	Kind     UserKind       `json:"kind"`
	Account  *AccountInput  `json:"account,omitempty"`
	Supplier *SupplierInput `json:"supplier,omitempty"`
}

// UserRecord is the created user. Exactly one of User and Supplier is set.
type UserRecord struct {
	Kind     UserKind            `json:"kind"`
	User     *model.UserResponse `json:"user,omitempty"`
	Supplier *model.Supplier     `json:"supplier,omitempty"`
}

// AccountEdit is a partial update of an account. The username is immutable.
type AccountEdit struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,notblank,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,notblank,max=100"`
	RoleID    *uint   `json:"role_id" validate:"omitempty,gt=0"`
}

type passwordInput struct {
	Password string `validate:"required,min=6"`
}

type IdentityService interface {
	CreateUser(ctx context.Context, in NewUser) (*UserRecord, error)
	VerifyCredentials(ctx context.Context, username, plain string) (bool, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	SetPassword(ctx context.Context, username, newPassword string) error
	ToggleActive(ctx context.Context, username string) (*model.UserResponse, error)

	GetAdmin(ctx context.Context, username string) (*model.UserResponse, error)
	GetStaffMember(ctx context.Context, username string) (*model.UserResponse, error)
	GetActivatedAdmins(ctx context.Context) ([]model.UserResponse, error)
	GetDeactivatedAdmins(ctx context.Context) ([]model.UserResponse, error)
	GetActivatedStaff(ctx context.Context) ([]model.UserResponse, error)
	GetDeactivatedStaff(ctx context.Context) ([]model.UserResponse, error)
	EditAdmin(ctx context.Context, username string, edit AccountEdit) (*model.UserResponse, error)
	EditStaffMember(ctx context.Context, username string, edit AccountEdit) (*model.UserResponse, error)

	GetRoles(ctx context.Context) ([]model.Role, error)
	GetPermissions(ctx context.Context) ([]model.Permission, error)
}

type identityService struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	catalog     CatalogService
	hasher      password.Hasher
	log         *zap.Logger
	now         func() time.Time
}

func NewIdentityService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	permissions repository.PermissionRepository,
	catalog CatalogService,
	hasher password.Hasher,
	log *zap.Logger,
) IdentityService {
	return &identityService{
		users:       users,
		roles:       roles,
		permissions: permissions,
		catalog:     catalog,
		hasher:      hasher,
		log:         log,
		now:         time.Now,
	}
}

func (s *identityService) CreateUser(ctx context.Context, in NewUser) (*UserRecord, error) {
	switch in.Kind {
	case UserKindAdmin, UserKindStaff:
		if in.Account == nil {
			return nil, invalid("NewUser.Account", "required")
		}
		resp, err := s.createAccount(ctx, model.ActorKind(in.Kind), in.Account)
		if err != nil {
			return nil, err
		}
		return &UserRecord{Kind: in.Kind, User: resp}, nil
	case UserKindSupplier:
		if in.Supplier == nil {
			return nil, invalid("NewUser.Supplier", "required")
		}
		supplier, err := s.catalog.CreateSupplier(ctx, *in.Supplier)
		if err != nil {
			return nil, err
		}
		return &UserRecord{Kind: in.Kind, Supplier: supplier}, nil
	default:
		return nil, ErrUnknownUserKind
	}
}

func (s *identityService) createAccount(ctx context.Context, kind model.ActorKind, in *AccountInput) (*model.UserResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if !in.IsActive {
		return nil, ErrInactiveAccount
	}

	if _, err := s.roles.FindByID(ctx, in.RoleID); err != nil {
		return nil, storeErr(s.log, "find role", err, ErrRoleNotFound, nil)
	}

	taken, err := s.users.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, storeErr(s.log, "check username", err, nil, nil)
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, storeErr(s.log, "check email", err, nil, nil)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, ErrPersistence
	}

	account := &model.Account{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		RoleID:       in.RoleID,
		IsActive:     true,
		DateCreated:  s.now().UTC(),
	}
	if err := s.users.Create(ctx, kind, account); err != nil {
		return nil, storeErr(s.log, "create account", err, nil, ErrUsernameTaken)
	}

	s.log.Info("account created", zap.String("kind", string(kind)), zap.String("username", account.Username))
	resp := account.ToResponse(kind)
	return &resp, nil
}

// lookup finds a username among administrators, then staff.
func (s *identityService) lookup(ctx context.Context, username string) (model.ActorKind, *model.Account, error) {
	for _, kind := range []model.ActorKind{model.ActorAdmin, model.ActorStaff} {
		account, err := s.users.FindByUsername(ctx, kind, username)
		if err == nil {
			return kind, account, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, storeErr(s.log, "find account", err, nil, nil)
		}
	}
	return "", nil, ErrUserNotFound
}

// VerifyCredentials reports whether username and plain match an active
// account. A successful check stamps the account's last login date.
func (s *identityService) VerifyCredentials(ctx context.Context, username, plain string) (bool, error) {
	if username == "" || plain == "" {
		return false, nil
	}

	kind, account, err := s.lookup(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !account.IsActive || !s.hasher.Verify(account.PasswordHash, plain) {
		return false, nil
	}

	if err := s.users.UpdateLastLogin(ctx, kind, account.ID, s.now().UTC()); err != nil {
		// Login still succeeds; the timestamp is informational.
		s.log.Warn("failed to stamp last login", zap.String("username", username), zap.Error(err))
	}
	return true, nil
}

func (s *identityService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	kind, account, err := s.lookup(ctx, username)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(account.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}
	return s.storePassword(ctx, kind, account, newPassword)
}

// SetPassword replaces a password without knowing the old one.
func (s *identityService) SetPassword(ctx context.Context, username, newPassword string) error {
	kind, account, err := s.lookup(ctx, username)
	if err != nil {
		return err
	}
	return s.storePassword(ctx, kind, account, newPassword)
}

func (s *identityService) storePassword(ctx context.Context, kind model.ActorKind, account *model.Account, plain string) error {
	if err := validate(&passwordInput{Password: plain}); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return ErrPersistence
	}
	if err := s.users.UpdatePassword(ctx, kind, account.ID, hash); err != nil {
		return storeErr(s.log, "update password", err, ErrUserNotFound, nil)
	}
	s.log.Info("password updated", zap.String("username", account.Username))
	return nil
}

func (s *identityService) ToggleActive(ctx context.Context, username string) (*model.UserResponse, error) {
	kind, account, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.users.ToggleActive(ctx, kind, account.ID); err != nil {
		return nil, storeErr(s.log, "toggle account", err, ErrUserNotFound, nil)
	}
	return s.get(ctx, kind, username)
}

func (s *identityService) get(ctx context.Context, kind model.ActorKind, username string) (*model.UserResponse, error) {
	account, err := s.users.FindByUsername(ctx, kind, username)
	if err != nil {
		return nil, storeErr(s.log, "find account", err, ErrUserNotFound, nil)
	}
	resp := account.ToResponse(kind)
	return &resp, nil
}

func (s *identityService) GetAdmin(ctx context.Context, username string) (*model.UserResponse, error) {
	return s.get(ctx, model.ActorAdmin, username)
}

func (s *identityService) GetStaffMember(ctx context.Context, username string) (*model.UserResponse, error) {
	return s.get(ctx, model.ActorStaff, username)
}

func (s *identityService) list(ctx context.Context, kind model.ActorKind, active bool) ([]model.UserResponse, error) {
	accounts, err := s.users.FindByActive(ctx, kind, active)
	if err != nil {
		return nil, storeErr(s.log, "list accounts", err, nil, nil)
	}
	responses := make([]model.UserResponse, len(accounts))
	for i := range accounts {
		responses[i] = accounts[i].ToResponse(kind)
	}
	return responses, nil
}

func (s *identityService) GetActivatedAdmins(ctx context.Context) ([]model.UserResponse, error) {
	return s.list(ctx, model.ActorAdmin, true)
}

func (s *identityService) GetDeactivatedAdmins(ctx context.Context) ([]model.UserResponse, error) {
	return s.list(ctx, model.ActorAdmin, false)
}

func (s *identityService) GetActivatedStaff(ctx context.Context) ([]model.UserResponse, error) {
	return s.list(ctx, model.ActorStaff, true)
}

func (s *identityService) GetDeactivatedStaff(ctx context.Context) ([]model.UserResponse, error) {
	return s.list(ctx, model.ActorStaff, false)
}

func (s *identityService) EditAdmin(ctx context.Context, username string, edit AccountEdit) (*model.UserResponse, error) {
	return s.edit(ctx, model.ActorAdmin, username, edit)
}

func (s *identityService) EditStaffMember(ctx context.Context, username string, edit AccountEdit) (*model.UserResponse, error) {
	return s.edit(ctx, model.ActorStaff, username, edit)
}

func (s *identityService) edit(ctx context.Context, kind model.ActorKind, username string, edit AccountEdit) (*model.UserResponse, error) {
	if err := validate(&edit); err != nil {
		return nil, err
	}

	account, err := s.users.FindByUsername(ctx, kind, username)
	if err != nil {
		return nil, storeErr(s.log, "find account", err, ErrUserNotFound, nil)
	}

	fields := map[string]interface{}{}
	if edit.FirstName != nil && *edit.FirstName != account.FirstName {
		fields["first_name"] = *edit.FirstName
	}
	if edit.LastName != nil && *edit.LastName != account.LastName {
		fields["last_name"] = *edit.LastName
	}
	if edit.Email != nil && *edit.Email != account.Email {
		taken, err := s.users.EmailExists(ctx, *edit.Email)
		if err != nil {
			return nil, storeErr(s.log, "check email", err, nil, nil)
		}
		if taken {
			return nil, ErrEmailTaken
		}
		fields["email"] = *edit.Email
	}
	if edit.RoleID != nil && *edit.RoleID != account.RoleID {
		if _, err := s.roles.FindByID(ctx, *edit.RoleID); err != nil {
			return nil, storeErr(s.log, "find role", err, ErrRoleNotFound, nil)
		}
		fields["role_id"] = *edit.RoleID
	}
	if len(fields) == 0 {
		return nil, ErrNoChanges
	}

	if err := s.users.UpdateFields(ctx, kind, account.ID, fields); err != nil {
		return nil, storeErr(s.log, "update account", err, ErrUserNotFound, ErrEmailTaken)
	}
	return s.get(ctx, kind, username)
}

func (s *identityService) GetRoles(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roles.FindAll(ctx)
	if err != nil {
		return nil, storeErr(s.log, "list roles", err, nil, nil)
	}
	return roles, nil
}

func (s *identityService) GetPermissions(ctx context.Context) ([]model.Permission, error) {
	perms, err := s.permissions.FindAll(ctx)
	if err != nil {
		return nil, storeErr(s.log, "list permissions", err, nil, nil)
	}
	return perms, nil
}
