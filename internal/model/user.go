package model

import "time"

// ActorKind tells which account table a user id belongs to.
type ActorKind string

const (
	ActorAdmin ActorKind = "admin"
	ActorStaff ActorKind = "staff"
)

// Account holds the columns shared by administrators and staff members.
// Usernames are unique across both tables.
type Account struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FirstName     string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username      string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash  string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	RoleID        uint       `gorm:"not null;index" json:"role_id"`
	IsActive      bool       `gorm:"not null;index" json:"is_active"`
	DateCreated   time.Time  `gorm:"not null" json:"date_created"`
	LastLoginDate *time.Time `json:"last_login_date,omitempty"`
}

type Admin struct {
	Account
}

func (Admin) TableName() string {
	return "admins"
}

type Staff struct {
	Account
}

func (Staff) TableName() string {
	return "staff"
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	Kind          ActorKind  `json:"kind"`
	ID            uint       `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	RoleID        uint       `json:"role_id"`
	IsActive      bool       `json:"is_active"`
	DateCreated   time.Time  `json:"date_created"`
	LastLoginDate *time.Time `json:"last_login_date,omitempty"`
}

// ToResponse converts an Account to UserResponse
func (a *Account) ToResponse(kind ActorKind) UserResponse {
	return UserResponse{
		Kind:          kind,
		ID:            a.ID,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Email:         a.Email,
		Username:      a.Username,
		RoleID:        a.RoleID,
		IsActive:      a.IsActive,
		DateCreated:   a.DateCreated,
		LastLoginDate: a.LastLoginDate,
	}
}
