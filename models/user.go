package models

import (
	"time"
)

// UserRole represents the role of a user on the platform
type UserRole string

const (
	// RoleOwner operates the whole SaaS and is not bound to a tenant.
	RoleOwner UserRole = "owner_saas"
	// RoleTenantAdmin manages the parking lots of one tenant.
	RoleTenantAdmin UserRole = "parking_admin"
	// RoleTenantOperator works the lots of one tenant.
	RoleTenantOperator UserRole = "parking_operator"
	// RoleEndUser is a driver and the default role at registration.
	RoleEndUser UserRole = "driver"
)

// DefaultRole is assigned when registration does not name a role.
const DefaultRole = RoleEndUser

// Roles lists every known role.
var Roles = []UserRole{RoleOwner, RoleTenantAdmin, RoleTenantOperator, RoleEndUser}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a principal that can authenticate against the API
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	Role         UserRole  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	TenantID     *int64    `json:"tenant_id" db:"tenant_id"` // Null until bootstrap assigns one
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active User instance. The ID is assigned by the store.
func NewUser(email, passwordHash string, role UserRole) *User {
	if role == "" {
		role = DefaultRole
	}
	now := time.Now()
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasRole returns true if the user holds role
func (u *User) HasRole(role UserRole) bool {
	return u.Role == role
}

// HasTenant returns true once a tenant has been assigned
func (u *User) HasTenant() bool {
	return u.TenantID != nil
}
