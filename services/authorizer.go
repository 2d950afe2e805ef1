package services

import (
	"github.com/nexohub/nexohub-api/models"
)

// TenantScope binds an authorized principal to its tenant for the rest of a
// request. The zero value is not valid; only Authorizer.ScopeToTenant builds one.
type TenantScope struct {
	principal *models.User
	tenantID  int64
	valid     bool
}

// TenantID returns the tenant every scoped operation is restricted to
func (s TenantScope) TenantID() int64 {
	return s.tenantID
}

// Principal returns the authorized user
func (s TenantScope) Principal() *models.User {
	return s.principal
}

// Valid reports whether the scope was produced by a successful authorization
func (s TenantScope) Valid() bool {
	return s.valid
}

// Authorizer applies role and tenant checks to an authenticated principal.
// It holds no state.
type Authorizer struct{}

// NewAuthorizer creates a new Authorizer
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// RequireRole returns principal when it holds role
func (a *Authorizer) RequireRole(principal *models.User, role models.UserRole) (*models.User, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}
	if !principal.HasRole(role) {
		return nil, ErrForbidden
	}
	return principal, nil
}

// RequireTenantAssigned returns principal when it has a tenant
func (a *Authorizer) RequireTenantAssigned(principal *models.User) (*models.User, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}
	if !principal.HasTenant() {
		return nil, ErrTenantNotAssigned
	}
	return principal, nil
}

// ScopeToTenant checks role, then tenant assignment, and returns the scope
func (a *Authorizer) ScopeToTenant(principal *models.User, role models.UserRole) (TenantScope, error) {
	user, err := a.RequireRole(principal, role)
	if err != nil {
		return TenantScope{}, err
	}
	if user, err = a.RequireTenantAssigned(user); err != nil {
		return TenantScope{}, err
	}
	return TenantScope{principal: user, tenantID: *user.TenantID, valid: true}, nil
}
