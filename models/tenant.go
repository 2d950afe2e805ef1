package models

import (
	"time"
)

// Tenant represents a parking operator company in the multi-tenant system
type Tenant struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new Tenant instance
func NewTenant(name string) *Tenant {
	return &Tenant{
		Name:      name,
		CreatedAt: time.Now(),
	}
}
