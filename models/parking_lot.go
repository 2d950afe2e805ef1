package models

import (
	"time"
)

// ParkingLot is a tenant-owned parking facility
type ParkingLot struct {
	ID        int64     `json:"id" db:"id"`
	TenantID  int64     `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	Address   *string   `json:"address" db:"address"`
	City      *string   `json:"city" db:"city"`
	Capacity  int       `json:"capacity" db:"capacity"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the ParkingLot model
func (ParkingLot) TableName() string {
	return "parking_lots"
}

// NewParkingLot creates a new active ParkingLot owned by tenantID
func NewParkingLot(tenantID int64, name string, address, city *string, capacity int) *ParkingLot {
	now := time.Now()
	return &ParkingLot{
		TenantID:  tenantID,
		Name:      name,
		Address:   address,
		City:      city,
		Capacity:  capacity,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ParkingLotPatch carries a partial update; nil fields are left untouched.
type ParkingLotPatch struct {
	Name     *string
	Address  *string
	City     *string
	Capacity *int
	IsActive *bool
}

// Apply copies the set fields of p onto lot. TenantID is never patched.
func (p ParkingLotPatch) Apply(lot *ParkingLot) {
	if p.Name != nil {
		lot.Name = *p.Name
	}
	if p.Address != nil {
		lot.Address = p.Address
	}
	if p.City != nil {
		lot.City = p.City
	}
	if p.Capacity != nil {
		lot.Capacity = *p.Capacity
	}
	if p.IsActive != nil {
		lot.IsActive = *p.IsActive
	}
	lot.UpdatedAt = time.Now()
}

// IsEmpty reports whether the patch changes nothing.
func (p ParkingLotPatch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.City == nil && p.Capacity == nil && p.IsActive == nil
}
