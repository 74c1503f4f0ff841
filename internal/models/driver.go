package models

import "time"

// DriverStatus represents a driver's employment status
type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "active"
	DriverStatusInactive DriverStatus = "inactive"
)

// DriverRecord is a fleet driver managed by an operator (drivers collection)
type DriverRecord struct {
	DriverID      string       `json:"driver_id" db:"driver_id"`
	OperatorID    string       `json:"operator_id" db:"operator_id"`
	Name          string       `json:"name" db:"name"`
	Phone         string       `json:"phone" db:"phone"`
	LicenseNumber string       `json:"license_number" db:"license_number"`
	AssignedBus   string       `json:"assigned_bus" db:"assigned_bus"`
	Status        DriverStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// CreateDriverRequest carries the add-driver form fields
type CreateDriverRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
	AssignedBus   string `json:"assigned_bus"`
}

// UpdateDriverRequest carries the editable driver fields
type UpdateDriverRequest struct {
	Name          *string       `json:"name,omitempty"`
	Phone         *string       `json:"phone,omitempty"`
	LicenseNumber *string       `json:"license_number,omitempty"`
	AssignedBus   *string       `json:"assigned_bus,omitempty"`
	Status        *DriverStatus `json:"status,omitempty"`
}
