package models

import (
	"time"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/utils"
)

// OperatorStatus represents an operator account's standing
type OperatorStatus string

const (
	OperatorStatusActive    OperatorStatus = "active"
	OperatorStatusPending   OperatorStatus = "pending"
	OperatorStatusSuspended OperatorStatus = "suspended"
)

// OperatorIdentity is the canonical operator record (operators
// collection). RecordID is the store-assigned key; OperatorID is the
// business-facing identifier shown to the operator.
type OperatorIdentity struct {
	RecordID     string         `json:"record_id" db:"record_id"`
	OperatorID   string         `json:"operator_id" db:"operator_id"`
	DisplayName  string         `json:"display_name" db:"display_name"`
	BusinessName string         `json:"business_name" db:"business_name"`
	ContactEmail string         `json:"contact_email" db:"contact_email"`
	ContactPhone string         `json:"contact_phone" db:"contact_phone"`
	Status       OperatorStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// LocalOperatorRef is the session-scoped operator reference held in the
// identity cache. Any of its identifying fields may be empty or stale;
// the resolver treats it as a hint, never as the source of truth.
type LocalOperatorRef struct {
	RecordID     string           `json:"record_id"`
	OperatorID   string           `json:"operator_id"`
	Email        string           `json:"email"`
	BusinessName string           `json:"business_name"`
	Mobile       string           `json:"mobile"`
	Device       utils.DeviceInfo `json:"device"`
	ResolvedAt   time.Time        `json:"resolved_at"`
}

// UpdateOperatorRequest carries a partial profile update. Nil fields
// are left untouched by the merge.
type UpdateOperatorRequest struct {
	DisplayName  *string `json:"display_name,omitempty"`
	BusinessName *string `json:"business_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
}
