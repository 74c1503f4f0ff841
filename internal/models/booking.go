package models

import (
	"time"
)

// PaymentStatus represents a booking's payment lifecycle status
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

// IsKnown reports whether the status is one of the five recognized
// statuses. Unknown values are excluded from every statistics bucket.
func (s PaymentStatus) IsKnown() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

// BookingRecord is one payment/reservation (payments collection).
// Passengers are joined from the passengerinfo collection at read time,
// never embedded at source.
type BookingRecord struct {
	BookingID      string            `json:"booking_id" db:"booking_id"`
	OperatorID     string            `json:"operator_id" db:"operator_id"`
	BusNumber      string            `json:"bus_number" db:"bus_number"`
	TransactionID  string            `json:"transaction_id" db:"transaction_id"`
	PaymentStatus  PaymentStatus     `json:"payment_status" db:"payment_status"`
	PaymentMethod  string            `json:"payment_method" db:"payment_method"`
	TotalAmount    float64           `json:"total_amount" db:"total_amount"`
	PassengerCount int               `json:"passenger_count" db:"passenger_count"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	CancelledAt    *time.Time        `json:"cancelled_at,omitempty" db:"cancelled_at"`
	RefundedAt     *time.Time        `json:"refunded_at,omitempty" db:"refunded_at"`
	CancelledBy    *string           `json:"cancelled_by,omitempty" db:"cancelled_by"`
	Passengers     []PassengerRecord `json:"passengers" db:"-"`
}

// PassengerRecord is one seat-holder inside a booking
// (passengerinfo collection, owned by its booking)
type PassengerRecord struct {
	BookingID string `json:"booking_id" db:"booking_id"`
	Name      string `json:"name" db:"name"`
	Age       int    `json:"age" db:"age"`
	Gender    string `json:"gender" db:"gender"`
	SeatID    string `json:"seat_id" db:"seat_id"`
	IDType    string `json:"id_type,omitempty" db:"id_type"`
	IDNumber  string `json:"id_number,omitempty" db:"id_number"`
}

// RevenuePoint is one slot of the 7-day revenue series
type RevenuePoint struct {
	Day     string  `json:"day"`  // "Mon".."Sun"
	Date    string  `json:"date"` // "2006-01-02"
	Revenue float64 `json:"revenue"`
}

// OperatorStatistics is derived from an operator's bookings and never
// persisted; it is rebuilt in full on every aggregation.
type OperatorStatistics struct {
	TotalBookings        int            `json:"total_bookings"`
	PendingBookings      int            `json:"pending_bookings"`
	CompletedBookings    int            `json:"completed_bookings"`
	FailedBookings       int            `json:"failed_bookings"`
	CancelledBookings    int            `json:"cancelled_bookings"`
	RefundedBookings     int            `json:"refunded_bookings"`
	TotalRevenue         float64        `json:"total_revenue"`
	TotalPassengers      int            `json:"total_passengers"`
	PartialFetchFailures int            `json:"partial_fetch_failures"`
	WeeklyRevenue        []RevenuePoint `json:"weekly_revenue"` // oldest first, ends today
}

// BookingReport bundles an operator's joined booking records with the
// statistics reduced from them.
type BookingReport struct {
	Records []BookingRecord    `json:"bookings"`
	Stats   OperatorStatistics `json:"stats"`
}
