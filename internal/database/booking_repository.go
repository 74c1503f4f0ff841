package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// BookingRepository handles database operations for the payments collection
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	booking_id, operator_id, bus_number, transaction_id, payment_status,
	payment_method, total_amount, passenger_count, created_at,
	cancelled_at, refunded_at, cancelled_by
`

func scanBooking(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.BookingRecord, error) {
	b := &models.BookingRecord{}
	var cancelledAt, refundedAt sql.NullTime
	var cancelledBy sql.NullString

	err := scanner.Scan(
		&b.BookingID, &b.OperatorID, &b.BusNumber, &b.TransactionID, &b.PaymentStatus,
		&b.PaymentMethod, &b.TotalAmount, &b.PassengerCount, &b.CreatedAt,
		&cancelledAt, &refundedAt, &cancelledBy,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	if refundedAt.Valid {
		b.RefundedAt = &refundedAt.Time
	}
	if cancelledBy.Valid {
		b.CancelledBy = &cancelledBy.String
	}

	return b, nil
}

// GetByOperatorID retrieves all payment records for an operator
func (r *BookingRepository) GetByOperatorID(operatorID string) ([]models.BookingRecord, error) {
	query := `SELECT` + bookingColumns + `FROM payments WHERE operator_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.BookingRecord{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

// GetByID retrieves a single payment record by booking ID.
// A missing record surfaces as sql.ErrNoRows.
func (r *BookingRepository) GetByID(bookingID string) (*models.BookingRecord, error) {
	query := `SELECT` + bookingColumns + `FROM payments WHERE booking_id = $1`
	return scanBooking(r.db.QueryRow(query, bookingID))
}

// MarkCancelled writes the cancellation transition: status, timestamp
// and the acting party, in one statement.
func (r *BookingRepository) MarkCancelled(bookingID string, cancelledBy string, cancelledAt time.Time) error {
	query := `
		UPDATE payments
		SET payment_status = $2, cancelled_at = $3, cancelled_by = $4
		WHERE booking_id = $1
	`

	result, err := r.db.Exec(query, bookingID, models.PaymentCancelled, cancelledAt, cancelledBy)
	if err != nil {
		return fmt.Errorf("failed to mark booking cancelled: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
