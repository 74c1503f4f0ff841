package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/database"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

var bookingCols = []string{
	"booking_id", "operator_id", "bus_number", "transaction_id", "payment_status",
	"payment_method", "total_amount", "passenger_count", "created_at",
	"cancelled_at", "refunded_at", "cancelled_by",
}

var passengerCols = []string{"booking_id", "name", "age", "gender", "seat_id", "id_type", "id_number"}

// newBookingService builds a service with a single worker so sqlmock
// expectations stay strictly ordered.
func newBookingService(t *testing.T) (*BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mockDB := &mockDatabase{db: db}
	service := NewBookingService(
		database.NewBookingRepository(mockDB),
		database.NewPassengerRepository(mockDB),
		testLogger(),
		1,
	)
	return service, mock, func() { db.Close() }
}

func TestReduceStats(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Mixed Statuses", func(t *testing.T) {
		records := []models.BookingRecord{
			{BookingID: "b1", PaymentStatus: models.PaymentCompleted, TotalAmount: 1200, PassengerCount: 2, CreatedAt: now},
			{BookingID: "b2", PaymentStatus: models.PaymentCompleted, TotalAmount: 800, PassengerCount: 1, CreatedAt: now.AddDate(0, 0, -1)},
			{BookingID: "b3", PaymentStatus: models.PaymentPending, TotalAmount: 500, PassengerCount: 1, CreatedAt: now},
			{BookingID: "b4", PaymentStatus: models.PaymentCancelled, TotalAmount: 300, PassengerCount: 1, CreatedAt: now.AddDate(0, 0, -2)},
		}

		stats := ReduceStats(records, 0, now)

		assert.Equal(t, 4, stats.TotalBookings)
		assert.Equal(t, 2, stats.CompletedBookings)
		assert.Equal(t, 1, stats.PendingBookings)
		assert.Equal(t, 1, stats.CancelledBookings)
		assert.Equal(t, 0, stats.FailedBookings)
		assert.Equal(t, 0, stats.RefundedBookings)

		// Revenue and passengers roll up every booking, not only completed ones
		assert.Equal(t, 2800.0, stats.TotalRevenue)
		assert.Equal(t, 5, stats.TotalPassengers)
	})

	t.Run("Unknown Status Skips Counters Only", func(t *testing.T) {
		records := []models.BookingRecord{
			{BookingID: "b1", PaymentStatus: "mystery", TotalAmount: 100, PassengerCount: 1, CreatedAt: now},
		}

		stats := ReduceStats(records, 0, now)

		assert.Equal(t, 1, stats.TotalBookings)
		assert.Equal(t, 100.0, stats.TotalRevenue)
		assert.Equal(t, 1, stats.TotalPassengers)
		sum := stats.PendingBookings + stats.CompletedBookings + stats.FailedBookings +
			stats.CancelledBookings + stats.RefundedBookings
		assert.Equal(t, 0, sum)
	})

	t.Run("Partial Failures Carried", func(t *testing.T) {
		stats := ReduceStats([]models.BookingRecord{}, 3, now)
		assert.Equal(t, 3, stats.PartialFetchFailures)
		assert.Equal(t, 0, stats.TotalBookings)
	})

	t.Run("Empty Records", func(t *testing.T) {
		stats := ReduceStats(nil, 0, now)
		assert.Equal(t, 0, stats.TotalBookings)
		assert.Equal(t, 0.0, stats.TotalRevenue)
		assert.Len(t, stats.WeeklyRevenue, 7)
	})
}

func TestWeeklyRevenue(t *testing.T) {
	// A Saturday; the series runs Sunday through Saturday
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	records := []models.BookingRecord{
		{BookingID: "b1", TotalAmount: 1000, CreatedAt: now},                                    // today
		{BookingID: "b2", TotalAmount: 500, CreatedAt: now.AddDate(0, 0, -1)},                   // yesterday
		{BookingID: "b3", TotalAmount: 250, CreatedAt: now.AddDate(0, 0, -1).Add(2 * time.Hour)}, // same calendar day
		{BookingID: "b4", TotalAmount: 9999, CreatedAt: now.AddDate(0, 0, -7)},                  // outside the window
	}

	stats := ReduceStats(records, 0, now)
	series := stats.WeeklyRevenue

	require.Len(t, series, 7)

	// Oldest slot first, today last
	assert.Equal(t, "2025-03-09", series[0].Date)
	assert.Equal(t, "Sun", series[0].Day)
	assert.Equal(t, "2025-03-15", series[6].Date)
	assert.Equal(t, "Sat", series[6].Day)

	assert.Equal(t, 1000.0, series[6].Revenue)
	assert.Equal(t, 750.0, series[5].Revenue)
	assert.Equal(t, 0.0, series[0].Revenue)
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Joins Passengers Per Booking", func(t *testing.T) {
		service, mock, cleanup := newBookingService(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM payments WHERE operator_id`).
			WithArgs("OP-001").
			WillReturnRows(sqlmock.NewRows(bookingCols).
				AddRow("b1", "OP-001", "NA-1234", "txn_1", "completed", "card", 1200.0, 2, now, nil, nil, nil).
				AddRow("b2", "OP-001", "NA-5678", "txn_2", "pending", "upi", 500.0, 1, now, nil, nil, nil))

		mock.ExpectQuery(`SELECT (.+) FROM passengerinfo WHERE booking_id`).
			WithArgs("b1").
			WillReturnRows(sqlmock.NewRows(passengerCols).
				AddRow("b1", "Amit Kumar", 34, "male", "L1", "aadhaar", "XXXX1234").
				AddRow("b1", "Priya Kumar", 30, "female", "L2", "aadhaar", "XXXX5678"))

		mock.ExpectQuery(`SELECT (.+) FROM passengerinfo WHERE booking_id`).
			WithArgs("b2").
			WillReturnRows(sqlmock.NewRows(passengerCols).
				AddRow("b2", "Ravi Singh", 28, "male", "U1", "", ""))

		report, err := service.Aggregate(ctx, "OP-001")
		require.NoError(t, err)
		require.Len(t, report.Records, 2)

		assert.Len(t, report.Records[0].Passengers, 2)
		assert.Equal(t, "Amit Kumar", report.Records[0].Passengers[0].Name)
		assert.Len(t, report.Records[1].Passengers, 1)

		assert.Equal(t, 2, report.Stats.TotalBookings)
		assert.Equal(t, 1700.0, report.Stats.TotalRevenue)
		assert.Equal(t, 3, report.Stats.TotalPassengers)
		assert.Equal(t, 0, report.Stats.PartialFetchFailures)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Passenger Fetch Failure Keeps Booking", func(t *testing.T) {
		service, mock, cleanup := newBookingService(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM payments WHERE operator_id`).
			WithArgs("OP-001").
			WillReturnRows(sqlmock.NewRows(bookingCols).
				AddRow("b1", "OP-001", "NA-1234", "txn_1", "completed", "card", 1200.0, 2, now, nil, nil, nil))

		mock.ExpectQuery(`SELECT (.+) FROM passengerinfo WHERE booking_id`).
			WithArgs("b1").
			WillReturnError(fmt.Errorf("connection reset"))

		report, err := service.Aggregate(ctx, "OP-001")
		require.NoError(t, err)
		require.Len(t, report.Records, 1)

		assert.NotNil(t, report.Records[0].Passengers)
		assert.Len(t, report.Records[0].Passengers, 0)
		assert.Equal(t, 1, report.Stats.PartialFetchFailures)
		// Revenue still counts the booking with the failed sub-fetch
		assert.Equal(t, 1200.0, report.Stats.TotalRevenue)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Booking Fetch Failure Fails Aggregation", func(t *testing.T) {
		service, mock, cleanup := newBookingService(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM payments WHERE operator_id`).
			WithArgs("OP-001").
			WillReturnError(fmt.Errorf("database error"))

		report, err := service.Aggregate(ctx, "OP-001")
		assert.Error(t, err)
		assert.Nil(t, report)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Bookings", func(t *testing.T) {
		service, mock, cleanup := newBookingService(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM payments WHERE operator_id`).
			WithArgs("OP-001").
			WillReturnRows(sqlmock.NewRows(bookingCols))

		report, err := service.Aggregate(ctx, "OP-001")
		require.NoError(t, err)
		assert.Len(t, report.Records, 0)
		assert.Equal(t, 0, report.Stats.TotalBookings)
		assert.Len(t, report.Stats.WeeklyRevenue, 7)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFilterBookings(t *testing.T) {
	records := []models.BookingRecord{
		{BookingID: "BK-1001", BusNumber: "NA-1234", TransactionID: "txn_alpha",
			Passengers: []models.PassengerRecord{{Name: "Amit Kumar"}}},
		{BookingID: "BK-2002", BusNumber: "WP-9999", TransactionID: "txn_beta",
			Passengers: []models.PassengerRecord{{Name: "Priya Sharma"}}},
	}

	t.Run("Empty Query Returns All", func(t *testing.T) {
		assert.Len(t, FilterBookings(records, ""), 2)
		assert.Len(t, FilterBookings(records, "   "), 2)
	})

	t.Run("Matches Booking ID", func(t *testing.T) {
		filtered := FilterBookings(records, "bk-1001")
		require.Len(t, filtered, 1)
		assert.Equal(t, "BK-1001", filtered[0].BookingID)
	})

	t.Run("Matches Bus Number", func(t *testing.T) {
		filtered := FilterBookings(records, "wp-")
		require.Len(t, filtered, 1)
		assert.Equal(t, "BK-2002", filtered[0].BookingID)
	})

	t.Run("Matches Transaction ID", func(t *testing.T) {
		filtered := FilterBookings(records, "ALPHA")
		require.Len(t, filtered, 1)
		assert.Equal(t, "BK-1001", filtered[0].BookingID)
	})

	t.Run("Matches Passenger Name", func(t *testing.T) {
		filtered := FilterBookings(records, "priya")
		require.Len(t, filtered, 1)
		assert.Equal(t, "BK-2002", filtered[0].BookingID)
	})

	t.Run("No Match", func(t *testing.T) {
		assert.Len(t, FilterBookings(records, "nothing-here"), 0)
	})
}

func TestSortByCreatedAtDesc(t *testing.T) {
	base := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	records := []models.BookingRecord{
		{BookingID: "old", CreatedAt: base.AddDate(0, 0, -2)},
		{BookingID: "new", CreatedAt: base},
		{BookingID: "mid", CreatedAt: base.AddDate(0, 0, -1)},
	}

	SortByCreatedAtDesc(records)

	assert.Equal(t, "new", records[0].BookingID)
	assert.Equal(t, "mid", records[1].BookingID)
	assert.Equal(t, "old", records[2].BookingID)
}
