package database

import (
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// PassengerRepository handles database operations for the passengerinfo
// collection. Passengers have no independent lifecycle; they are owned
// by their booking and only ever read by booking_id here.
type PassengerRepository struct {
	db DB
}

// NewPassengerRepository creates a new PassengerRepository
func NewPassengerRepository(db DB) *PassengerRepository {
	return &PassengerRepository{db: db}
}

// GetByBookingID retrieves all passengers for a booking
func (r *PassengerRepository) GetByBookingID(bookingID string) ([]models.PassengerRecord, error) {
	query := `
		SELECT booking_id, name, age, gender, seat_id, id_type, id_number
		FROM passengerinfo
		WHERE booking_id = $1
		ORDER BY seat_id
	`

	rows, err := r.db.Query(query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := []models.PassengerRecord{}
	for rows.Next() {
		var p models.PassengerRecord
		err := rows.Scan(&p.BookingID, &p.Name, &p.Age, &p.Gender, &p.SeatID, &p.IDType, &p.IDNumber)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}

	return passengers, rows.Err()
}
