package database

import (
	"database/sql"
	"fmt"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// BusRepository handles database operations for the buses collection
type BusRepository struct {
	db DB
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db DB) *BusRepository {
	return &BusRepository{db: db}
}

const busColumns = `
	bus_id, bus_number, operator_id, route_cities, stop_cities,
	departure_time, arrival_time, duration, total_seats,
	boarding_points, dropping_points, policies, created_at, updated_at
`

// Create inserts a new bus
func (r *BusRepository) Create(bus *models.BusRecord) error {
	query := `
		INSERT INTO buses (
			bus_id, bus_number, operator_id, route_cities, stop_cities,
			departure_time, arrival_time, duration, total_seats,
			boarding_points, dropping_points, policies
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		bus.BusID, bus.BusNumber, bus.OperatorID, bus.RouteCities, bus.StopCities,
		bus.DepartureTime, bus.ArrivalTime, bus.Duration, bus.TotalSeats,
		bus.BoardingPoints, bus.DroppingPoints, bus.Policies,
	).Scan(&bus.CreatedAt, &bus.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bus: %w", err)
	}

	return nil
}

// GetByID retrieves a bus by ID
func (r *BusRepository) GetByID(busID string) (*models.BusRecord, error) {
	query := `SELECT` + busColumns + `FROM buses WHERE bus_id = $1`

	bus := &models.BusRecord{}
	err := r.db.QueryRow(query, busID).Scan(
		&bus.BusID, &bus.BusNumber, &bus.OperatorID, &bus.RouteCities, &bus.StopCities,
		&bus.DepartureTime, &bus.ArrivalTime, &bus.Duration, &bus.TotalSeats,
		&bus.BoardingPoints, &bus.DroppingPoints, &bus.Policies, &bus.CreatedAt, &bus.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return bus, nil
}

// GetByOperatorID retrieves all buses for an operator
func (r *BusRepository) GetByOperatorID(operatorID string) ([]models.BusRecord, error) {
	query := `SELECT` + busColumns + `FROM buses WHERE operator_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buses := []models.BusRecord{}
	for rows.Next() {
		var bus models.BusRecord
		err := rows.Scan(
			&bus.BusID, &bus.BusNumber, &bus.OperatorID, &bus.RouteCities, &bus.StopCities,
			&bus.DepartureTime, &bus.ArrivalTime, &bus.Duration, &bus.TotalSeats,
			&bus.BoardingPoints, &bus.DroppingPoints, &bus.Policies, &bus.CreatedAt, &bus.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		buses = append(buses, bus)
	}

	return buses, rows.Err()
}

// Update replaces the mutable fields of a bus. The fleet service always
// recomputes the full record, so a full-field update keeps derived
// columns (duration, total_seats) consistent with the form input.
func (r *BusRepository) Update(bus *models.BusRecord) error {
	query := `
		UPDATE buses SET
			bus_number = $2, route_cities = $3, stop_cities = $4,
			departure_time = $5, arrival_time = $6, duration = $7,
			total_seats = $8, boarding_points = $9, dropping_points = $10,
			policies = $11, updated_at = NOW()
		WHERE bus_id = $1
	`

	result, err := r.db.Exec(
		query,
		bus.BusID, bus.BusNumber, bus.RouteCities, bus.StopCities,
		bus.DepartureTime, bus.ArrivalTime, bus.Duration,
		bus.TotalSeats, bus.BoardingPoints, bus.DroppingPoints, bus.Policies,
	)
	if err != nil {
		return fmt.Errorf("failed to update bus: %w", err)
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

// Delete deletes a bus, scoped to its owning operator
func (r *BusRepository) Delete(busID string, operatorID string) error {
	query := `DELETE FROM buses WHERE bus_id = $1 AND operator_id = $2`
	result, err := r.db.Exec(query, busID, operatorID)
	if err != nil {
		return err
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
