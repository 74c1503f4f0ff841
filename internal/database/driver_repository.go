package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// DriverRepository handles database operations for the drivers collection
type DriverRepository struct {
	db DB
}

// NewDriverRepository creates a new DriverRepository
func NewDriverRepository(db DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create inserts a new driver
func (r *DriverRepository) Create(d *models.DriverRecord) error {
	query := `
		INSERT INTO drivers (
			driver_id, operator_id, name, phone, license_number, assigned_bus, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		d.DriverID, d.OperatorID, d.Name, d.Phone, d.LicenseNumber, d.AssignedBus, d.Status,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}

	return nil
}

// GetByOperatorID retrieves all drivers for an operator
func (r *DriverRepository) GetByOperatorID(operatorID string) ([]models.DriverRecord, error) {
	query := `
		SELECT driver_id, operator_id, name, phone, license_number,
			assigned_bus, status, created_at, updated_at
		FROM drivers
		WHERE operator_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := []models.DriverRecord{}
	for rows.Next() {
		var d models.DriverRecord
		err := rows.Scan(
			&d.DriverID, &d.OperatorID, &d.Name, &d.Phone, &d.LicenseNumber,
			&d.AssignedBus, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, rows.Err()
}

// Update applies a partial update to a driver, scoped to its operator
func (r *DriverRepository) Update(driverID, operatorID string, req *models.UpdateDriverRequest) error {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *req.Name)
		argCount++
	}

	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argCount))
		args = append(args, *req.Phone)
		argCount++
	}

	if req.LicenseNumber != nil {
		updates = append(updates, fmt.Sprintf("license_number = $%d", argCount))
		args = append(args, *req.LicenseNumber)
		argCount++
	}

	if req.AssignedBus != nil {
		updates = append(updates, fmt.Sprintf("assigned_bus = $%d", argCount))
		args = append(args, *req.AssignedBus)
		argCount++
	}

	if req.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *req.Status)
		argCount++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, driverID, operatorID)

	query := fmt.Sprintf(`
		UPDATE drivers
		SET %s
		WHERE driver_id = $%d AND operator_id = $%d
	`, strings.Join(updates, ", "), argCount, argCount+1)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
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

// Delete deletes a driver, scoped to its operator
func (r *DriverRepository) Delete(driverID, operatorID string) error {
	result, err := r.db.Exec(`DELETE FROM drivers WHERE driver_id = $1 AND operator_id = $2`, driverID, operatorID)
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
