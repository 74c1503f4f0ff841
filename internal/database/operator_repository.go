package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// OperatorRepository handles database operations for the operators collection
type OperatorRepository struct {
	db DB
}

// NewOperatorRepository creates a new OperatorRepository
func NewOperatorRepository(db DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

// GetByRecordID retrieves an operator by its store-assigned record key.
// A missing record surfaces as sql.ErrNoRows.
func (r *OperatorRepository) GetByRecordID(recordID string) (*models.OperatorIdentity, error) {
	query := `
		SELECT
			record_id, operator_id, display_name, business_name,
			contact_email, contact_phone, status, created_at, updated_at
		FROM operators
		WHERE record_id = $1
	`

	op := &models.OperatorIdentity{}
	err := r.db.QueryRow(query, recordID).Scan(
		&op.RecordID, &op.OperatorID, &op.DisplayName, &op.BusinessName,
		&op.ContactEmail, &op.ContactPhone, &op.Status, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return op, nil
}

// FindByOperatorID queries operators by the business-facing identifier.
// Returns (nil, nil) when no record matches.
func (r *OperatorRepository) FindByOperatorID(operatorID string) (*models.OperatorIdentity, error) {
	return r.findByField("operator_id", operatorID)
}

// FindByEmail queries operators by contact email.
// Returns (nil, nil) when no record matches.
func (r *OperatorRepository) FindByEmail(email string) (*models.OperatorIdentity, error) {
	return r.findByField("contact_email", email)
}

func (r *OperatorRepository) findByField(field, value string) (*models.OperatorIdentity, error) {
	query := fmt.Sprintf(`
		SELECT
			record_id, operator_id, display_name, business_name,
			contact_email, contact_phone, status, created_at, updated_at
		FROM operators
		WHERE %s = $1
	`, field)

	op := &models.OperatorIdentity{}
	err := r.db.QueryRow(query, value).Scan(
		&op.RecordID, &op.OperatorID, &op.DisplayName, &op.BusinessName,
		&op.ContactEmail, &op.ContactPhone, &op.Status, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return op, nil
}

// Create inserts a new operator record
func (r *OperatorRepository) Create(op *models.OperatorIdentity) error {
	query := `
		INSERT INTO operators (
			record_id, operator_id, display_name, business_name,
			contact_email, contact_phone, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		op.RecordID, op.OperatorID, op.DisplayName, op.BusinessName,
		op.ContactEmail, op.ContactPhone, op.Status,
	).Scan(&op.CreatedAt, &op.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}

	return nil
}

// Merge applies a partial update to an existing operator record
func (r *OperatorRepository) Merge(recordID string, req *models.UpdateOperatorRequest) error {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.DisplayName != nil {
		updates = append(updates, fmt.Sprintf("display_name = $%d", argCount))
		args = append(args, *req.DisplayName)
		argCount++
	}

	if req.BusinessName != nil {
		updates = append(updates, fmt.Sprintf("business_name = $%d", argCount))
		args = append(args, *req.BusinessName)
		argCount++
	}

	if req.ContactEmail != nil {
		updates = append(updates, fmt.Sprintf("contact_email = $%d", argCount))
		args = append(args, *req.ContactEmail)
		argCount++
	}

	if req.ContactPhone != nil {
		updates = append(updates, fmt.Sprintf("contact_phone = $%d", argCount))
		args = append(args, *req.ContactPhone)
		argCount++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, recordID)

	query := fmt.Sprintf(`
		UPDATE operators
		SET %s
		WHERE record_id = $%d
	`, strings.Join(updates, ", "), argCount)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update operator: %w", err)
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
