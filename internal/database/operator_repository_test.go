package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

var operatorColumns = []string{
	"record_id", "operator_id", "display_name", "business_name",
	"contact_email", "contact_phone", "status", "created_at", "updated_at",
}

func TestGetByRecordID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperatorRepository(&mockDatabase{db: db})

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE record_id`).
			WithArgs("rec_1").
			WillReturnRows(sqlmock.NewRows(operatorColumns).AddRow(
				"rec_1", "OP-001", "Lanka Travels", "Lanka Travels Pvt Ltd",
				"op@example.com", "+94712345678", "active", now, now,
			))

		op, err := repo.GetByRecordID("rec_1")
		require.NoError(t, err)
		assert.Equal(t, "rec_1", op.RecordID)
		assert.Equal(t, "OP-001", op.OperatorID)
		assert.Equal(t, models.OperatorStatusActive, op.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found Propagates ErrNoRows", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE record_id`).
			WithArgs("rec_x").
			WillReturnError(sql.ErrNoRows)

		op, err := repo.GetByRecordID("rec_x")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, op)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindByOperatorID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperatorRepository(&mockDatabase{db: db})

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE operator_id`).
			WithArgs("OP-001").
			WillReturnRows(sqlmock.NewRows(operatorColumns).AddRow(
				"rec_1", "OP-001", "Lanka Travels", "Lanka Travels Pvt Ltd",
				"op@example.com", "+94712345678", "active", now, now,
			))

		op, err := repo.FindByOperatorID("OP-001")
		require.NoError(t, err)
		assert.Equal(t, "rec_1", op.RecordID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss Returns Nil Without Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE operator_id`).
			WithArgs("OP-x").
			WillReturnError(sql.ErrNoRows)

		op, err := repo.FindByOperatorID("OP-x")
		assert.NoError(t, err)
		assert.Nil(t, op)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE operator_id`).
			WithArgs("OP-001").
			WillReturnError(fmt.Errorf("database error"))

		op, err := repo.FindByOperatorID("OP-001")
		assert.Error(t, err)
		assert.Nil(t, op)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperatorRepository(&mockDatabase{db: db})

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE contact_email`).
			WithArgs("op@example.com").
			WillReturnRows(sqlmock.NewRows(operatorColumns).AddRow(
				"rec_1", "OP-001", "Lanka Travels", "Lanka Travels Pvt Ltd",
				"op@example.com", "+94712345678", "active", now, now,
			))

		op, err := repo.FindByEmail("op@example.com")
		require.NoError(t, err)
		assert.Equal(t, "op@example.com", op.ContactEmail)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss Returns Nil Without Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE contact_email`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		op, err := repo.FindByEmail("missing@example.com")
		assert.NoError(t, err)
		assert.Nil(t, op)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateOperator(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperatorRepository(&mockDatabase{db: db})

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		op := &models.OperatorIdentity{
			RecordID:     "OP-002",
			OperatorID:   "OP-002",
			DisplayName:  "New Operator",
			ContactEmail: "new@example.com",
			Status:       models.OperatorStatusActive,
		}

		mock.ExpectQuery(`INSERT INTO operators`).
			WithArgs("OP-002", "OP-002", "New Operator", "", "new@example.com", "", "active").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.Create(op)
		require.NoError(t, err)
		assert.Equal(t, now, op.CreatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		op := &models.OperatorIdentity{RecordID: "OP-002", OperatorID: "OP-002", Status: models.OperatorStatusActive}

		mock.ExpectQuery(`INSERT INTO operators`).
			WithArgs("OP-002", "OP-002", "", "", "", "", "active").
			WillReturnError(fmt.Errorf("duplicate key value violates unique constraint"))

		err := repo.Create(op)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create operator")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMergeOperator(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperatorRepository(&mockDatabase{db: db})

	t.Run("Partial Update", func(t *testing.T) {
		name := "Renamed Travels"
		phone := "+94770000000"

		mock.ExpectExec(`UPDATE operators SET`).
			WithArgs(name, phone, "rec_1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Merge("rec_1", &models.UpdateOperatorRequest{
			DisplayName:  &name,
			ContactPhone: &phone,
		})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Fields", func(t *testing.T) {
		err := repo.Merge("rec_1", &models.UpdateOperatorRequest{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no fields to update")
	})

	t.Run("Record Not Found", func(t *testing.T) {
		name := "Renamed Travels"

		mock.ExpectExec(`UPDATE operators SET`).
			WithArgs(name, "rec_x").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Merge("rec_x", &models.UpdateOperatorRequest{DisplayName: &name})
		assert.ErrorIs(t, err, sql.ErrNoRows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Mock database implementation for testing
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
