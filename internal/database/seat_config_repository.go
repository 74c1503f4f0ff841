package database

import (
	"database/sql"
	"fmt"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// SeatConfigRepository handles database operations for the bus_seats
// collection. Each bus has exactly one seat configuration sharing its
// bus_id, regenerated whenever row counts or prices change.
type SeatConfigRepository struct {
	db DB
}

// NewSeatConfigRepository creates a new SeatConfigRepository
func NewSeatConfigRepository(db DB) *SeatConfigRepository {
	return &SeatConfigRepository{db: db}
}

// Upsert creates or replaces the seat configuration for a bus
func (r *SeatConfigRepository) Upsert(cfg *models.SeatConfig) error {
	query := `
		INSERT INTO bus_seats (
			bus_id, lower_deck_rows, upper_deck_rows,
			lower_seat_grid, upper_seat_grid,
			lower_price_grid, upper_price_grid,
			pricing_tiers, available_seats, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
		)
		ON CONFLICT (bus_id) DO UPDATE SET
			lower_deck_rows = EXCLUDED.lower_deck_rows,
			upper_deck_rows = EXCLUDED.upper_deck_rows,
			lower_seat_grid = EXCLUDED.lower_seat_grid,
			upper_seat_grid = EXCLUDED.upper_seat_grid,
			lower_price_grid = EXCLUDED.lower_price_grid,
			upper_price_grid = EXCLUDED.upper_price_grid,
			pricing_tiers = EXCLUDED.pricing_tiers,
			available_seats = EXCLUDED.available_seats,
			updated_at = NOW()
	`

	_, err := r.db.Exec(
		query,
		cfg.BusID, cfg.LowerDeckRows, cfg.UpperDeckRows,
		cfg.LowerSeatGrid, cfg.UpperSeatGrid,
		cfg.LowerPriceGrid, cfg.UpperPriceGrid,
		cfg.PricingTiers, cfg.AvailableSeats,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert seat config: %w", err)
	}

	return nil
}

// GetByBusID retrieves the seat configuration for a bus.
// Returns (nil, nil) when no configuration exists.
func (r *SeatConfigRepository) GetByBusID(busID string) (*models.SeatConfig, error) {
	query := `
		SELECT
			bus_id, lower_deck_rows, upper_deck_rows,
			lower_seat_grid, upper_seat_grid,
			lower_price_grid, upper_price_grid,
			pricing_tiers, available_seats, updated_at
		FROM bus_seats
		WHERE bus_id = $1
	`

	cfg := &models.SeatConfig{}
	err := r.db.QueryRow(query, busID).Scan(
		&cfg.BusID, &cfg.LowerDeckRows, &cfg.UpperDeckRows,
		&cfg.LowerSeatGrid, &cfg.UpperSeatGrid,
		&cfg.LowerPriceGrid, &cfg.UpperPriceGrid,
		&cfg.PricingTiers, &cfg.AvailableSeats, &cfg.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return cfg, nil
}

// Delete removes the seat configuration for a bus. A missing record is
// not an error; the paired bus may predate seat configuration.
func (r *SeatConfigRepository) Delete(busID string) error {
	_, err := r.db.Exec(`DELETE FROM bus_seats WHERE bus_id = $1`, busID)
	return err
}
