package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/database"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
	"github.com/Pravinkumar0908/trip-bus-sub002/pkg/timefmt"
)

// FleetService orchestrates the fleet form flows: bus create/update
// with its derived schedule and seat inventory, the paired seat config
// lifecycle, and owner-scoped driver management.
type FleetService struct {
	busRepo    *database.BusRepository
	seatRepo   *database.SeatConfigRepository
	driverRepo *database.DriverRepository
	seats      *SeatService
	logger     *logrus.Logger
}

// NewFleetService creates a new FleetService
func NewFleetService(
	busRepo *database.BusRepository,
	seatRepo *database.SeatConfigRepository,
	driverRepo *database.DriverRepository,
	seats *SeatService,
	logger *logrus.Logger,
) *FleetService {
	return &FleetService{
		busRepo:    busRepo,
		seatRepo:   seatRepo,
		driverRepo: driverRepo,
		seats:      seats,
		logger:     logger,
	}
}

// FetchBusesAndSeats returns the operator's buses joined with their
// seat configurations. A missing or unreadable seat config leaves that
// bus with a nil config rather than failing the listing.
func (s *FleetService) FetchBusesAndSeats(ctx context.Context, operatorID string) ([]models.BusWithSeats, error) {
	buses, err := s.busRepo.GetByOperatorID(operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch buses: %w", err)
	}

	result := make([]models.BusWithSeats, 0, len(buses))
	for _, bus := range buses {
		seatCfg, err := s.seatRepo.GetByBusID(bus.BusID)
		if err != nil {
			s.logger.WithError(err).WithField("bus_id", bus.BusID).
				Warn("Seat config fetch failed, returning bus without it")
			seatCfg = nil
		}
		result = append(result, models.BusWithSeats{BusRecord: bus, SeatConfig: seatCfg})
	}

	return result, nil
}

// SubmitBus creates or updates a bus from the fleet form and
// regenerates its paired seat configuration. It returns the bus ID.
//
// Times arrive in 24-hour form and are stored as 12-hour strings; the
// duration, seat totals, grids and tiers are all derived here so the
// stored record can never disagree with the form parameters.
func (s *FleetService) SubmitBus(ctx context.Context, operatorID string, req *models.SubmitBusRequest) (string, error) {
	dep12 := timefmt.To12Hour(req.DepartureTime)
	arr12 := timefmt.To12Hour(req.ArrivalTime)

	tiers := s.seats.ResolveTiers(TierInput{
		Price:          req.Price,
		LowerDeckPrice: req.LowerDeckPrice,
		UpperDeckPrice: req.UpperDeckPrice,
		LadiesPrice:    req.LadiesPrice,
		ReservedPrice:  req.ReservedPrice,
	})

	lowerGrid, upperGrid := s.seats.GenerateLayout(req.LowerDeckRows, req.UpperDeckRows)
	totalSeats := s.seats.TotalSeats(req.LowerDeckRows, req.UpperDeckRows)

	bus := &models.BusRecord{
		BusNumber:      req.BusNumber,
		OperatorID:     operatorID,
		RouteCities:    models.StringList(req.RouteCities),
		StopCities:     models.StringList(req.StopCities),
		DepartureTime:  dep12,
		ArrivalTime:    arr12,
		Duration:       timefmt.Duration(dep12, arr12),
		TotalSeats:     totalSeats,
		BoardingPoints: models.PointList(req.BoardingPoints),
		DroppingPoints: models.PointList(req.DroppingPoints),
		Policies:       req.Policies,
	}

	if req.BusID != nil && *req.BusID != "" {
		existing, err := s.busRepo.GetByID(*req.BusID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", ErrBusNotFound
			}
			return "", fmt.Errorf("failed to load bus: %w", err)
		}
		if existing.OperatorID != operatorID {
			return "", ErrBusNotFound
		}

		bus.BusID = existing.BusID
		if err := s.busRepo.Update(bus); err != nil {
			return "", err
		}
	} else {
		bus.BusID = uuid.NewString()
		if err := s.busRepo.Create(bus); err != nil {
			return "", err
		}
	}

	seatCfg := &models.SeatConfig{
		BusID:          bus.BusID,
		LowerDeckRows:  req.LowerDeckRows,
		UpperDeckRows:  req.UpperDeckRows,
		LowerSeatGrid:  lowerGrid,
		UpperSeatGrid:  upperGrid,
		LowerPriceGrid: s.seats.GeneratePrices(req.LowerDeckRows, tiers.LowerDeckPrice),
		UpperPriceGrid: s.seats.GeneratePrices(req.UpperDeckRows, tiers.UpperDeckPrice),
		PricingTiers:   tiers,
		AvailableSeats: s.seats.AvailableSeats(totalSeats),
	}

	if err := s.seatRepo.Upsert(seatCfg); err != nil {
		return "", err
	}

	s.logger.WithFields(logrus.Fields{
		"bus_id":      bus.BusID,
		"operator_id": operatorID,
		"total_seats": totalSeats,
	}).Info("Bus submitted")

	return bus.BusID, nil
}

// DeleteBus removes a bus and its seat configuration, scoped to the
// owning operator. A seat-config record that is already gone is
// tolerated; the bus itself missing is not.
func (s *FleetService) DeleteBus(ctx context.Context, busID, operatorID string) error {
	if err := s.busRepo.Delete(busID, operatorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBusNotFound
		}
		return fmt.Errorf("failed to delete bus: %w", err)
	}

	if err := s.seatRepo.Delete(busID); err != nil {
		s.logger.WithError(err).WithField("bus_id", busID).
			Warn("Failed to delete seat config for removed bus")
	}

	return nil
}

// ============================================================================
// DRIVERS
// ============================================================================

// ListDrivers returns the operator's drivers
func (s *FleetService) ListDrivers(ctx context.Context, operatorID string) ([]models.DriverRecord, error) {
	drivers, err := s.driverRepo.GetByOperatorID(operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drivers: %w", err)
	}
	return drivers, nil
}

// AddDriver creates a driver for the operator
func (s *FleetService) AddDriver(ctx context.Context, operatorID string, req *models.CreateDriverRequest) (*models.DriverRecord, error) {
	driver := &models.DriverRecord{
		DriverID:      uuid.NewString(),
		OperatorID:    operatorID,
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		AssignedBus:   req.AssignedBus,
		Status:        models.DriverStatusActive,
	}

	if err := s.driverRepo.Create(driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// UpdateDriver applies a partial update to an operator's driver
func (s *FleetService) UpdateDriver(ctx context.Context, driverID, operatorID string, req *models.UpdateDriverRequest) error {
	err := s.driverRepo.Update(driverID, operatorID, req)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDriverNotFound
	}
	return err
}

// RemoveDriver deletes an operator's driver
func (s *FleetService) RemoveDriver(ctx context.Context, driverID, operatorID string) error {
	err := s.driverRepo.Delete(driverID, operatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDriverNotFound
	}
	return err
}
