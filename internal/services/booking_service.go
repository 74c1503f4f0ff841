package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/database"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// BookingService aggregates an operator's payment and passenger records
// into consistent per-operator statistics and drives booking status
// transitions. Statistics are always rebuilt in full from the store,
// never incrementally patched, so cached state can never drift from the
// source of truth.
type BookingService struct {
	bookingRepo   *database.BookingRepository
	passengerRepo *database.PassengerRepository
	logger        *logrus.Logger
	workers       int
}

// NewBookingService creates a new BookingService. workers bounds the
// passenger sub-fetch concurrency.
func NewBookingService(bookingRepo *database.BookingRepository, passengerRepo *database.PassengerRepository, logger *logrus.Logger, workers int) *BookingService {
	if workers < 1 {
		workers = 1
	}
	return &BookingService{
		bookingRepo:   bookingRepo,
		passengerRepo: passengerRepo,
		logger:        logger,
		workers:       workers,
	}
}

// Aggregate fetches all payment records for an operator, joins each
// with its passengers, and reduces the result into statistics and a
// 7-day revenue series.
//
// Passenger sub-fetches are scattered across a bounded worker pool;
// each booking is an independent failure domain. A failed sub-fetch
// attaches an empty passenger list and bumps the partial-failure
// counter instead of discarding the booking or failing the aggregation.
func (s *BookingService) Aggregate(ctx context.Context, operatorID string) (*models.BookingReport, error) {
	records, err := s.bookingRepo.GetByOperatorID(operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	partialFailures := s.attachPassengers(records)

	stats := ReduceStats(records, partialFailures, time.Now())

	return &models.BookingReport{Records: records, Stats: stats}, nil
}

func (s *BookingService) attachPassengers(records []models.BookingRecord) int {
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)

	var mu sync.Mutex
	partialFailures := 0

	for i := range records {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			passengers, err := s.passengerRepo.GetByBookingID(records[i].BookingID)
			if err != nil {
				s.logger.WithError(err).WithField("booking_id", records[i].BookingID).
					Warn("Passenger fetch failed, keeping booking with empty passenger list")
				records[i].Passengers = []models.PassengerRecord{}
				mu.Lock()
				partialFailures++
				mu.Unlock()
				return
			}
			records[i].Passengers = passengers
		}(i)
	}

	wg.Wait()
	return partialFailures
}

// ReduceStats reduces booking records into operator statistics.
// Revenue and passenger totals roll up every fetched booking; the five
// status counters skip unknown or missing status values entirely.
// Revenue always comes from total_amount, never recomputed from
// passengers.
func ReduceStats(records []models.BookingRecord, partialFailures int, now time.Time) models.OperatorStatistics {
	stats := models.OperatorStatistics{
		TotalBookings:        len(records),
		PartialFetchFailures: partialFailures,
	}

	for _, b := range records {
		stats.TotalRevenue += b.TotalAmount
		stats.TotalPassengers += b.PassengerCount

		switch b.PaymentStatus {
		case models.PaymentPending:
			stats.PendingBookings++
		case models.PaymentCompleted:
			stats.CompletedBookings++
		case models.PaymentFailed:
			stats.FailedBookings++
		case models.PaymentCancelled:
			stats.CancelledBookings++
		case models.PaymentRefunded:
			stats.RefundedBookings++
		}
	}

	stats.WeeklyRevenue = weeklyRevenue(records, now)

	return stats
}

// weeklyRevenue buckets bookings into the 7 days ending today
// (inclusive) by created_at calendar date, oldest slot first.
func weeklyRevenue(records []models.BookingRecord, now time.Time) []models.RevenuePoint {
	series := make([]models.RevenuePoint, 0, 7)

	for offset := 6; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		point := models.RevenuePoint{
			Day:  day.Weekday().String()[:3],
			Date: day.Format("2006-01-02"),
		}

		for _, b := range records {
			if sameDate(b.CreatedAt, day) {
				point.Revenue += b.TotalAmount
			}
		}

		series = append(series, point)
	}

	return series
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FilterBookings filters records for presentation. The query matches
// case-insensitively against booking ID, bus number, transaction ID and
// passenger names. An empty query returns the records unchanged.
func FilterBookings(records []models.BookingRecord, query string) []models.BookingRecord {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return records
	}

	filtered := []models.BookingRecord{}
	for _, b := range records {
		if bookingMatches(&b, query) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func bookingMatches(b *models.BookingRecord, query string) bool {
	if strings.Contains(strings.ToLower(b.BookingID), query) ||
		strings.Contains(strings.ToLower(b.BusNumber), query) ||
		strings.Contains(strings.ToLower(b.TransactionID), query) {
		return true
	}

	for _, p := range b.Passengers {
		if strings.Contains(strings.ToLower(p.Name), query) {
			return true
		}
	}

	return false
}

// SortByCreatedAtDesc sorts records newest first, the default listing order
func SortByCreatedAtDesc(records []models.BookingRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
