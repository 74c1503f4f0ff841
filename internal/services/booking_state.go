package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

// cancelActor is recorded on every operator-driven cancellation
const cancelActor = "operator"

// legalTransitions is the booking lifecycle: pending settles to
// completed or failed; only completed bookings can be cancelled or
// refunded. Everything else is illegal.
var legalTransitions = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentPending:   {models.PaymentCompleted, models.PaymentFailed},
	models.PaymentCompleted: {models.PaymentCancelled, models.PaymentRefunded},
}

// CanTransition reports whether a booking may move from one payment
// status to another.
func CanTransition(from, to models.PaymentStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancel drives the completed → cancelled transition, the only
// transition this surface initiates. It requires explicit operator
// confirmation, stamps cancelled_at and the acting party, and then
// re-aggregates the operator's statistics in full. The write and the
// re-aggregation are strictly sequenced, never raced.
func (s *BookingService) Cancel(ctx context.Context, bookingID string, confirmed bool) (*models.BookingReport, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	if !CanTransition(booking.PaymentStatus, models.PaymentCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.PaymentStatus, models.PaymentCancelled)
	}

	if err := s.bookingRepo.MarkCancelled(bookingID, cancelActor, time.Now()); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  bookingID,
		"operator_id": booking.OperatorID,
	}).Info("Booking cancelled")

	return s.Aggregate(ctx, booking.OperatorID)
}
