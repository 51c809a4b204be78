package payments

import (
	"context"
	"encoding/json"

	"cinebook/internal/bookings"
	"cinebook/internal/shared/apperrors"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

// Outcome reports what the reconciler did with a completed checkout
type Outcome string

const (
	OutcomeCreated          Outcome = "created"
	OutcomeAlreadyProcessed Outcome = "already_processed"

	// OutcomeUnfulfillable means the customer paid but the seats were sold
	// to someone else after the checkout hold lapsed. Retrying cannot
	// succeed, so the event is acknowledged and the session flagged for a
	// refund instead of burning the provider's redelivery budget.
	OutcomeUnfulfillable Outcome = "unfulfillable"
)

// BookingConfirmer is the slice of the booking service the reconciler needs
type BookingConfirmer interface {
	FindPaidBooking(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*bookings.Booking, error)
	ConfirmPaidBooking(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*bookings.Booking, error)
}

// Service reconciles completed checkout sessions into confirmed bookings
type Service interface {
	ReconcileCompletedCheckout(ctx context.Context, metadata map[string]string) (*bookings.Booking, Outcome, error)
}

type service struct {
	bookings BookingConfirmer
	logger   *logger.Logger
}

// NewService creates a new payment reconciliation service
func NewService(bookingService BookingConfirmer) Service {
	return &service{
		bookings: bookingService,
		logger:   logger.GetDefault(),
	}
}

// ReconcileCompletedCheckout turns a verified checkout.session.completed
// event into a confirmed booking. Webhook delivery is at-least-once, so a
// repeat delivery for an already-created booking is a no-op.
func (s *service) ReconcileCompletedCheckout(ctx context.Context, metadata map[string]string) (*bookings.Booking, Outcome, error) {
	userID, showtimeID, seatIDs, err := parseMetadata(metadata)
	if err != nil {
		return nil, "", err
	}

	existing, err := s.bookings.FindPaidBooking(ctx, userID, showtimeID, seatIDs)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return existing, OutcomeAlreadyProcessed, nil
	}

	booking, err := s.bookings.ConfirmPaidBooking(ctx, userID, showtimeID, seatIDs)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeConflict) {
			// Paid but unfulfillable: the seats went to another booking
			// after the hold expired. Needs a refund, not a redelivery.
			s.logger.ErrorWithContext(ctx, "paid checkout cannot be fulfilled, refund required", err, map[string]interface{}{
				"user_id":     userID.String(),
				"showtime_id": showtimeID.String(),
			})
			return nil, OutcomeUnfulfillable, nil
		}
		return nil, "", err
	}

	return booking, OutcomeCreated, nil
}

func parseMetadata(metadata map[string]string) (uuid.UUID, uuid.UUID, []uuid.UUID, error) {
	rawUser := metadata[metadataUserID]
	rawShowtime := metadata[metadataShowtimeID]
	rawSeats := metadata[metadataSeatIDs]
	if rawUser == "" || rawShowtime == "" || rawSeats == "" {
		return uuid.Nil, uuid.Nil, nil, apperrors.Validation("checkout session metadata is incomplete")
	}

	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, apperrors.Validation("invalid user id in session metadata")
	}
	showtimeID, err := uuid.Parse(rawShowtime)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, apperrors.Validation("invalid showtime id in session metadata")
	}

	var seatIDStrings []string
	if err := json.Unmarshal([]byte(rawSeats), &seatIDStrings); err != nil || len(seatIDStrings) == 0 {
		return uuid.Nil, uuid.Nil, nil, apperrors.Validation("invalid seat ids in session metadata")
	}

	seatIDs := make([]uuid.UUID, 0, len(seatIDStrings))
	for _, raw := range seatIDStrings {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, uuid.Nil, nil, apperrors.Validation("invalid seat ids in session metadata")
		}
		seatIDs = append(seatIDs, id)
	}

	return userID, showtimeID, seatIDs, nil
}
