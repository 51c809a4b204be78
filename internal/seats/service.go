package seats

import (
	"context"
	"fmt"

	"cinebook/internal/shared/apperrors"

	"github.com/google/uuid"
)

// ShowtimeReader resolves a showtime to its hall (to avoid circular dependency
// on the showtimes package).
type ShowtimeReader interface {
	HallIDForShowtime(ctx context.Context, showtimeID uuid.UUID) (uuid.UUID, error)
}

// Service interface defines the contract for seat availability queries
type Service interface {
	// GetAvailableSeats derives the per-showtime availability map: the hall's
	// full static layout with each seat annotated reserved/free for exactly
	// this showtime.
	GetAvailableSeats(ctx context.Context, showtimeID uuid.UUID) (*AvailabilityResponse, error)
}

type service struct {
	repo      Repository
	showtimes ShowtimeReader
}

// NewService creates a new seat availability service instance
func NewService(repo Repository, showtimes ShowtimeReader) Service {
	return &service{
		repo:      repo,
		showtimes: showtimes,
	}
}

// GetAvailableSeats resolves showtime -> hall, loads the hall's layout and the
// seat sets of confirmed bookings scoped to this showtime, and annotates each
// seat. Reservation state is never stored on the seat: the same physical seat
// must read free for a 2pm showtime while reserved for the 7pm one.
func (s *service) GetAvailableSeats(ctx context.Context, showtimeID uuid.UUID) (*AvailabilityResponse, error) {
	hallID, err := s.showtimes.HallIDForShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	layout, err := s.repo.GetSeatsByHallID(ctx, hallID)
	if err != nil {
		return nil, apperrors.Internal("failed to load hall layout", err)
	}

	reservedIDs, err := s.repo.GetReservedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, apperrors.Internal("failed to load reserved seats", err)
	}

	reserved := make(map[uuid.UUID]struct{}, len(reservedIDs))
	for _, id := range reservedIDs {
		reserved[id] = struct{}{}
	}

	resp := &AvailabilityResponse{Seats: make([]SeatStatus, 0, len(layout))}
	for _, seat := range layout {
		_, taken := reserved[seat.ID]
		resp.Seats = append(resp.Seats, SeatStatus{
			ID:       seat.ID,
			Row:      seat.Row,
			Column:   seat.Column,
			Label:    seat.Label,
			Reserved: taken,
		})
	}

	return resp, nil
}

// LabelsFor returns the display labels for the given seats, for actionable
// conflict messages ("seats A1, B2 are already reserved").
func LabelsFor(seats []Seat, ids []uuid.UUID) []string {
	byID := make(map[uuid.UUID]string, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat.Label
	}

	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if label, ok := byID[id]; ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, fmt.Sprintf("seat %s", id))
		}
	}
	return labels
}
