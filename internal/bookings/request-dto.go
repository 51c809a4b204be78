package bookings

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// SeatIDList accepts either a JSON array of seat ids or a single bare id
// string. The web client historically sent a bare id for one-seat bookings,
// both forms normalize to a set.
type SeatIDList []uuid.UUID

func (s *SeatIDList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		parsed := make([]uuid.UUID, 0, len(many))
		for _, raw := range many {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid seat id %q", raw)
			}
			parsed = append(parsed, id)
		}
		*s = parsed
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		id, err := uuid.Parse(one)
		if err != nil {
			return fmt.Errorf("invalid seat id %q", one)
		}
		*s = SeatIDList{id}
		return nil
	}

	return fmt.Errorf("seat_ids must be a seat id or an array of seat ids")
}

// CreateBookingRequest represents the checkout request for a seat set
type CreateBookingRequest struct {
	ShowtimeID string     `json:"showtime_id" binding:"required,uuid"`
	SeatIDs    SeatIDList `json:"seat_ids" binding:"required,min=1"`
}

// UpdateBookingRequest represents a wholesale showtime+seat replacement
type UpdateBookingRequest struct {
	ShowtimeID string     `json:"showtime_id" binding:"required,uuid"`
	SeatIDs    SeatIDList `json:"seat_ids" binding:"required,min=1"`
}
