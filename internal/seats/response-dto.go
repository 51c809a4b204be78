package seats

import "github.com/google/uuid"

// SeatStatus is one seat of a showtime's availability map.
type SeatStatus struct {
	ID       uuid.UUID `json:"id"`
	Row      int       `json:"row"`
	Column   int       `json:"column"`
	Label    string    `json:"label"`
	Reserved bool      `json:"reserved"`
}

// AvailabilityResponse is the single fixed response shape for seat-status
// queries, regardless of how many seats the hall has.
type AvailabilityResponse struct {
	Seats []SeatStatus `json:"seats"`
}
