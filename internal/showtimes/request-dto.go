package showtimes

import "time"

// CreateShowtimeRequest schedules a movie in a hall. Used by the seed tooling
// and admin automation; there is no public write endpoint.
type CreateShowtimeRequest struct {
	MovieID string    `json:"movie_id" validate:"required,uuid"`
	HallID  string    `json:"hall_id" validate:"required,uuid"`
	Date    time.Time `json:"date" validate:"required"`
	Time    string    `json:"time" validate:"required,hhmm"`
	Price   float64   `json:"price" validate:"required,gt=0"`
}
