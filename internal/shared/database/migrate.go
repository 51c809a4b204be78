package database

import (
	"cinebook/internal/bookings"
	"cinebook/internal/halls"
	"cinebook/internal/movies"
	"cinebook/internal/seats"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&movies.Movie{},
		&halls.Hall{},
		&seats.Seat{},
		&showtimes.Showtime{},
		&bookings.Booking{},
	)
}
