package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// A seat can appear at most once per booking; the advisory-lock
	// transaction guards cross-booking overlap, this guards the join table
	// itself. ADD CONSTRAINT has no IF NOT EXISTS form, so swallow the
	// duplicate_object error on re-runs
	err := db.Exec(`
		DO $$
		BEGIN
			ALTER TABLE booking_seats
			ADD CONSTRAINT unique_seat_per_booking
			UNIQUE (booking_id, seat_id);
		EXCEPTION
			WHEN duplicate_object THEN NULL;
			WHEN duplicate_table THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Index for the seat-intersection conflict query
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_seats_seat_id
		ON booking_seats (seat_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for availability derivation by showtime
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_showtime_booked
		ON bookings (showtime_id, is_booked);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
