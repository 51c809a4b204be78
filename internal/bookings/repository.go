package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinebook/internal/seats"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatConflictError reports the seats that blocked an atomic create or update
type SeatConflictError struct {
	SeatIDs []uuid.UUID
}

func (e *SeatConflictError) Error() string {
	parts := make([]string, 0, len(e.SeatIDs))
	for _, id := range e.SeatIDs {
		parts = append(parts, id.String())
	}
	return fmt.Sprintf("seats already reserved: %s", strings.Join(parts, ", "))
}

type Repository interface {
	// Concurrency-safe booking creation
	CreateConfirmed(ctx context.Context, booking *Booking) error

	// Lookups
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByTicketCode(ctx context.Context, code string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	FindConfirmed(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*Booking, error)

	// Conflict inspection outside a transaction (pre-checkout check)
	ConflictingSeatIDs(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error)

	// Mutations
	ReplaceShowtimeAndSeats(ctx context.Context, bookingID, showtimeID uuid.UUID, seatIDs []uuid.UUID) error
	MarkUsed(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateConfirmed inserts a confirmed booking atomically. The transaction
// takes a per-showtime advisory lock, re-runs the seat-intersection conflict
// query under that lock, then writes the booking and its booking_seats rows.
// Two overlapping requests serialize on the lock and exactly one wins.
func (r *repository) CreateConfirmed(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockShowtime(tx, booking.ShowtimeID); err != nil {
			return err
		}

		seatIDs := booking.SeatIDs()
		taken, err := conflictingSeatIDs(tx, booking.ShowtimeID, seatIDs, nil)
		if err != nil {
			return fmt.Errorf("failed to check seat conflicts: %w", err)
		}
		if len(taken) > 0 {
			return &SeatConflictError{SeatIDs: taken}
		}

		// Omit the association upsert: seats already exist, only the join
		// rows are new
		if err := tx.Omit("Seats.*").Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
}

// ReplaceShowtimeAndSeats moves a booking to a new showtime and seat set in
// one transaction, re-running the exclusivity check (excluding the booking
// itself) under the advisory lock of the target showtime.
func (r *repository) ReplaceShowtimeAndSeats(ctx context.Context, bookingID, showtimeID uuid.UUID, seatIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockShowtime(tx, showtimeID); err != nil {
			return err
		}

		taken, err := conflictingSeatIDs(tx, showtimeID, seatIDs, &bookingID)
		if err != nil {
			return fmt.Errorf("failed to check seat conflicts: %w", err)
		}
		if len(taken) > 0 {
			return &SeatConflictError{SeatIDs: taken}
		}

		booking := Booking{ID: bookingID}
		if err := tx.Model(&booking).Update("showtime_id", showtimeID).Error; err != nil {
			return fmt.Errorf("failed to update booking showtime: %w", err)
		}

		newSeats := make([]seats.Seat, 0, len(seatIDs))
		for _, id := range seatIDs {
			newSeats = append(newSeats, seats.Seat{ID: id})
		}
		if err := tx.Model(&booking).Association("Seats").Replace(&newSeats); err != nil {
			return fmt.Errorf("failed to replace booking seats: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Showtime").
		Preload("Showtime.Movie").
		Preload("Showtime.Hall").
		Preload("Seats").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByTicketCode(ctx context.Context, code string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Showtime").
		Preload("Showtime.Movie").
		Preload("Seats").
		Where("ticket_code = ?", code).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Showtime").
		Preload("Showtime.Movie").
		Preload("Showtime.Hall").
		Preload("Seats").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// FindConfirmed looks up a confirmed booking of this user on this showtime
// whose seat set intersects the given seats. Used for webhook idempotency.
// No match returns (nil, nil).
func (r *repository) FindConfirmed(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Distinct("bookings.*").
		Joins("JOIN booking_seats ON booking_seats.booking_id = bookings.id").
		Where("bookings.user_id = ?", userID).
		Where("bookings.showtime_id = ?", showtimeID).
		Where("bookings.is_booked = ?", true).
		Where("booking_seats.seat_id IN ?", seatIDs).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ConflictingSeatIDs(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error) {
	return conflictingSeatIDs(r.db.WithContext(ctx), showtimeID, seatIDs, nil)
}

// MarkUsed flips is_used once; a second call is a no-op at the storage level
func (r *repository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Update("is_used", true).Error
}

// Delete removes the booking and its booking_seats join rows
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Select("Seats").
		Delete(&Booking{ID: id}).Error
}

// lockShowtime takes a transaction-scoped advisory lock keyed by showtime so
// overlapping seat writes for the same showtime serialize
func lockShowtime(tx *gorm.DB, showtimeID uuid.UUID) error {
	err := tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", showtimeID.String()).Error
	if err != nil {
		return fmt.Errorf("failed to lock showtime: %w", err)
	}
	return nil
}

func conflictingSeatIDs(tx *gorm.DB, showtimeID uuid.UUID, seatIDs []uuid.UUID, excludeBookingID *uuid.UUID) ([]uuid.UUID, error) {
	query := tx.Table("booking_seats").
		Select("booking_seats.seat_id").
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("bookings.showtime_id = ?", showtimeID).
		Where("bookings.is_booked = ?", true).
		Where("booking_seats.seat_id IN ?", seatIDs)

	if excludeBookingID != nil {
		query = query.Where("bookings.id <> ?", *excludeBookingID)
	}

	var taken []uuid.UUID
	err := query.Scan(&taken).Error
	return taken, err
}
