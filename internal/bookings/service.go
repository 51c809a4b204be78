package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"cinebook/internal/notifications"
	"cinebook/internal/seats"
	"cinebook/internal/shared/apperrors"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// ShowtimeService interface for showtime lookups (kept narrow for testability)
type ShowtimeService interface {
	GetShowtime(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error)
}

// SeatReader interface for seat layout lookups
type SeatReader interface {
	GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]seats.Seat, error)
}

// UserReader interface for user lookups
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*users.User, error)
}

// SeatHolder takes and releases TTL-bound checkout holds on (showtime, seat)
// pairs
type SeatHolder interface {
	HoldSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, holdRef string, ttl time.Duration) error
	ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID) error
}

// CheckoutParams carries everything the payment provider needs to open a
// session that can later be reconciled back into a booking
type CheckoutParams struct {
	UserID          uuid.UUID
	CustomerEmail   string
	ShowtimeID      uuid.UUID
	SeatIDs         []uuid.UUID
	MovieTitle      string
	SeatLabels      []string
	UnitAmountCents int64
}

// CheckoutSession is the provider-side session descriptor
type CheckoutSession struct {
	SessionID string
	URL       string
}

// CheckoutClient interface for opening payment sessions (implemented by the
// payments package, kept here to avoid circular dependency)
type CheckoutClient interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
}

// Config holds the lifecycle policy knobs
type Config struct {
	MinLeadTimeUpdate time.Duration
	MinLeadTimeCancel time.Duration
	SeatHoldTTL       time.Duration
}

// Service interface defines the contract for booking business logic
type Service interface {
	// Checkout path: no durable booking yet, just a payment session
	StartCheckout(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*CheckoutResponse, error)

	// Reconciler path: atomic conflict-checked creation of the confirmed
	// booking once payment completed
	ConfirmPaidBooking(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*Booking, error)
	FindPaidBooking(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*Booking, error)

	// Lifecycle
	GetBooking(ctx context.Context, bookingID, requestingUserID uuid.UUID, role users.Role) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	UpdateBooking(ctx context.Context, bookingID, requestingUserID uuid.UUID, req UpdateBookingRequest) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID, requestingUserID uuid.UUID) (*Booking, error)

	// Reception
	MarkUsed(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	MarkUsedByTicketCode(ctx context.Context, code string) (*ScanResponse, error)
	TicketQR(ctx context.Context, bookingID, requestingUserID uuid.UUID, role users.Role) ([]byte, error)
}

type service struct {
	repo      Repository
	seatRepo  SeatReader
	showtimes ShowtimeService
	userRepo  UserReader
	holder    SeatHolder
	checkout  CheckoutClient
	producer  notifications.Producer
	config    Config
	logger    *logger.Logger
	now       func() time.Time
}

// NewService creates a new booking service instance
func NewService(repo Repository, seatRepo SeatReader, showtimeService ShowtimeService, userRepo UserReader,
	holder SeatHolder, checkout CheckoutClient, producer notifications.Producer, config Config) Service {
	if config.MinLeadTimeUpdate <= 0 {
		config.MinLeadTimeUpdate = 24 * time.Hour
	}
	if config.MinLeadTimeCancel <= 0 {
		config.MinLeadTimeCancel = 72 * time.Hour
	}
	if config.SeatHoldTTL <= 0 {
		config.SeatHoldTTL = 15 * time.Minute
	}
	return &service{
		repo:      repo,
		seatRepo:  seatRepo,
		showtimes: showtimeService,
		userRepo:  userRepo,
		holder:    holder,
		checkout:  checkout,
		producer:  producer,
		config:    config,
		logger:    logger.GetDefault(),
		now:       time.Now,
	}
}

// StartCheckout validates the requested seat set, takes a TTL-bound atomic
// hold on it, and opens a payment session. The durable booking is created by
// the payment webhook, never here.
func (s *service) StartCheckout(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*CheckoutResponse, error) {
	if s.checkout == nil {
		return nil, apperrors.PaymentProcessing("payment provider not configured", nil)
	}
	if len(req.SeatIDs) == 0 {
		return nil, apperrors.Validation("seat_ids is required")
	}
	seatIDs := dedupeIDs(req.SeatIDs)

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, apperrors.Validation("invalid showtime id")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to load user", err)
	}

	showtime, err := s.showtimes.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	requested, err := s.validateSeatSet(ctx, showtime, seatIDs)
	if err != nil {
		return nil, err
	}

	// Fast conflict check against confirmed bookings before paying
	taken, err := s.repo.ConflictingSeatIDs(ctx, showtimeID, seatIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to check seat availability", err)
	}
	if len(taken) > 0 {
		return nil, seatConflict(requested, taken)
	}

	// Hold the seats for the payment window so they cannot be double-sold
	// while the session is open
	holdRef := uuid.New().String()
	if err := s.holder.HoldSeats(ctx, showtimeID, seatIDs, holdRef, s.config.SeatHoldTTL); err != nil {
		var holdErr *seats.HoldConflictError
		if errors.As(err, &holdErr) {
			return nil, seatConflict(requested, []uuid.UUID{holdErr.SeatID})
		}
		return nil, apperrors.Internal("failed to hold seats", err)
	}

	movieTitle := ""
	if showtime.Movie != nil {
		movieTitle = showtime.Movie.Title
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, CheckoutParams{
		UserID:          userID,
		CustomerEmail:   user.Email,
		ShowtimeID:      showtimeID,
		SeatIDs:         seatIDs,
		MovieTitle:      movieTitle,
		SeatLabels:      seats.LabelsFor(requested, seatIDs),
		UnitAmountCents: int64(math.Round(showtime.Price * 100)),
	})
	if err != nil {
		// No orphan state: drop the hold before surfacing the failure
		if releaseErr := s.holder.ReleaseSeats(ctx, showtimeID, seatIDs); releaseErr != nil {
			s.logger.ErrorWithContext(ctx, "failed to release seat holds after checkout failure", releaseErr, nil)
		}
		return nil, apperrors.PaymentProcessing("failed to create payment session", err)
	}

	s.logger.LogCheckoutStarted(ctx, session.SessionID, showtimeID.String(), userID.String(), len(seatIDs))

	return &CheckoutResponse{
		SessionID:   session.SessionID,
		CheckoutURL: session.URL,
	}, nil
}

// ConfirmPaidBooking creates the confirmed booking for a completed payment.
// It re-validates the seat set and runs the atomic check-then-create
// transaction, then releases the checkout hold and publishes the event.
func (s *service) ConfirmPaidBooking(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*Booking, error) {
	if len(seatIDs) == 0 {
		return nil, apperrors.Validation("seat_ids is required")
	}
	seatIDs = dedupeIDs(seatIDs)

	showtime, err := s.showtimes.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	requested, err := s.validateSeatSet(ctx, showtime, seatIDs)
	if err != nil {
		return nil, err
	}

	ticketCode, err := s.generateTicketCode()
	if err != nil {
		return nil, apperrors.Internal("failed to generate ticket code", err)
	}

	booking := &Booking{
		ID:         uuid.New(),
		UserID:     userID,
		ShowtimeID: showtimeID,
		IsBooked:   true,
		TicketCode: ticketCode,
		Seats:      requested,
	}

	if err := s.repo.CreateConfirmed(ctx, booking); err != nil {
		var conflict *SeatConflictError
		if errors.As(err, &conflict) {
			return nil, seatConflict(requested, conflict.SeatIDs)
		}
		return nil, apperrors.Internal("failed to create booking", err)
	}

	// The seats are now durably reserved, the checkout hold has done its job
	if err := s.holder.ReleaseSeats(ctx, showtimeID, seatIDs); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to release seat holds after confirmation", err, nil)
	}

	s.logger.LogBookingConfirmed(ctx, booking.ID.String(), showtimeID.String(), userID.String())
	s.publish(ctx, notifications.EventBookingConfirmed, booking)

	return booking, nil
}

// FindPaidBooking looks up an already-confirmed booking for the same payment,
// for webhook idempotency. Returns (nil, nil) when none exists.
func (s *service) FindPaidBooking(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*Booking, error) {
	if len(seatIDs) == 0 {
		return nil, apperrors.Validation("seat_ids is required")
	}
	booking, err := s.repo.FindConfirmed(ctx, userID, showtimeID, seatIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to look up booking", err)
	}
	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, requestingUserID uuid.UUID, role users.Role) (*Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorize(booking, requestingUserID, role); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	bookings, err := s.repo.GetUserBookings(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load bookings", err)
	}
	return bookings, nil
}

// UpdateBooking replaces the booking's showtime and seat set wholesale. The
// policy window is measured against the booking's current showtime, and the
// exclusivity check re-runs inside the replacement transaction, excluding the
// booking itself so overlap with its own previous seats never conflicts.
func (s *service) UpdateBooking(ctx context.Context, bookingID, requestingUserID uuid.UUID, req UpdateBookingRequest) (*Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != requestingUserID {
		return nil, apperrors.Forbidden("you can only modify your own bookings")
	}
	if booking.IsUsed {
		return nil, apperrors.PolicyViolation("ticket already used")
	}
	if err := s.checkWindow(booking.Showtime, s.config.MinLeadTimeUpdate, "updated"); err != nil {
		return nil, err
	}

	newShowtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, apperrors.Validation("invalid showtime id")
	}
	seatIDs := dedupeIDs(req.SeatIDs)

	newShowtime, err := s.showtimes.GetShowtime(ctx, newShowtimeID)
	if err != nil {
		return nil, err
	}
	requested, err := s.validateSeatSet(ctx, newShowtime, seatIDs)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceShowtimeAndSeats(ctx, bookingID, newShowtimeID, seatIDs); err != nil {
		var conflict *SeatConflictError
		if errors.As(err, &conflict) {
			return nil, seatConflict(requested, conflict.SeatIDs)
		}
		return nil, apperrors.Internal("failed to update booking", err)
	}

	return s.loadBooking(ctx, bookingID)
}

// CancelBooking hard-deletes the booking, freeing its seats immediately
func (s *service) CancelBooking(ctx context.Context, bookingID, requestingUserID uuid.UUID) (*Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != requestingUserID {
		return nil, apperrors.Forbidden("you can only cancel your own bookings")
	}
	if booking.IsUsed {
		return nil, apperrors.PolicyViolation("ticket already used")
	}
	if err := s.checkWindow(booking.Showtime, s.config.MinLeadTimeCancel, "cancelled"); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, bookingID); err != nil {
		return nil, apperrors.Internal("failed to cancel booking", err)
	}

	s.logger.LogBookingCancelled(ctx, bookingID.String(), requestingUserID.String())
	s.publish(ctx, notifications.EventBookingCancelled, booking)

	return booking, nil
}

// MarkUsed flips the ticket to used. Idempotent: scanning a used ticket
// reports it, never errors, and never un-uses.
func (s *service) MarkUsed(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.IsUsed {
		return booking, nil
	}

	if err := s.repo.MarkUsed(ctx, bookingID); err != nil {
		return nil, apperrors.Internal("failed to mark ticket used", err)
	}
	booking.IsUsed = true

	s.logger.LogTicketUsed(ctx, booking.ID.String(), booking.TicketCode)
	s.publish(ctx, notifications.EventTicketUsed, booking)

	return booking, nil
}

// MarkUsedByTicketCode is the reception scan path
func (s *service) MarkUsedByTicketCode(ctx context.Context, code string) (*ScanResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.Validation("ticket code is required")
	}

	booking, err := s.repo.GetByTicketCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("ticket not found")
		}
		return nil, apperrors.Internal("failed to look up ticket", err)
	}

	alreadyUsed := booking.IsUsed
	if !alreadyUsed {
		updated, err := s.MarkUsed(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		booking = updated
	}

	return &ScanResponse{Booking: booking, AlreadyUsed: alreadyUsed}, nil
}

// TicketQR renders the booking's ticket code as a PNG QR image
func (s *service) TicketQR(ctx context.Context, bookingID, requestingUserID uuid.UUID, role users.Role) ([]byte, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorize(booking, requestingUserID, role); err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(booking.TicketCode, qrcode.Medium, 256)
	if err != nil {
		return nil, apperrors.Internal("failed to render ticket QR", err)
	}
	return png, nil
}

func (s *service) loadBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByIDWithRelations(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}
	return booking, nil
}

// validateSeatSet checks every requested seat exists and sits in the
// showtime's hall, returning the loaded seats
func (s *service) validateSeatSet(ctx context.Context, showtime *showtimes.Showtime, seatIDs []uuid.UUID) ([]seats.Seat, error) {
	requested, err := s.seatRepo.GetSeatsByIDs(ctx, seatIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to load seats", err)
	}
	if len(requested) != len(seatIDs) {
		return nil, apperrors.NotFound("one or more seats not found")
	}
	for _, seat := range requested {
		if seat.HallID != showtime.HallID {
			return nil, apperrors.Validation(fmt.Sprintf("seat %s does not belong to this showtime's hall", seat.Label))
		}
	}
	return requested, nil
}

// checkWindow enforces a minimum lead time before the showtime start
func (s *service) checkWindow(showtime *showtimes.Showtime, lead time.Duration, action string) error {
	if showtime == nil {
		return apperrors.Internal("booking has no showtime loaded", nil)
	}
	if showtime.StartsAt().Sub(s.now()) < lead {
		hours := int(lead.Hours())
		return apperrors.PolicyViolation(fmt.Sprintf("bookings can only be %s up to %d hours before the showtime", action, hours))
	}
	return nil
}

func (s *service) publish(ctx context.Context, eventType notifications.EventType, booking *Booking) {
	if s.producer == nil {
		return
	}
	event := notifications.NewBookingEvent(eventType, booking.ID, booking.UserID, booking.ShowtimeID)
	event.SeatIDs = booking.SeatIDs()
	event.TicketCode = booking.TicketCode
	if err := s.producer.PublishBookingEvent(ctx, event); err != nil {
		// Never block the booking flow on the broker
		s.logger.ErrorWithContext(ctx, "failed to publish booking event", err, map[string]interface{}{
			"event_type": string(eventType),
			"booking_id": booking.ID.String(),
		})
	}
}

func authorize(booking *Booking, requestingUserID uuid.UUID, role users.Role) error {
	if booking.UserID == requestingUserID {
		return nil
	}
	if role == users.RoleAdmin || role == users.RoleReceptionist {
		return nil
	}
	return apperrors.Forbidden("you do not have access to this booking")
}

func seatConflict(requested []seats.Seat, taken []uuid.UUID) error {
	labels := seats.LabelsFor(requested, taken)
	return apperrors.Conflict(fmt.Sprintf("seats already reserved: %s", strings.Join(labels, ", ")))
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// generateTicketCode generates a unique scannable ticket code
func (s *service) generateTicketCode() (string, error) {
	timestamp := s.now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)
	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("CIN-%s-%s", timestamp, string(randomPart)), nil
}
