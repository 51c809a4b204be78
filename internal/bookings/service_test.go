package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cinebook/internal/notifications"
	"cinebook/internal/seats"
	"cinebook/internal/shared/apperrors"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockRepository keeps bookings in memory with the same conflict semantics as
// the advisory-lock transaction: all mutations serialize on one mutex.
type mockRepository struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
	shows    map[uuid.UUID]*showtimes.Showtime
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		bookings: make(map[uuid.UUID]*Booking),
		shows:    make(map[uuid.UUID]*showtimes.Showtime),
	}
}

func (m *mockRepository) conflicts(showtimeID uuid.UUID, seatIDs []uuid.UUID, exclude *uuid.UUID) []uuid.UUID {
	requested := make(map[uuid.UUID]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		requested[id] = struct{}{}
	}

	var taken []uuid.UUID
	for _, b := range m.bookings {
		if b.ShowtimeID != showtimeID || !b.IsBooked {
			continue
		}
		if exclude != nil && b.ID == *exclude {
			continue
		}
		for _, seat := range b.Seats {
			if _, ok := requested[seat.ID]; ok {
				taken = append(taken, seat.ID)
			}
		}
	}
	return taken
}

func (m *mockRepository) CreateConfirmed(ctx context.Context, booking *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if taken := m.conflicts(booking.ShowtimeID, booking.SeatIDs(), nil); len(taken) > 0 {
		return &SeatConflictError{SeatIDs: taken}
	}

	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *mockRepository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Showtime = m.shows[b.ShowtimeID]
	return b, nil
}

func (m *mockRepository) GetByTicketCode(ctx context.Context, code string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bookings {
		if b.TicketCode == code {
			copied := *b
			copied.Showtime = m.shows[b.ShowtimeID]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepository) FindConfirmed(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	requested := make(map[uuid.UUID]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		requested[id] = struct{}{}
	}
	for _, b := range m.bookings {
		if b.UserID != userID || b.ShowtimeID != showtimeID || !b.IsBooked {
			continue
		}
		for _, seat := range b.Seats {
			if _, ok := requested[seat.ID]; ok {
				copied := *b
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (m *mockRepository) ConflictingSeatIDs(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conflicts(showtimeID, seatIDs, nil), nil
}

func (m *mockRepository) ReplaceShowtimeAndSeats(ctx context.Context, bookingID, showtimeID uuid.UUID, seatIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if taken := m.conflicts(showtimeID, seatIDs, &bookingID); len(taken) > 0 {
		return &SeatConflictError{SeatIDs: taken}
	}

	b, ok := m.bookings[bookingID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.ShowtimeID = showtimeID
	b.Seats = nil
	for _, id := range seatIDs {
		b.Seats = append(b.Seats, seats.Seat{ID: id})
	}
	return nil
}

func (m *mockRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.IsUsed = true
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookings, id)
	return nil
}

type mockShowtimeService struct {
	shows map[uuid.UUID]*showtimes.Showtime
}

func (m *mockShowtimeService) GetShowtime(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error) {
	show, ok := m.shows[id]
	if !ok {
		return nil, apperrors.NotFound("showtime not found")
	}
	return show, nil
}

type mockSeatReader struct {
	seats map[uuid.UUID]seats.Seat
}

func (m *mockSeatReader) GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]seats.Seat, error) {
	var out []seats.Seat
	for _, id := range seatIDs {
		if seat, ok := m.seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

type mockUserReader struct {
	users map[uuid.UUID]*users.User
}

func (m *mockUserReader) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type mockHolder struct {
	mu       sync.Mutex
	held     map[string]string
	released int
	failSeat *uuid.UUID
}

func newMockHolder() *mockHolder {
	return &mockHolder{held: make(map[string]string)}
}

func (m *mockHolder) HoldSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, holdRef string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSeat != nil {
		return &seats.HoldConflictError{SeatID: *m.failSeat}
	}
	for _, id := range seatIDs {
		m.held[showtimeID.String()+":"+id.String()] = holdRef
	}
	return nil
}

func (m *mockHolder) ReleaseSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range seatIDs {
		delete(m.held, showtimeID.String()+":"+id.String())
	}
	m.released++
	return nil
}

type mockCheckout struct {
	fail       bool
	sessions   int
	lastParams CheckoutParams
}

func (m *mockCheckout) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	if m.fail {
		return nil, errors.New("provider unavailable")
	}
	m.lastParams = params
	m.sessions++
	return &CheckoutSession{
		SessionID: fmt.Sprintf("cs_test_%d", m.sessions),
		URL:       "https://checkout.example/session",
	}, nil
}

type mockProducer struct {
	mu     sync.Mutex
	events []*notifications.BookingEvent
}

func (m *mockProducer) PublishBookingEvent(ctx context.Context, event *notifications.BookingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockProducer) Close() error                          { return nil }
func (m *mockProducer) HealthCheck(ctx context.Context) error { return nil }

// fixture wires a service over a 2x2 hall with one far-future showtime
type fixture struct {
	svc      *service
	repo     *mockRepository
	holder   *mockHolder
	checkout *mockCheckout
	producer *mockProducer

	user     *users.User
	hallID   uuid.UUID
	showtime *showtimes.Showtime
	seatIDs  []uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hallID := uuid.New()
	layout := seats.BuildLayout(hallID, 2, 2)
	seatMap := make(map[uuid.UUID]seats.Seat, len(layout))
	seatIDs := make([]uuid.UUID, 0, len(layout))
	for i := range layout {
		layout[i].ID = uuid.New()
		seatMap[layout[i].ID] = layout[i]
		seatIDs = append(seatIDs, layout[i].ID)
	}

	show := &showtimes.Showtime{
		ID:      uuid.New(),
		MovieID: uuid.New(),
		HallID:  hallID,
		Date:    time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		Time:    "18:00",
		Price:   12.50,
	}

	user := &users.User{
		ID:    uuid.New(),
		Name:  "Ada Moviegoer",
		Email: "ada@cinebook.local",
		Role:  users.RoleCustomer,
	}

	repo := newMockRepository()
	repo.shows[show.ID] = show

	holder := newMockHolder()
	checkout := &mockCheckout{}
	producer := &mockProducer{}

	svc := NewService(
		repo,
		&mockSeatReader{seats: seatMap},
		&mockShowtimeService{shows: map[uuid.UUID]*showtimes.Showtime{show.ID: show}},
		&mockUserReader{users: map[uuid.UUID]*users.User{user.ID: user}},
		holder,
		checkout,
		producer,
		Config{},
	).(*service)

	// Far enough out that both policy windows pass by default
	svc.now = func() time.Time {
		return show.StartsAt().Add(-30 * 24 * time.Hour)
	}

	return &fixture{
		svc:      svc,
		repo:     repo,
		holder:   holder,
		checkout: checkout,
		producer: producer,
		user:     user,
		hallID:   hallID,
		showtime: show,
		seatIDs:  seatIDs,
	}
}

func (f *fixture) confirm(t *testing.T, seatIDs ...uuid.UUID) *Booking {
	t.Helper()
	booking, err := f.svc.ConfirmPaidBooking(context.Background(), f.user.ID, f.showtime.ID, seatIDs)
	require.NoError(t, err)
	return booking
}

func TestStartCheckout_ReturnsSessionAndHoldsSeats(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.StartCheckout(context.Background(), f.user.ID, CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[0], f.seatIDs[1]},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.CheckoutURL)
	assert.Len(t, f.holder.held, 2)
	assert.Equal(t, int64(1250), f.checkout.lastParams.UnitAmountCents)

	// No durable booking exists yet
	bookings, err := f.svc.GetUserBookings(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestStartCheckout_ConflictWithConfirmedBooking(t *testing.T) {
	f := newFixture(t)
	f.confirm(t, f.seatIDs[0])

	_, err := f.svc.StartCheckout(context.Background(), f.user.ID, CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[0], f.seatIDs[1]},
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	assert.Contains(t, apperrors.MessageOf(err), "A1")
	assert.Empty(t, f.holder.held)
}

func TestStartCheckout_HoldConflict(t *testing.T) {
	f := newFixture(t)
	f.holder.failSeat = &f.seatIDs[1]

	_, err := f.svc.StartCheckout(context.Background(), f.user.ID, CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[1]},
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestStartCheckout_ProviderFailureReleasesHolds(t *testing.T) {
	f := newFixture(t)
	f.checkout.fail = true

	_, err := f.svc.StartCheckout(context.Background(), f.user.ID, CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[0]},
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePaymentProcessing))
	assert.Empty(t, f.holder.held)
	assert.Equal(t, 1, f.holder.released)
}

func TestStartCheckout_SeatFromAnotherHall(t *testing.T) {
	f := newFixture(t)

	stray := seats.Seat{ID: uuid.New(), HallID: uuid.New(), Row: 1, Column: 1, Label: "A1"}
	f.svc.seatRepo.(*mockSeatReader).seats[stray.ID] = stray

	_, err := f.svc.StartCheckout(context.Background(), f.user.ID, CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{stray.ID},
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestStartCheckout_UnknownSeat(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.StartCheckout(context.Background(), f.user.ID, CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{uuid.New()},
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestConfirmPaidBooking_PublishesEventAndReleasesHold(t *testing.T) {
	f := newFixture(t)

	booking := f.confirm(t, f.seatIDs[0], f.seatIDs[1])

	assert.True(t, booking.IsBooked)
	assert.Regexp(t, `^CIN-\d{8}-[A-Z]{6}$`, booking.TicketCode)
	assert.Equal(t, 1, f.holder.released)

	require.Len(t, f.producer.events, 1)
	assert.Equal(t, notifications.EventBookingConfirmed, f.producer.events[0].Type)
	assert.Equal(t, booking.ID, f.producer.events[0].BookingID)
}

func TestConfirmPaidBooking_ConcurrentOverlap_OneWinner(t *testing.T) {
	f := newFixture(t)

	const n = 16
	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ConfirmPaidBooking(context.Background(), f.user.ID, f.showtime.ID, []uuid.UUID{f.seatIDs[0], f.seatIDs[1]})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		require.True(t, apperrors.Is(err, apperrors.CodeConflict), "unexpected error: %v", err)
		conflicts++
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, conflicts)
}

func TestUpdateBooking_WindowBoundaries(t *testing.T) {
	f := newFixture(t)
	start := f.showtime.StartsAt()

	tests := []struct {
		name    string
		now     time.Time
		allowed bool
	}{
		{"just outside the window", start.Add(-24*time.Hour - time.Second), true},
		{"just inside the window", start.Add(-24*time.Hour + time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := f.confirm(t, f.seatIDs[0])
			f.svc.now = func() time.Time { return tt.now }

			_, err := f.svc.UpdateBooking(context.Background(), booking.ID, f.user.ID, UpdateBookingRequest{
				ShowtimeID: f.showtime.ID.String(),
				SeatIDs:    SeatIDList{f.seatIDs[1]},
			})

			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.CodePolicyViolation))
			}

			// Reset state for the next case
			require.NoError(t, f.repo.Delete(context.Background(), booking.ID))
			f.svc.now = func() time.Time { return start.Add(-30 * 24 * time.Hour) }
		})
	}
}

func TestCancelBooking_WindowBoundaries(t *testing.T) {
	f := newFixture(t)
	start := f.showtime.StartsAt()

	booking := f.confirm(t, f.seatIDs[0])

	// Inside the 72h cancel window but outside the 24h update window: update
	// still allowed, cancel rejected
	f.svc.now = func() time.Time { return start.Add(-48 * time.Hour) }

	_, err := f.svc.CancelBooking(context.Background(), booking.ID, f.user.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePolicyViolation))

	_, err = f.svc.UpdateBooking(context.Background(), booking.ID, f.user.ID, UpdateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[1]},
	})
	require.NoError(t, err)

	// Outside both windows the cancel goes through and frees the seats
	f.svc.now = func() time.Time { return start.Add(-72*time.Hour - time.Second) }

	cancelled, err := f.svc.CancelBooking(context.Background(), booking.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, cancelled.ID)

	taken, err := f.repo.ConflictingSeatIDs(context.Background(), f.showtime.ID, f.seatIDs)
	require.NoError(t, err)
	assert.Empty(t, taken)
}

func TestUpdateBooking_KeepingOwnSeatsIsNotAConflict(t *testing.T) {
	f := newFixture(t)

	booking := f.confirm(t, f.seatIDs[0])

	updated, err := f.svc.UpdateBooking(context.Background(), booking.ID, f.user.ID, UpdateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[0], f.seatIDs[1]},
	})

	require.NoError(t, err)
	assert.Len(t, updated.Seats, 2)
}

func TestUpdateBooking_ConflictWithOtherBooking(t *testing.T) {
	f := newFixture(t)

	other := &users.User{ID: uuid.New(), Email: "ben@cinebook.local", Role: users.RoleCustomer}
	_, err := f.svc.ConfirmPaidBooking(context.Background(), other.ID, f.showtime.ID, []uuid.UUID{f.seatIDs[1]})
	require.NoError(t, err)

	booking := f.confirm(t, f.seatIDs[0])

	_, err = f.svc.UpdateBooking(context.Background(), booking.ID, f.user.ID, UpdateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[1]},
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestUsedTicketIsImmutable(t *testing.T) {
	f := newFixture(t)

	booking := f.confirm(t, f.seatIDs[0])
	_, err := f.svc.MarkUsed(context.Background(), booking.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateBooking(context.Background(), booking.ID, f.user.ID, UpdateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[1]},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePolicyViolation))

	_, err = f.svc.CancelBooking(context.Background(), booking.ID, f.user.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePolicyViolation))
}

func TestMarkUsed_Idempotent(t *testing.T) {
	f := newFixture(t)

	booking := f.confirm(t, f.seatIDs[0])

	first, err := f.svc.MarkUsedByTicketCode(context.Background(), booking.TicketCode)
	require.NoError(t, err)
	assert.False(t, first.AlreadyUsed)
	assert.True(t, first.Booking.IsUsed)

	second, err := f.svc.MarkUsedByTicketCode(context.Background(), booking.TicketCode)
	require.NoError(t, err)
	assert.True(t, second.AlreadyUsed)
	assert.True(t, second.Booking.IsUsed)

	// Only the first scan publishes ticket.used
	var usedEvents int
	for _, event := range f.producer.events {
		if event.Type == notifications.EventTicketUsed {
			usedEvents++
		}
	}
	assert.Equal(t, 1, usedEvents)
}

func TestGetBooking_Ownership(t *testing.T) {
	f := newFixture(t)

	booking := f.confirm(t, f.seatIDs[0])
	stranger := uuid.New()

	_, err := f.svc.GetBooking(context.Background(), booking.ID, stranger, users.RoleCustomer)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	got, err := f.svc.GetBooking(context.Background(), booking.ID, stranger, users.RoleReceptionist)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	got, err = f.svc.GetBooking(context.Background(), booking.ID, f.user.ID, users.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
}

func TestStartCheckout_PriceRoundsToWholeCents(t *testing.T) {
	f := newFixture(t)
	f.showtime.Price = 19.99

	_, err := f.svc.StartCheckout(context.Background(), f.user.ID, CreateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[0]},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1999), f.checkout.lastParams.UnitAmountCents)
}

func TestUpdateBooking_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)

	booking := f.confirm(t, f.seatIDs[0])
	stranger := uuid.New()

	_, err := f.svc.UpdateBooking(context.Background(), booking.ID, stranger, UpdateBookingRequest{
		ShowtimeID: f.showtime.ID.String(),
		SeatIDs:    SeatIDList{f.seatIDs[1]},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	// Booking is untouched: same seat set, original seat still reserved
	unchanged, err := f.repo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.seatIDs[0]}, unchanged.SeatIDs())

	taken, err := f.repo.ConflictingSeatIDs(context.Background(), f.showtime.ID, []uuid.UUID{f.seatIDs[0]})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.seatIDs[0]}, taken)
}

func TestCancelBooking_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)

	booking := f.confirm(t, f.seatIDs[0])
	stranger := uuid.New()

	_, err := f.svc.CancelBooking(context.Background(), booking.ID, stranger)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	// Still cancellable by its owner afterwards
	cancelled, err := f.svc.CancelBooking(context.Background(), booking.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, cancelled.ID)
}

func TestTicketQR_RendersPNG(t *testing.T) {
	f := newFixture(t)

	booking := f.confirm(t, f.seatIDs[0])

	png, err := f.svc.TicketQR(context.Background(), booking.ID, f.user.ID, users.RoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
