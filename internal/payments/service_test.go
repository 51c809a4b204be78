package payments

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"cinebook/internal/bookings"
	"cinebook/internal/seats"
	"cinebook/internal/shared/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBookingConfirmer records confirmed bookings keyed by (user, showtime)
// with the same intersection idempotency as the real service
type mockBookingConfirmer struct {
	mu       sync.Mutex
	bookings []*bookings.Booking
	confirms int
	fail     error
}

func (m *mockBookingConfirmer) FindPaidBooking(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*bookings.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	requested := make(map[uuid.UUID]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		requested[id] = struct{}{}
	}
	for _, b := range m.bookings {
		if b.UserID != userID || b.ShowtimeID != showtimeID {
			continue
		}
		for _, seat := range b.Seats {
			if _, ok := requested[seat.ID]; ok {
				return b, nil
			}
		}
	}
	return nil, nil
}

func (m *mockBookingConfirmer) ConfirmPaidBooking(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*bookings.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return nil, m.fail
	}

	booking := &bookings.Booking{
		ID:         uuid.New(),
		UserID:     userID,
		ShowtimeID: showtimeID,
		IsBooked:   true,
		TicketCode: "CIN-20260830-ABCDEF",
	}
	for _, id := range seatIDs {
		booking.Seats = append(booking.Seats, seats.Seat{ID: id})
	}
	m.bookings = append(m.bookings, booking)
	m.confirms++
	return booking, nil
}

func metadataFor(userID, showtimeID uuid.UUID, seatIDs ...uuid.UUID) map[string]string {
	raw := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		raw = append(raw, id.String())
	}
	encoded, _ := json.Marshal(raw)
	return map[string]string{
		metadataUserID:     userID.String(),
		metadataShowtimeID: showtimeID.String(),
		metadataSeatIDs:    string(encoded),
	}
}

func TestReconcile_CreatesBookingOnce(t *testing.T) {
	confirmer := &mockBookingConfirmer{}
	svc := NewService(confirmer)

	userID := uuid.New()
	showtimeID := uuid.New()
	seatID := uuid.New()
	metadata := metadataFor(userID, showtimeID, seatID)

	booking, outcome, err := svc.ReconcileCompletedCheckout(context.Background(), metadata)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.Equal(t, userID, booking.UserID)

	// Stripe delivers at least once: the second delivery is a no-op
	again, outcome, err := svc.ReconcileCompletedCheckout(context.Background(), metadata)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyProcessed, outcome)
	assert.Equal(t, booking.ID, again.ID)
	assert.Equal(t, 1, confirmer.confirms)
}

func TestReconcile_MissingMetadata(t *testing.T) {
	svc := NewService(&mockBookingConfirmer{})

	cases := []map[string]string{
		{},
		{metadataUserID: uuid.New().String()},
		{metadataUserID: uuid.New().String(), metadataShowtimeID: uuid.New().String()},
		{metadataUserID: "not-a-uuid", metadataShowtimeID: uuid.New().String(), metadataSeatIDs: `["x"]`},
		{metadataUserID: uuid.New().String(), metadataShowtimeID: uuid.New().String(), metadataSeatIDs: `[]`},
		{metadataUserID: uuid.New().String(), metadataShowtimeID: uuid.New().String(), metadataSeatIDs: `not json`},
	}

	for _, metadata := range cases {
		_, _, err := svc.ReconcileCompletedCheckout(context.Background(), metadata)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidation), "metadata %v", metadata)
	}
}

func TestReconcile_PropagatesTransientConfirmError(t *testing.T) {
	confirmer := &mockBookingConfirmer{fail: apperrors.Internal("database unavailable", nil)}
	svc := NewService(confirmer)

	_, _, err := svc.ReconcileCompletedCheckout(context.Background(),
		metadataFor(uuid.New(), uuid.New(), uuid.New()))

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInternal))
}

func TestReconcile_SeatConflictIsUnfulfillableNotRetried(t *testing.T) {
	// The hold lapsed and the seats were sold elsewhere: no redelivery can
	// ever succeed, so the event is acknowledged instead of erroring
	confirmer := &mockBookingConfirmer{fail: apperrors.Conflict("seats already reserved: A1")}
	svc := NewService(confirmer)

	booking, outcome, err := svc.ReconcileCompletedCheckout(context.Background(),
		metadataFor(uuid.New(), uuid.New(), uuid.New()))

	require.NoError(t, err)
	assert.Equal(t, OutcomeUnfulfillable, outcome)
	assert.Nil(t, booking)
}
