package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cinebook/internal/bookings"
	"cinebook/internal/shared/config"

	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
)

// Metadata keys carried on the checkout session so the webhook can reconcile
// the payment back into a booking
const (
	metadataUserID     = "userId"
	metadataShowtimeID = "showtimeId"
	metadataSeatIDs    = "seatIds"
)

// StripeClient implements bookings.CheckoutClient against the Stripe
// checkout API
type StripeClient struct {
	config config.StripeConfig
}

// NewStripeClient creates a Stripe-backed checkout client
func NewStripeClient(cfg config.StripeConfig) (*StripeClient, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}

	// Set Stripe API key globally
	stripe.Key = cfg.SecretKey

	return &StripeClient{config: cfg}, nil
}

// CreateCheckoutSession opens a hosted checkout session for the seat set.
// The session metadata is the single source the webhook uses to create the
// booking, so it must round-trip user, showtime and seats.
func (sc *StripeClient) CreateCheckoutSession(ctx context.Context, params bookings.CheckoutParams) (*bookings.CheckoutSession, error) {
	seatIDStrings := make([]string, 0, len(params.SeatIDs))
	for _, id := range params.SeatIDs {
		seatIDStrings = append(seatIDStrings, id.String())
	}
	seatIDsJSON, err := json.Marshal(seatIDStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode seat ids: %w", err)
	}

	name := params.MovieTitle
	if name == "" {
		name = "Cinema ticket"
	}
	description := fmt.Sprintf("Seats: %s", strings.Join(params.SeatLabels, ", "))

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(sc.config.SuccessURL),
		CancelURL:     stripe.String(sc.config.CancelURL),
		CustomerEmail: stripe.String(params.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(sc.config.Currency),
					UnitAmount: stripe.Int64(params.UnitAmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(name),
						Description: stripe.String(description),
					},
				},
				Quantity: stripe.Int64(int64(len(params.SeatIDs))),
			},
		},
	}
	sessionParams.AddMetadata(metadataUserID, params.UserID.String())
	sessionParams.AddMetadata(metadataShowtimeID, params.ShowtimeID.String())
	sessionParams.AddMetadata(metadataSeatIDs, string(seatIDsJSON))

	session, err := checkoutsession.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &bookings.CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}
