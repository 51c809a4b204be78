package bookings

// CheckoutResponse is the payment-session descriptor returned instead of a
// durable booking. The booking itself is created by the payment webhook once
// the session completes.
type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// ScanResponse is the reception payload after a ticket scan
type ScanResponse struct {
	Booking     *Booking `json:"booking"`
	AlreadyUsed bool     `json:"already_used"`
}
