package payments

import (
	"encoding/json"
	"io"
	"net/http"

	"cinebook/internal/shared/apperrors"
	"cinebook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

type Controller struct {
	service       Service
	webhookSecret string
	logger        *logger.Logger
}

func NewController(service Service, webhookSecret string) *Controller {
	return &Controller{
		service:       service,
		webhookSecret: webhookSecret,
		logger:        logger.GetDefault(),
	}
}

// HandleWebhook handles POST /api/v1/payments/webhook. Signature
// verification happens before any state change; handler failures return 500
// so Stripe redelivers.
func (c *Controller) HandleWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		c.logger.LogWebhookRejected(ctx.Request.Context(), "unreadable body", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	sigHeader := ctx.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		c.logger.LogWebhookRejected(ctx.Request.Context(), "missing signature header", nil)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing Stripe-Signature header"})
		return
	}

	event, err := webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
	if err != nil {
		c.logger.LogWebhookRejected(ctx.Request.Context(), "invalid signature", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		c.handleCheckoutCompleted(ctx, event)
	default:
		// Acknowledged so Stripe stops redelivering event types we ignore
		ctx.JSON(http.StatusOK, gin.H{"received": true, "message": "event type not handled"})
	}
}

func (c *Controller) handleCheckoutCompleted(ctx *gin.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.logger.LogWebhookRejected(ctx.Request.Context(), "malformed checkout.session.completed payload", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse event data"})
		return
	}

	booking, outcome, err := c.service.ReconcileCompletedCheckout(ctx.Request.Context(), session.Metadata)
	if err != nil {
		if apperrors.StatusOf(err) == http.StatusBadRequest {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": apperrors.MessageOf(err)})
			return
		}
		c.logger.ErrorWithContext(ctx.Request.Context(), "failed to reconcile completed checkout", err, map[string]interface{}{
			"session_id": session.ID,
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	resp := gin.H{"received": true, "status": string(outcome)}
	if booking != nil {
		resp["booking_id"] = booking.ID.String()
	}
	ctx.JSON(http.StatusOK, resp)
}
