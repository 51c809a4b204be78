package payments

import (
	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes configures the payment webhook surface. No auth
// middleware: the signature check is the authentication.
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payments := rg.Group("/payments")
	{
		payments.POST("/webhook", controller.HandleWebhook) // POST /api/v1/payments/webhook
	}
}
