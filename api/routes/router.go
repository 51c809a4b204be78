// api/routes/router.go
package routes

import (
	"log"
	"net/http"
	"time"

	"cinebook/internal/bookings"
	"cinebook/internal/notifications"
	"cinebook/internal/payments"
	"cinebook/internal/seats"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	bookingService    bookings.Service    // For dependency injection
	bookingController *bookings.Controller
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Booking routes first: payments and reception reuse its service
		r.setupShowtimeRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupReceptionRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupShowtimeRoutes configures the public catalog read surface
func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	showtimeService := showtimes.NewService(showtimeRepo)

	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	seatService := seats.NewService(seatRepo, showtimeService)

	showtimeController := showtimes.NewController(showtimeService, seatService)
	showtimes.SetupShowtimeRoutes(rg, showtimeController)
}

// setupBookingRoutes configures the booking lifecycle surface
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	showtimeService := showtimes.NewService(showtimes.NewRepository(r.db.GetPostgreSQL()))
	holdStore := seats.NewHoldStore(r.db.GetRedisClient())

	var checkout bookings.CheckoutClient
	stripeClient, err := payments.NewStripeClient(r.config.Stripe)
	if err != nil {
		// Booking creation will fail with PaymentProcessing until a key is set
		log.Printf("⚠️ Stripe client not configured: %v", err)
	} else {
		checkout = stripeClient
	}

	r.bookingService = bookings.NewService(
		bookingRepo,
		seatRepo,
		showtimeService,
		userRepo,
		holdStore,
		checkout,
		r.producer,
		bookings.Config{
			MinLeadTimeUpdate: r.config.Booking.MinLeadTimeUpdate,
			MinLeadTimeCancel: r.config.Booking.MinLeadTimeCancel,
			SeatHoldTTL:       r.config.Redis.SeatHoldTTL,
		},
	)

	r.bookingController = bookings.NewController(r.bookingService)
	bookings.SetupBookingRoutes(rg, r.bookingController)
}

// setupPaymentRoutes configures the webhook reconciliation surface
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentService := payments.NewService(r.bookingService)
	paymentController := payments.NewController(paymentService, r.config.Stripe.WebhookSecret)
	payments.SetupPaymentRoutes(rg, paymentController)
}

// setupReceptionRoutes configures the staff scan surface
func (r *Router) setupReceptionRoutes(rg *gin.RouterGroup) {
	bookings.SetupReceptionRoutes(rg, r.bookingController)
}
