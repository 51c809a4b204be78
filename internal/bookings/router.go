package bookings

import (
	"cinebook/internal/shared/middleware"
	"cinebook/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("", controller.CreateBooking)      // POST /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)      // GET /api/v1/bookings/:id
		bookings.PUT("/:id", controller.UpdateBooking)   // PUT /api/v1/bookings/:id
		bookings.DELETE("/:id", controller.CancelBooking) // DELETE /api/v1/bookings/:id
		bookings.GET("/:id/qr", controller.TicketQR)     // GET /api/v1/bookings/:id/qr
	}

	userRoutes := rg.Group("/users")
	userRoutes.Use(middleware.JWTAuth())
	{
		userRoutes.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}
}

// SetupReceptionRoutes configures the staff-only scan surface
func SetupReceptionRoutes(rg *gin.RouterGroup, controller *Controller) {
	reception := rg.Group("/reception")
	reception.Use(middleware.JWTAuth(), middleware.RequireRoles(string(users.RoleReceptionist), string(users.RoleAdmin)))
	{
		reception.GET("/scan", controller.ScanTicket)                 // GET /api/v1/reception/scan?code=
		reception.GET("/bookings/:id", controller.ReceptionGetBooking) // GET /api/v1/reception/bookings/:id
	}
}
