package showtimes

import (
	"github.com/gin-gonic/gin"
)

// SetupShowtimeRoutes configures the public showtime read surface
func SetupShowtimeRoutes(rg *gin.RouterGroup, controller *Controller) {
	showtimes := rg.Group("/showtimes")
	{
		showtimes.GET("", controller.ListShowtimes)             // GET /api/v1/showtimes
		showtimes.GET("/:id", controller.GetShowtime)           // GET /api/v1/showtimes/:id
		showtimes.GET("/:id/seats", controller.GetAvailableSeats) // GET /api/v1/showtimes/:id/seats
	}
}
