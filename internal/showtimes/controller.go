package showtimes

import (
	"net/http"

	"cinebook/internal/seats"
	"cinebook/internal/shared/apperrors"
	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service     Service
	seatService seats.Service
}

func NewController(service Service, seatService seats.Service) *Controller {
	return &Controller{
		service:     service,
		seatService: seatService,
	}
}

// ListShowtimes handles GET /api/v1/showtimes
func (c *Controller) ListShowtimes(ctx *gin.Context) {
	list, err := c.service.ListShowtimes(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Showtimes retrieved successfully", gin.H{
		"showtimes": list,
		"count":     len(list),
	})
}

// GetShowtime handles GET /api/v1/showtimes/:id
func (c *Controller) GetShowtime(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("invalid showtime ID"))
		return
	}

	showtime, err := c.service.GetShowtime(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Showtime retrieved successfully", showtime)
}

// GetAvailableSeats handles GET /api/v1/showtimes/:id/seats
func (c *Controller) GetAvailableSeats(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("invalid showtime ID"))
		return
	}

	availability, err := c.seatService.GetAvailableSeats(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat availability retrieved successfully", availability)
}
