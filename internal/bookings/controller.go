package bookings

import (
	"net/http"

	"cinebook/internal/shared/apperrors"
	"cinebook/internal/shared/utils/response"
	"cinebook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, _, err := currentUser(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, apperrors.Validation(err.Error()))
		return
	}

	checkout, err := c.service.StartCheckout(ctx.Request.Context(), userID, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Checkout session created", checkout)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, role, err := currentUser(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("invalid booking id"))
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, userID, role)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Booking retrieved successfully", booking)
}

// GetUserBookings handles GET /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, _, err := currentUser(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	bookings, err := c.service.GetUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// UpdateBooking handles PUT /api/v1/bookings/:id
func (c *Controller) UpdateBooking(ctx *gin.Context) {
	userID, _, err := currentUser(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("invalid booking id"))
		return
	}

	var req UpdateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, apperrors.Validation(err.Error()))
		return
	}

	booking, err := c.service.UpdateBooking(ctx.Request.Context(), bookingID, userID, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Booking updated successfully", booking)
}

// CancelBooking handles DELETE /api/v1/bookings/:id
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, _, err := currentUser(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("invalid booking id"))
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Booking cancelled successfully", booking)
}

// TicketQR handles GET /api/v1/bookings/:id/qr
func (c *Controller) TicketQR(ctx *gin.Context) {
	userID, role, err := currentUser(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("invalid booking id"))
		return
	}

	png, err := c.service.TicketQR(ctx.Request.Context(), bookingID, userID, role)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// ScanTicket handles GET /api/v1/reception/scan?code=
func (c *Controller) ScanTicket(ctx *gin.Context) {
	scan, err := c.service.MarkUsedByTicketCode(ctx.Request.Context(), ctx.Query("code"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	message := "Ticket accepted"
	if scan.AlreadyUsed {
		message = "Ticket was already used"
	}
	response.Success(ctx, http.StatusOK, message, scan)
}

// ReceptionGetBooking handles GET /api/v1/reception/bookings/:id
func (c *Controller) ReceptionGetBooking(ctx *gin.Context) {
	userID, role, err := currentUser(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("invalid booking id"))
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, userID, role)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Booking retrieved successfully", booking)
}

// currentUser extracts the authenticated user from the JWT context set by the
// auth middleware
func currentUser(ctx *gin.Context) (uuid.UUID, users.Role, error) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, "", apperrors.Forbidden("user not authenticated")
	}

	userIDStr, ok := raw.(string)
	if !ok {
		return uuid.Nil, "", apperrors.Internal("invalid user id in token", nil)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, "", apperrors.Validation("invalid user id")
	}

	role := users.RoleCustomer
	if rawRole, ok := ctx.Get("user_role"); ok {
		if roleStr, ok := rawRole.(string); ok && roleStr != "" {
			role = users.Role(roleStr)
		}
	}

	return userID, role, nil
}
