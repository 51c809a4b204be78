package response

import (
	"cinebook/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Success writes a success envelope with the given payload.
func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// Error maps a domain error to its HTTP response. Typed errors carry their own
// status and message; anything else becomes an opaque 500.
func Error(c *gin.Context, err error) {
	RespondJSON(c, "error", apperrors.StatusOf(err), apperrors.MessageOf(err), nil, gin.H{
		"code": apperrors.CodeOf(err),
	})
}
