package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	allocationdomain "github.com/smallbiznis/motorpool/internal/allocation/domain"
)

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware translates domain errors into the HTTP contract:
// a status code plus a human-readable detail string.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, detail := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{"detail": detail})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, allocationdomain.ErrInvalidID):
		return http.StatusBadRequest, "Invalid allocation ID."
	case errors.Is(err, allocationdomain.ErrVehicleAllocated):
		return http.StatusBadRequest, "Vehicle already allocated for this date."
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "Invalid request body."
	case errors.Is(err, allocationdomain.ErrNotFound):
		return http.StatusNotFound, "Allocation not found."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}
