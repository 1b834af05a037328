package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deepanshu-striker/inter-chat/internal/core"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message
	Details string `json:"details,omitempty"` // More specific details, if available
}

// respondServiceError maps core sentinel errors onto HTTP status codes.
// Expected user-facing conditions get distinct client codes; store and
// upstream failures surface as server errors.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
	case errors.Is(err, core.ErrInvalidPlan):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown plan id"})
	case errors.Is(err, core.ErrQuotaExceeded):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Response limit reached", Details: "Upgrade your plan to continue."})
	case errors.Is(err, core.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "User store unavailable"})
	case errors.Is(err, core.ErrAgentUnavailable):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Agent request failed", Details: err.Error()})
	case errors.Is(err, core.ErrTranscriptionFailed):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Transcription failed", Details: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Details: err.Error()})
	}
}
