package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deepanshu-striker/inter-chat/internal/core"
	"github.com/deepanshu-striker/inter-chat/internal/models"
)

// UserHandler handles account and plan endpoints.
type UserHandler struct {
	quota core.QuotaService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(quota core.QuotaService) *UserHandler {
	return &UserHandler{quota: quota}
}

// RegisterOrLogin handles POST /register_or_login. Called after client-side
// Firebase authentication to make sure a backend account exists; the first
// call for a UID creates it on the free plan.
func (h *UserHandler) RegisterOrLogin(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	user, created, err := h.quota.EnsureUser(c.Request.Context(), req.ExternalUserID, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, models.NewUserStatusResponse(user))
}

// GetStatus handles GET /user/:userId/status.
func (h *UserHandler) GetStatus(c *gin.Context) {
	userID := c.Param("userId")
	user, err := h.quota.Status(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserStatusResponse(user))
}

// SelectPlan handles POST /user/:userId/select_plan.
func (h *UserHandler) SelectPlan(c *gin.Context) {
	userID := c.Param("userId")

	var req models.SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	user, err := h.quota.SelectPlan(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserStatusResponse(user))
}
