package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindermate/notification-scheduler/internal/app"
)

type NotificationHandler struct {
	useCase app.NotificationUseCase
}

func NewNotificationHandler(useCase app.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		useCase: useCase,
	}
}

type TokenRequest struct {
	FCMToken string `json:"fcm_token" binding:"required"`
}

type DispatchResponse struct {
	Success      bool   `json:"success"`
	SuccessCount int    `json:"success_count"`
	FailureCount int    `json:"failure_count"`
	Error        string `json:"error,omitempty"`
}

func (h *NotificationHandler) RegisterToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)

		return
	}

	input := app.RegisterTokenInput{
		UserID:   AuthenticatedUserID(c),
		FCMToken: req.FCMToken,
	}

	if err := h.useCase.RegisterToken(c.Request.Context(), input); err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) UnregisterToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)

		return
	}

	input := app.UnregisterTokenInput{
		UserID:   AuthenticatedUserID(c),
		FCMToken: req.FCMToken,
	}

	if err := h.useCase.UnregisterToken(c.Request.Context(), input); err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) SendTestNotification(c *gin.Context) {
	userID := AuthenticatedUserID(c)

	slog.Info("handling test notification request",
		"user_id", userID,
	)

	outcome, err := h.useCase.SendTestNotification(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, DispatchResponse{
		Success:      outcome.Success,
		SuccessCount: outcome.SuccessCount,
		FailureCount: outcome.FailureCount,
		Error:        outcome.Error,
	})
}

// SendTaskReminder pushes one task's reminder now, regardless of its
// scheduled minute.
func (h *NotificationHandler) SendTaskReminder(c *gin.Context) {
	input := app.SendTaskReminderInput{
		TaskID: c.Param("taskId"),
		UserID: AuthenticatedUserID(c),
	}

	outcome, err := h.useCase.SendTaskReminder(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, DispatchResponse{
		Success:      outcome.Success,
		SuccessCount: outcome.SuccessCount,
		FailureCount: outcome.FailureCount,
		Error:        outcome.Error,
	})
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.POST("/register-token", h.RegisterToken)
		notifications.POST("/unregister-token", h.UnregisterToken)
		notifications.POST("/test", h.SendTestNotification)
		notifications.POST("/schedule/:taskId", h.SendTaskReminder)
	}
}
