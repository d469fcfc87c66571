package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindermate/notification-scheduler/internal/app"
)

type TaskHandler struct {
	useCase app.TaskUseCase
}

func NewTaskHandler(useCase app.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		useCase: useCase,
	}
}

type CreateTaskRequest struct {
	TaskType     string `json:"task_type" binding:"required"`
	Title        string `json:"title"`
	Text         string `json:"text" binding:"required"`
	Date         string `json:"date" binding:"required"`
	DisplayTime  string `json:"display_time"`
	ReminderTime string `json:"reminder_time"`
}

type ListTasksRequest struct {
	Date string `form:"date" binding:"required"`
}

type UpdateCompletionRequest struct {
	// Completed is optional; omitting it toggles the current state.
	Completed *bool `json:"completed"`
}

type TasksResponse struct {
	Tasks []app.TaskOutput `json:"tasks"`
	Count int              `json:"count"`
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)

		return
	}

	input := app.CreateTaskInput{
		UserID:       AuthenticatedUserID(c),
		TaskType:     req.TaskType,
		Title:        req.Title,
		Text:         req.Text,
		Date:         req.Date,
		DisplayTime:  req.DisplayTime,
		ReminderTime: req.ReminderTime,
	}

	output, err := h.useCase.CreateTask(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)

		return
	}

	slog.Info("task created via API",
		"task_id", output.ID,
	)
	c.JSON(http.StatusCreated, output)
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	var req ListTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)

		return
	}

	input := app.ListTasksInput{
		UserID: AuthenticatedUserID(c),
		Date:   req.Date,
	}

	outputs, err := h.useCase.ListTasksByDate(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, TasksResponse{
		Tasks: outputs,
		Count: len(outputs),
	})
}

func (h *TaskHandler) UpdateCompletion(c *gin.Context) {
	var req UpdateCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)

		return
	}

	input := app.UpdateTaskCompletionInput{
		UserID:    AuthenticatedUserID(c),
		TaskID:    c.Param("id"),
		Completed: req.Completed,
	}

	output, err := h.useCase.UpdateTaskCompletion(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	input := app.DeleteTaskInput{
		UserID: AuthenticatedUserID(c),
		TaskID: c.Param("id"),
	}

	if err := h.useCase.DeleteTask(c.Request.Context(), input); err != nil {
		handleError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.PATCH("/:id/completion", h.UpdateCompletion)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}
