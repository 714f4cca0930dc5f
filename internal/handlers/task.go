package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/etams/internal/dto"
	apierrors "github.com/yukikurage/etams/internal/errors"
	"github.com/yukikurage/etams/internal/middleware"
	"github.com/yukikurage/etams/internal/models"
	"github.com/yukikurage/etams/internal/services"
	"github.com/yukikurage/etams/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// taskRequest is the task body. The assignee may arrive as a scalar
// assignedEmployeeId or as a nested assignedEmployee object; both stay raw
// until normalization.
type taskRequest struct {
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Status             models.TaskStatus `json:"status"`
	Deadline           string            `json:"deadline"`
	AssignedEmployeeID any               `json:"assignedEmployeeId"`
	AssignedEmployee   any               `json:"assignedEmployee"`
}

func (r taskRequest) input() services.TaskInput {
	raw := r.AssignedEmployeeID
	if raw == nil {
		if nested, ok := r.AssignedEmployee.(map[string]any); ok {
			raw = nested["id"]
		}
	}
	return services.TaskInput{
		Title:              r.Title,
		Description:        r.Description,
		Status:             r.Status,
		Deadline:           r.Deadline,
		AssignedEmployeeID: raw,
	}
}

// ListTasks returns all tasks for admins and the caller's own tasks otherwise
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, exists := middleware.CurrentActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var pagination *utils.PaginationParams
	if params, ok := utils.GetPaginationParams(c); ok {
		pagination = &params
	}

	tasks, total, err := h.taskService.ListTasks(actor, pagination)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SetTotalHeader(c, total)
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListTasksByEmployee returns the tasks assigned to one employee
func (h *TaskHandler) ListTasksByEmployee(c *gin.Context) {
	employeeID, ok := parseIDParam(c, "employeeId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksByEmployee(employeeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
// Task is already loaded by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, exists := middleware.CurrentActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(actor, task.ID, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// GenerateTasks drafts tasks from free text. Nothing is saved.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.taskService.GenerateTasks(c.Request.Context(), services.GenerateTasksInput{Text: req.Text})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": drafts,
	})
}
