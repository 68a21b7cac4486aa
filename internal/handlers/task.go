package handlers

import (
	"strconv"

	"github.com/dimitrije/tasker-api/internal/middleware"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/dimitrije/tasker-api/internal/services"
	"github.com/dimitrije/tasker-api/internal/workflow"
	"github.com/dimitrije/tasker-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService TaskServiceInterface
	log         *zap.Logger
}

func NewTaskHandler(taskService TaskServiceInterface, log *zap.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, log: log}
}

func (h *TaskHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.ProjectID == uuid.Nil {
		c.BadRequest("project_id is required")
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), userID, services.TaskInput{
		ProjectID:     req.ProjectID,
		Title:         req.Title,
		Content:       req.Content,
		ProcessTypeID: req.ProcessTypeID,
		Priority:      req.Priority,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		ReviewerID:    req.ReviewerID,
		OwnerIDs:      req.OwnerIDs,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(201, toTaskResponse(task))
}

// List applies the task filter: status, object (0 all, 1 mine), order_by and
// order_method.
func (h *TaskHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.QueryParam("project_id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	filter := workflow.TaskFilter{
		OrderBy:  c.QueryParam("order_by"),
		OrderDir: c.QueryParam("order_method"),
	}

	if raw := c.QueryParam("status"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.BadRequest("invalid status")
			return
		}
		status := models.TaskStatus(n)
		filter.Status = &status
	}

	if raw := c.QueryParam("object"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.BadRequest("invalid object")
			return
		}
		filter.Scope = workflow.Scope(n)
	}

	tasks, err := h.taskService.List(c.Request.Context(), userID, projectID, filter)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i])
	}

	_ = c.JSON(200, response)
}

func (h *TaskHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, ok := parseUUIDParam(c, "taskId", "task")
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), userID, taskID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toTaskResponse(task))
}

func (h *TaskHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, ok := parseUUIDParam(c, "taskId", "task")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), userID, taskID, services.TaskUpdate{
		Title:         req.Title,
		Content:       req.Content,
		ProcessTypeID: req.ProcessTypeID,
		Priority:      req.Priority,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		ReviewerID:    req.ReviewerID,
		OwnerIDs:      req.OwnerIDs,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toTaskResponse(task))
}

func (h *TaskHandler) UpdateStatus(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, ok := parseUUIDParam(c, "taskId", "task")
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Status == nil {
		c.BadRequest("status is required")
		return
	}

	task, err := h.taskService.UpdateStatus(c.Request.Context(), userID, taskID, models.TaskStatus(*req.Status))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toTaskResponse(task))
}

func (h *TaskHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, ok := parseUUIDParam(c, "taskId", "task")
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), userID, taskID); err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "task deleted"})
}
