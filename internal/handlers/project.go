package handlers

import (
	"strconv"

	"github.com/dimitrije/tasker-api/internal/middleware"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/dimitrije/tasker-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService ProjectServiceInterface
	log            *zap.Logger
}

func NewProjectHandler(projectService ProjectServiceInterface, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, log: log}
}

func (h *ProjectHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.TeamID == uuid.Nil {
		c.BadRequest("team_id is required")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), userID, req.TeamID, req.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(201, toProjectResponse(project))
}

func (h *ProjectHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.QueryParam("team_id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	status := models.ProjectActive
	if raw := c.QueryParam("status"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.BadRequest("invalid status")
			return
		}
		status = models.ProjectStatus(n)
	}

	projects, err := h.projectService.List(c.Request.Context(), userID, teamID, status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		response[i] = toProjectSummaryResponse(&projects[i])
	}

	_ = c.JSON(200, response)
}

func (h *ProjectHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toProjectSummaryResponse(project))
}

func (h *ProjectHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), userID, projectID, req.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toProjectResponse(project))
}

func (h *ProjectHandler) UpdateStatus(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	var req dto.UpdateProjectStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Status == nil {
		c.BadRequest("status is required")
		return
	}

	project, err := h.projectService.UpdateStatus(c.Request.Context(), userID, projectID, models.ProjectStatus(*req.Status))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toProjectResponse(project))
}

func (h *ProjectHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), userID, projectID); err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "project deleted"})
}

// Summary returns daily done/approved counts for the last week. object=1
// narrows the counts to tasks the caller owns or reviews.
func (h *ProjectHandler) Summary(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	var mine bool
	switch c.QueryParam("object") {
	case "", "0":
	case "1":
		mine = true
	default:
		c.BadRequest("invalid object")
		return
	}

	counts, err := h.projectService.Summary(c.Request.Context(), userID, projectID, mine)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, counts)
}

func (h *ProjectHandler) Stats(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, ok := parseUUIDParam(c, "projectId", "project")
	if !ok {
		return
	}

	stats, err := h.projectService.UserStats(c.Request.Context(), userID, projectID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, stats)
}
