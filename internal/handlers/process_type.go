package handlers

import (
	"strconv"

	"github.com/dimitrije/tasker-api/internal/middleware"
	"github.com/dimitrije/tasker-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type ProcessTypeHandler struct {
	processTypeService ProcessTypeServiceInterface
	log                *zap.Logger
}

func NewProcessTypeHandler(processTypeService ProcessTypeServiceInterface, log *zap.Logger) *ProcessTypeHandler {
	return &ProcessTypeHandler{processTypeService: processTypeService, log: log}
}

func (h *ProcessTypeHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateProcessTypeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.TeamID == uuid.Nil {
		c.BadRequest("team_id is required")
		return
	}

	pt, err := h.processTypeService.Create(c.Request.Context(), userID, req.TeamID, req.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(201, dto.ProcessTypeResponse{ID: pt.ID, Name: pt.Name, TeamID: pt.TeamID})
}

func (h *ProcessTypeHandler) List(c *drift.Context) {
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

	types, err := h.processTypeService.List(c.Request.Context(), userID, teamID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := make([]dto.ProcessTypeResponse, len(types))
	for i, pt := range types {
		response[i] = dto.ProcessTypeResponse{ID: pt.ID, Name: pt.Name, TeamID: pt.TeamID}
	}

	_ = c.JSON(200, response)
}

func (h *ProcessTypeHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.BadRequest("invalid process type id")
		return
	}

	if err := h.processTypeService.Delete(c.Request.Context(), userID, id); err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "process type deleted"})
}
