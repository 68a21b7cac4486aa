package handlers

import (
	"github.com/dimitrije/tasker-api/internal/middleware"
	"github.com/dimitrije/tasker-api/internal/services"
	"github.com/dimitrije/tasker-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type TeamHandler struct {
	teamService TeamServiceInterface
	log         *zap.Logger
}

func NewTeamHandler(teamService TeamServiceInterface, log *zap.Logger) *TeamHandler {
	return &TeamHandler{teamService: teamService, log: log}
}

func (h *TeamHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), userID, req.Name, req.Members)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(201, toTeamResponse(team, userID))
}

func (h *TeamHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teams, err := h.teamService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := make([]dto.TeamResponse, len(teams))
	for i := range teams {
		response[i] = toTeamResponse(&teams[i], userID)
	}

	_ = c.JSON(200, response)
}

func (h *TeamHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "teamId", "team")
	if !ok {
		return
	}

	team, err := h.teamService.Get(c.Request.Context(), userID, teamID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toTeamResponse(team, userID))
}

func (h *TeamHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "teamId", "team")
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	team, err := h.teamService.Update(c.Request.Context(), userID, teamID, services.TeamUpdate{
		Name:    req.Name,
		Members: req.Members,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toTeamResponse(team, userID))
}

func (h *TeamHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "teamId", "team")
	if !ok {
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), userID, teamID); err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "team deleted"})
}

func (h *TeamHandler) GetMembers(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "teamId", "team")
	if !ok {
		return
	}

	members, err := h.teamService.Members(c.Request.Context(), userID, teamID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := make([]dto.UserResponse, len(members))
	for i := range members {
		response[i] = toUserResponse(&members[i])
	}

	_ = c.JSON(200, response)
}
