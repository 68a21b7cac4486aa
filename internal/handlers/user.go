package handlers

import (
	"github.com/dimitrije/tasker-api/internal/middleware"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/dimitrije/tasker-api/internal/services"
	"github.com/dimitrije/tasker-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService UserServiceInterface
	log         *zap.Logger
}

func NewUserHandler(userService UserServiceInterface, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	upd := services.UserUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	}
	if req.Sex != nil {
		sex := models.Sex(*req.Sex)
		upd.Sex = &sex
	}

	user, err := h.userService.Update(c.Request.Context(), userID, upd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, toUserResponse(user))
}

func (h *UserHandler) Search(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	users, err := h.userService.Search(c.Request.Context(), c.QueryParam("keyword"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i := range users {
		response[i] = toUserResponse(&users[i])
	}

	_ = c.JSON(200, response)
}
