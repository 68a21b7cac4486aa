package handlers

import (
	"errors"
	"time"

	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/dimitrije/tasker-api/internal/services"
	"github.com/dimitrije/tasker-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

// writeError maps service errors onto HTTP statuses. Anything that is not a
// *services.Error is logged and reported as 500.
func writeError(c *drift.Context, log *zap.Logger, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.NotFound(svcErr.Msg)
			return
		case errors.Is(err, services.ErrForbidden):
			c.Forbidden(svcErr.Msg)
			return
		case errors.Is(err, services.ErrBadRequest):
			c.BadRequest(svcErr.Msg)
			return
		case errors.Is(err, services.ErrUnauthorized):
			c.Unauthorized(svcErr.Msg)
			return
		}
	}

	log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.InternalServerError("internal server error")
}

func parseUUIDParam(c *drift.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.BadRequest("invalid " + label + " id")
		return uuid.Nil, false
	}
	return id, true
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     u.ID,
		Phone:  u.Phone,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Sex:    int(u.Sex),
	}
}

func toTeamResponse(t *models.Team, uid uuid.UUID) dto.TeamResponse {
	members := []uuid.UUID(t.Members)
	if members == nil {
		members = []uuid.UUID{}
	}
	return dto.TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatorID: t.CreatorID,
		Members:   members,
		IsCreator: t.CreatorID == uid,
	}
}

func toProjectResponse(p *models.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		TeamID:    p.TeamID,
		Status:    int(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func toProjectSummaryResponse(p *models.ProjectSummary) dto.ProjectResponse {
	resp := toProjectResponse(&p.Project)
	resp.Summary = &dto.TaskCountSummary{Total: p.Total, Done: p.Done}
	return resp
}

func toTaskResponse(t *models.Task) dto.TaskResponse {
	owners := []uuid.UUID(t.OwnerIDs)
	if owners == nil {
		owners = []uuid.UUID{}
	}
	return dto.TaskResponse{
		ID:               t.ID,
		Title:            t.Title,
		Content:          t.Content,
		ProjectID:        t.ProjectID,
		CreatorID:        t.CreatorID,
		ProcessTypeID:    t.ProcessTypeID,
		Priority:         t.Priority,
		StartTime:        t.StartTime,
		EndTime:          t.EndTime,
		ReviewerID:       t.ReviewerID,
		OwnerIDs:         owners,
		Status:           int(t.Status),
		DoneTaskTime:     t.DoneTaskTime,
		ApprovedTaskTime: t.ApprovedTaskTime,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toNoticeResponse(n *models.TaskLog) dto.NoticeResponse {
	return dto.NoticeResponse{
		ID:          n.ID,
		Type:        int(n.Type),
		Status:      int(n.Status),
		Editor:      n.EditorName,
		ProjectID:   n.ProjectID,
		ProjectName: n.ProjectName,
		TaskID:      n.TaskID,
		TaskTitle:   n.TaskTitle,
		CreateTime:  n.CreatedAt.Format(time.DateTime),
	}
}
