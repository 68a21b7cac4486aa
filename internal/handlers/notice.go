package handlers

import (
	"github.com/dimitrije/tasker-api/internal/middleware"
	"github.com/dimitrije/tasker-api/internal/sse"
	"github.com/dimitrije/tasker-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type NoticeHandler struct {
	noticeService NoticeServiceInterface
	hub           NoticeHubInterface
	log           *zap.Logger
}

func NewNoticeHandler(noticeService NoticeServiceInterface, hub NoticeHubInterface, log *zap.Logger) *NoticeHandler {
	return &NoticeHandler{
		noticeService: noticeService,
		hub:           hub,
		log:           log,
	}
}

func (h *NoticeHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, ok := parseUUIDParam(c, "teamId", "team")
	if !ok {
		return
	}

	notices, err := h.noticeService.ListForReceiver(c.Request.Context(), userID, teamID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := make([]dto.NoticeResponse, len(notices))
	for i := range notices {
		response[i] = toNoticeResponse(&notices[i])
	}

	_ = c.JSON(200, response)
}

// Events streams the caller's new notices until the client disconnects.
func (h *NoticeHandler) Events(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &sse.Client{
		ID:     clientID,
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	h.log.Debug("notice stream opened",
		zap.String("client_id", clientID),
		zap.String("user_id", userID.String()),
	)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
	}, "system", ""); err != nil {
		return
	}

	done := c.Request.Context().Done()
	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
