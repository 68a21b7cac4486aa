package handlers

import (
	"github.com/dimitrije/tasker-api/internal/middleware"
	"github.com/dimitrije/tasker-api/internal/services"
	"github.com/dimitrije/tasker-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type CommonHandler struct {
	uploadService UploadServiceInterface
	searchService SearchServiceInterface
	log           *zap.Logger
}

func NewCommonHandler(uploadService UploadServiceInterface, searchService SearchServiceInterface, log *zap.Logger) *CommonHandler {
	return &CommonHandler{
		uploadService: uploadService,
		searchService: searchService,
		log:           log,
	}
}

func (h *CommonHandler) Upload(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := c.Request.ParseMultipartForm(services.MaxUploadSize); err != nil {
		c.BadRequest("invalid multipart form")
		return
	}

	_, header, err := c.Request.FormFile("file")
	if err != nil {
		c.BadRequest("file is required")
		return
	}

	file, err := h.uploadService.Save(header)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info("file uploaded",
		zap.String("user_id", userID.String()),
		zap.String("url", file.URL),
		zap.Int64("size", file.Size),
	)

	_ = c.JSON(201, file)
}

func (h *CommonHandler) Search(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), userID, c.QueryParam("keyword"), c.QueryParam("type"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := dto.SearchResponse{
		Projects: make([]dto.ProjectResponse, len(result.Projects)),
		Tasks:    make([]dto.TaskResponse, len(result.Tasks)),
	}
	for i := range result.Projects {
		response.Projects[i] = toProjectResponse(&result.Projects[i])
	}
	for i := range result.Tasks {
		response.Tasks[i] = toTaskResponse(&result.Tasks[i])
	}

	_ = c.JSON(200, response)
}
