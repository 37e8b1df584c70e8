package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

type MediaHandler struct {
	mediaService service.MediaService
	log          logging.Logger
}

func NewMediaHandler(mediaService service.MediaService, log logging.Logger) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, log: log}
}

type UploadURLRequest struct {
	Kind        service.MediaKind `json:"kind" binding:"required,oneof=image video audio"`
	ContentType string            `json:"contentType" binding:"required"`
}

type ConfirmUploadRequest struct {
	Kind      service.MediaKind `json:"kind" binding:"required,oneof=image video audio"`
	ObjectKey string            `json:"objectKey" binding:"required"`
}

type ObjectKeyRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// RequestUploadURL godoc
// @Summary Presigned upload URL for plan media
// @Description The client PUTs the file to uploadUrl, then confirms with the returned objectKey.
// @Tags Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param request body UploadURLRequest true "Media kind and content type"
// @Success 200 {object} service.UploadURLResponse
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /plans/{planId}/media/upload-url [post]
func (h *MediaHandler) RequestUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.mediaService.RequestUploadURL(c.Request.Context(), c.Param("planId"), req.Kind, req.ContentType)
	if err != nil {
		respondError(c, h.log, err, "Failed to generate upload URL.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmUpload godoc
// @Summary Attach an uploaded object to the plan
// @Tags Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param request body ConfirmUploadRequest true "Uploaded object"
// @Success 200 {object} domain.WorkoutPlan
// @Router /plans/{planId}/media [post]
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	var req ConfirmUploadRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.mediaService.ConfirmUpload(c.Request.Context(), c.Param("planId"), req.Kind, req.ObjectKey)
	if err != nil {
		respondError(c, h.log, err, "Failed to attach media.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DownloadURL godoc
// @Summary Presigned download URL for a media object
// @Tags Media
// @Produce json
// @Security BearerAuth
// @Param key query string true "Object key"
// @Success 200 {object} gin.H "downloadUrl"
// @Router /media/download-url [get]
func (h *MediaHandler) DownloadURL(c *gin.Context) {
	u, err := h.mediaService.DownloadURL(c.Request.Context(), c.Query("key"))
	if err != nil {
		respondError(c, h.log, err, "Failed to generate download URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": u})
}

// DeleteMedia godoc
// @Summary Delete a media object and detach it from the plan
// @Tags Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param request body ObjectKeyRequest true "Object key"
// @Success 200 {object} domain.WorkoutPlan
// @Router /plans/{planId}/media [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	var req ObjectKeyRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.mediaService.Delete(c.Request.Context(), c.Param("planId"), req.ObjectKey)
	if err != nil {
		respondError(c, h.log, err, "Failed to delete media.")
		return
	}
	c.JSON(http.StatusOK, plan)
}
