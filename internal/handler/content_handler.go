package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edupay-api/internal/service"
	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
	"github.com/noah-isme/edupay-api/pkg/response"
)

// ContentHandler exposes the learning-content metadata endpoints.
type ContentHandler struct {
	contents *service.ContentService
}

func NewContentHandler(contents *service.ContentService) *ContentHandler {
	return &ContentHandler{contents: contents}
}

// List returns all learning content, newest first.
func (h *ContentHandler) List(c *gin.Context) {
	contents, err := h.contents.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contents)
}

// Register stores metadata for an asset the client already uploaded to
// the media host.
func (h *ContentHandler) Register(c *gin.Context) {
	var req service.RegisterContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	content, err := h.contents.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, content)
}

// Upload receives a multipart file, pushes it to the media host and
// stores the resulting metadata.
func (h *ContentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable file"))
		return
	}
	defer file.Close()

	req := service.UploadContentRequest{
		Title:         c.PostForm("title"),
		MIMEType:      fileHeader.Header.Get("Content-Type"),
		FileName:      fileHeader.Filename,
		UploadedBy:    c.PostForm("uploaded_by"),
		UploaderEmail: c.PostForm("uploader_email"),
	}
	if desc := c.PostForm("description"); desc != "" {
		req.Description = &desc
	}
	if ext := c.PostForm("external_id"); ext != "" {
		req.ExternalID = &ext
	}

	content, err := h.contents.Upload(c.Request.Context(), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, content)
}

// Delete removes content metadata and schedules the remote asset for
// best-effort cleanup.
func (h *ContentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid content id"))
		return
	}
	if err := h.contents.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true, "message": "content deleted"})
}
