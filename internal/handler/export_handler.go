package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edupay-api/internal/service"
	"github.com/noah-isme/edupay-api/pkg/response"
)

// ExportHandler exposes the admin export downloads.
type ExportHandler struct {
	exports *service.ExportService
}

func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Download renders the requested entity as CSV or PDF and streams it as
// an attachment.
func (h *ExportHandler) Download(c *gin.Context) {
	entity := c.Param("entity")
	format := c.Query("format")

	file, err := h.exports.Render(c.Request.Context(), entity, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
