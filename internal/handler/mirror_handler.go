package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edupay-api/internal/mirror"
	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
	"github.com/noah-isme/edupay-api/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MirrorHandler streams the xlsx mirror workbooks.
type MirrorHandler struct {
	store *mirror.Store
}

func NewMirrorHandler(store *mirror.Store) *MirrorHandler {
	return &MirrorHandler{store: store}
}

// Download serves one of the known workbooks by file name. Unknown
// names 404 without touching the filesystem.
func (h *MirrorHandler) Download(c *gin.Context) {
	name := c.Param("file")

	f, err := h.store.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("file %q not found", name)))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat file"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.DataFromReader(http.StatusOK, info.Size(), xlsxContentType, f, nil)
}
