package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/services"
	"github.com/yoockh/folio/internal/utils"
)

type UploadHandler struct {
	svc services.UploadService
}

func NewUploadHandler(svc services.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// multipart framing on top of the file itself
const uploadOverhead = 1 << 20

func (h *UploadHandler) Upload(c *gin.Context) {
	const op = "UploadHandler.Upload"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadSize+uploadOverhead)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, utils.Invalid(op, map[string]string{"file": "File must be at most 5 MB"}))
			return
		}
		writeError(c, utils.Invalid(op, map[string]string{"file": "This field is required"}))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to read file", err))
		return
	}
	defer f.Close()

	u, err := h.svc.Upload(c.Request.Context(), userID, fh.Filename, f)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, u)
}
