package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/services"
)

type ContactHandler struct {
	svc services.ContactService
}

func NewContactHandler(svc services.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Send(c *gin.Context) {
	var req services.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ContactHandler.Send", err)
		return
	}

	if err := h.svc.Send(c.Request.Context(), c.ClientIP(), req); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"sent": true})
}
