package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/services"
)

type OrganizationHandler struct {
	svc services.OrganizationService
}

func NewOrganizationHandler(svc services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

func (h *OrganizationHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	org, err := h.svc.EnsureMine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, org)
}

func (h *OrganizationHandler) Rename(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.RenameOrganizationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "OrganizationHandler.Rename", err)
		return
	}

	org, err := h.svc.Rename(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, org)
}
