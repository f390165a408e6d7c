package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/services"
)

// SectionHandler serves one repeated section kind under /api/portfolios/:id/<kind>.
type SectionHandler[T any, PT interface {
	*T
	models.Section
}] struct {
	kind string
	svc  services.SectionService[T, PT]
}

func NewSectionHandler[T any, PT interface {
	*T
	models.Section
}](kind string, svc services.SectionService[T, PT]) *SectionHandler[T, PT] {
	return &SectionHandler[T, PT]{kind: kind, svc: svc}
}

// Register mounts the section routes on a group rooted at /api/portfolios/:id.
func (h *SectionHandler[T, PT]) Register(g *gin.RouterGroup) {
	base := "/" + h.kind
	g.GET(base, h.List)
	g.POST(base, h.Add)
	g.PUT(base+"/order", h.Reorder)
	g.PUT(base+"/:itemId", h.Update)
	g.DELETE(base+"/:itemId", h.Remove)
	g.POST(base+"/:itemId/toggle", h.Toggle)
}

func (h *SectionHandler[T, PT]) op(method string) string {
	return "SectionHandler[" + h.kind + "]." + method
}

func (h *SectionHandler[T, PT]) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (h *SectionHandler[T, PT]) Add(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	item := PT(new(T))
	item.Item().Visible = true
	if err := c.ShouldBindJSON(item); err != nil {
		badRequest(c, h.op("Add"), err)
		return
	}

	out, err := h.svc.Add(c.Request.Context(), userID, c.Param("id"), item)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, out)
}

func (h *SectionHandler[T, PT]) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	item := PT(new(T))
	if err := c.ShouldBindJSON(item); err != nil {
		badRequest(c, h.op("Update"), err)
		return
	}

	out, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), c.Param("itemId"), item)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h *SectionHandler[T, PT]) Remove(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Remove(c.Request.Context(), userID, c.Param("id"), c.Param("itemId")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": c.Param("itemId")})
}

func (h *SectionHandler[T, PT]) Toggle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	out, err := h.svc.ToggleVisibility(c.Request.Context(), userID, c.Param("id"), c.Param("itemId"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func (h *SectionHandler[T, PT]) Reorder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.op("Reorder"), err)
		return
	}

	items, err := h.svc.Reorder(c.Request.Context(), userID, c.Param("id"), req.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, items)
}
