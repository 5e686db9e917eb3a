package article

import (
	"github.com/gin-gonic/gin"
	"github.com/groupmirror/core/internal/pkg/pagination"
	"github.com/groupmirror/core/internal/pkg/response"
)

// Handler exposes read-only admin access to imported articles. Publishing
// and editing happen elsewhere; this surface exists so an operator can see
// what the importer produced.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/articles", authMW)
	g.GET("", h.list)
	g.GET("/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	articles, pag, err := h.svc.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, articles, pag)
}

func (h *Handler) get(c *gin.Context) {
	art, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if art == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, art)
}
