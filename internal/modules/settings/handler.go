package settings

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/groupmirror/core/internal/modules/classifier"
	"github.com/groupmirror/core/internal/pkg/response"
)

// Handler exposes the operator write path for import settings and the
// keyword table.
type Handler struct {
	svc *Service

	// OnUpdate is called after a successful settings patch so the app can
	// reschedule the import job when the interval changed.
	OnUpdate func(ImportSettings)
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/import", authMW)
	g.GET("/settings", h.getSettings)
	g.PATCH("/settings", h.patchSettings)
	g.GET("/keywords", h.getKeywords)
	g.PUT("/keywords", h.putKeywords)
}

func (h *Handler) getSettings(c *gin.Context) {
	cfg, err := h.svc.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cfg)
}

func (h *Handler) patchSettings(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updated, err := h.svc.Update(patch)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if h.OnUpdate != nil {
		h.OnUpdate(updated)
	}
	response.OK(c, updated)
}

func (h *Handler) getKeywords(c *gin.Context) {
	rules, err := h.svc.KeywordRules()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	rows := make([]keywordRowDTO, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, keywordRowDTO{
			Category:    r.Category,
			Subcategory: r.Subcategory,
			Keywords:    strings.Join(r.Keywords, ", "),
		})
	}
	response.OK(c, rows)
}

// keywordRowDTO matches the admin table: one row per (category,
// subcategory) with a free-text comma-separated keyword list.
type keywordRowDTO struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Keywords    string `json:"keywords"`
}

func (h *Handler) putKeywords(c *gin.Context) {
	var rows []keywordRowDTO
	if err := c.ShouldBindJSON(&rows); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rules := make([]classifier.KeywordRule, 0, len(rows))
	for _, row := range rows {
		keywords := SplitKeywords(row.Keywords)
		if row.Subcategory == "" || len(keywords) == 0 {
			continue
		}
		rules = append(rules, classifier.KeywordRule{
			Category:    strings.TrimSpace(row.Category),
			Subcategory: strings.TrimSpace(row.Subcategory),
			Keywords:    keywords,
		})
	}

	if err := h.svc.ReplaceKeywordRules(rules); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": len(rules)})
}

// SplitKeywords turns the admin form's comma-separated keyword string into
// a trimmed list, dropping empties.
func SplitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
