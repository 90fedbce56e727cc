package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raphalinka/bomator/internal/bom"
	"github.com/raphalinka/bomator/internal/config"
	"github.com/raphalinka/bomator/internal/export"
	"github.com/raphalinka/bomator/internal/llm"
	"github.com/raphalinka/bomator/internal/logging"
	"github.com/raphalinka/bomator/internal/middleware"
	"github.com/raphalinka/bomator/internal/resolver"
	"github.com/raphalinka/bomator/internal/search"
)

// Handler carries the collaborators for the BOM API routes.
type Handler struct {
	cfg          config.Config
	generator    *llm.Generator
	orchestrator *resolver.Orchestrator
	catalog      *resolver.CatalogResolver
	search       search.Provider
	logger       logging.Logger
}

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	Config       config.Config
	Generator    *llm.Generator
	Orchestrator *resolver.Orchestrator
	Catalog      *resolver.CatalogResolver
	Search       search.Provider
	Logger       logging.Logger
}

// NewHandler creates the BOM API handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		cfg:          cfg.Config,
		generator:    cfg.Generator,
		orchestrator: cfg.Orchestrator,
		catalog:      cfg.Catalog,
		search:       cfg.Search,
		logger:       cfg.Logger,
	}
}

// RegisterRoutes attaches the BOM API routes to the given group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/generate-bom", h.GenerateBOM)
	group.POST("/export-xlsx", h.ExportXLSX)
	group.GET("/env-check", h.EnvCheck)
	group.GET("/catalog-test", h.CatalogTest)
	group.GET("/search-test", h.SearchTest)
}

type generateRequest struct {
	Prompt   string `json:"prompt"`
	Currency string `json:"currency"`
}

type generateResponse struct {
	Prompt    string     `json:"prompt"`
	Currency  string     `json:"currency"`
	ItemCount int        `json:"item_count"`
	Subtotal  float64    `json:"subtotal"`
	Items     []bom.Item `json:"items"`
}

// GenerateBOM turns a device description into a resolved, priced item list.
func (h *Handler) GenerateBOM(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}
	currency := h.currency(req.Currency)

	log := middleware.GetContextLogger(c, h.logger)

	items, err := h.generator.Generate(c.Request.Context(), req.Prompt, currency)
	if err != nil {
		log.WithError(err).Error("BOM generation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "bom generation failed"})
		return
	}

	items = h.orchestrator.Annotate(c.Request.Context(), items, currency)
	bom.SortByStatus(items)

	c.JSON(http.StatusOK, generateResponse{
		Prompt:    req.Prompt,
		Currency:  currency,
		ItemCount: len(items),
		Subtotal:  bom.Subtotal(items),
		Items:     items,
	})
}

type exportRequest struct {
	Prompt   string     `json:"prompt"`
	Currency string     `json:"currency"`
	Items    []bom.Item `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// ExportXLSX serializes a previously generated item list as a spreadsheet
// download.
func (h *Handler) ExportXLSX(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	for i := range req.Items {
		req.Items[i].Coerce()
	}
	if req.Subtotal == 0 {
		req.Subtotal = bom.Subtotal(req.Items)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="bom.xlsx"`)
	c.Status(http.StatusOK)

	err := export.WriteXLSX(c.Writer, export.Document{
		Prompt:   req.Prompt,
		Currency: h.currency(req.Currency),
		Items:    req.Items,
		Subtotal: req.Subtotal,
	})
	if err != nil {
		middleware.GetContextLogger(c, h.logger).WithError(err).Error("XLSX export failed")
	}
}

// EnvCheck reports which optional integrations are configured, without
// leaking any secret values.
func (h *Handler) EnvCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"llm_configured":          h.cfg.LLMModel != "",
		"catalog_configured":      h.cfg.CatalogEnabled(),
		"search_provider":         h.cfg.SearchProvider,
		"search_fallback_enabled": h.cfg.EnableSearchFallback,
		"default_currency":        h.cfg.DefaultCurrency,
	})
}

// CatalogTest resolves a single query through the catalog tier.
func (h *Handler) CatalogTest(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	if h.catalog == nil || !h.catalog.Enabled() {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	offers := h.catalog.ResolveBatch(c.Request.Context(), []string{q}, h.currency(c.Query("currency")))
	c.JSON(http.StatusOK, gin.H{"enabled": true, "query": q, "offer": offers[q]})
}

// SearchTest runs a single query through the web search provider.
func (h *Handler) SearchTest(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	if h.search == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	results, err := h.search.Search(c.Request.Context(), q, search.SearchOptions{Limit: 3, Site: c.Query("site")})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("search failed: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": true, "query": q, "results": results})
}

func (h *Handler) currency(requested string) string {
	requested = strings.ToUpper(strings.TrimSpace(requested))
	if len(requested) == 3 {
		return requested
	}
	return h.cfg.DefaultCurrency
}
