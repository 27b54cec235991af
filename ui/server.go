package ui

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"regimen/adapters/excel"
	"regimen/app"
	"regimen/domain/core"
	"regimen/domain/feed"
	"regimen/internal/api"
	"regimen/internal/container"
	"regimen/internal/content"
	"regimen/internal/errors"
)

// PreviewServer is the merchandiser-facing surface: a live home feed
// preview over SSE, rendered markdown for section copy, and the catalog
// import trigger. It runs beside the public API on its own port.
type PreviewServer struct {
	router     *gin.Engine
	container  *container.Container
	logger     *zap.Logger
	storefront string
	workbook   string
}

// NewPreviewServer creates the preview server on top of an initialized
// container
func NewPreviewServer(c *container.Container) (*PreviewServer, error) {
	if c == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	if mode := c.Config.Preview.GinMode; mode != "" {
		gin.SetMode(mode)
	}

	server := &PreviewServer{
		router:     gin.Default(),
		container:  c,
		logger:     c.Logger,
		storefront: c.Config.Feed.Storefront,
		workbook:   c.Config.Import.WorkbookFile,
	}
	server.setupRoutes()
	return server, nil
}

// setupRoutes configures the preview routes
func (s *PreviewServer) setupRoutes() {
	s.router.GET("/events", s.container.FeedHub.HandleSSE)

	preview := s.router.Group("/preview")
	{
		preview.GET("/home", s.handlePreviewHome)
		preview.GET("/status", s.handleStatus)
		preview.POST("/markdown", s.handleMarkdown)
		preview.POST("/import", s.handleImport)
		preview.POST("/rebuild", s.handleRebuild)
	}
}

// previewRow pairs a rendered feed row with its markdown rendered to
// HTML, so merchandisers see section copy the way shoppers will
type previewRow struct {
	Slug       feed.Slug    `json:"slug"`
	Title      string       `json:"title"`
	Kind       feed.RowKind `json:"kind"`
	Items      int          `json:"items"`
	BlurbHTML  string       `json:"blurb_html,omitempty"`
	BannerHTML string       `json:"banner_html,omitempty"`
}

func previewRows(view *app.HomeView) []previewRow {
	rows := make([]previewRow, 0, len(view.Rows))
	for _, row := range view.Rows {
		pr := previewRow{
			Slug:      row.Slug,
			Title:     row.Title,
			Kind:      row.Kind,
			Items:     len(row.Products) + len(row.Categories),
			BlurbHTML: content.RenderHTML(row.Blurb),
		}
		if row.Banner != nil {
			pr.BannerHTML = content.RenderHTML(row.Banner.Blurb)
		}
		rows = append(rows, pr)
	}
	return rows
}

// handlePreviewHome assembles the home feed and attaches rendered copy
func (s *PreviewServer) handlePreviewHome(c *gin.Context) {
	view, err := s.container.Home.AssembleHome(c.Request.Context(), c.Query("scroll_to"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"home":    view,
		"preview": previewRows(view),
	})
}

// handleStatus reports layout and connection state for the preview UI
func (s *PreviewServer) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"storefront":         s.storefront,
		"layout_hash":        s.container.LayoutRegistry.Hash(),
		"sections":           len(s.container.Home.Sections()),
		"clients":            s.container.FeedHub.GetClientCount(s.storefront),
		"active_storefronts": s.container.FeedHub.GetActiveStorefronts(),
	})
}

// handleMarkdown renders merchandiser markdown for the copy editor
func (s *PreviewServer) handleMarkdown(c *gin.Context) {
	var req struct {
		Source string `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": content.RenderHTML(req.Source)})
}

// handleImport runs a catalog import from the configured workbook, or
// from a file named in the request body, and announces completion to
// connected preview clients
func (s *PreviewServer) handleImport(c *gin.Context) {
	var req struct {
		File string `json:"file"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
	}

	file := req.File
	if file == "" {
		file = s.workbook
	}
	if file == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no workbook configured; set CATALOG_WORKBOOK or pass a file"})
		return
	}

	summary, err := s.container.Import.Run(c.Request.Context(), excel.NewCatalogReader(file))
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.container.FeedHub.Broadcast(api.FeedEvent{
		Storefront: s.storefront,
		EventType:  api.EventImportCompleted,
		Data: map[string]interface{}{
			"products":   summary.Products,
			"deals":      summary.Deals,
			"sales_days": summary.SalesDays,
			"skipped":    len(summary.Skipped),
			"issues":     len(summary.Issues),
		},
	})

	c.JSON(http.StatusOK, summary)
}

// handleRebuild reassembles the home feed, refreshing the snapshot as a
// side effect, and notifies preview clients. A stale response means the
// sources are down and nothing new was saved, so no event goes out.
func (s *PreviewServer) handleRebuild(c *gin.Context) {
	view, err := s.container.Home.AssembleHome(c.Request.Context(), "")
	if err != nil {
		s.respondError(c, err)
		return
	}

	if !view.Stale {
		s.container.FeedHub.Broadcast(api.FeedEvent{
			Storefront: s.storefront,
			EventType:  api.EventSnapshotSaved,
			Data: map[string]interface{}{
				"layout_hash":  view.LayoutHash,
				"rows":         len(view.Rows),
				"assembled_at": view.AssembledAt,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":        len(view.Rows),
		"layout_hash": view.LayoutHash,
		"stale":       view.Stale,
	})
}

// respondError maps application errors to HTTP status codes
func (s *PreviewServer) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case core.IsNotFoundError(err):
		status, message = http.StatusNotFound, err.Error()
	default:
		switch errors.GetCode(err) {
		case errors.CodeValidationError, errors.CodeInvalidInput:
			status, message = http.StatusBadRequest, err.Error()
		case errors.CodeImportFailed, errors.CodeLayoutInvalid:
			status, message = http.StatusUnprocessableEntity, err.Error()
		case errors.CodeNotFound:
			status, message = http.StatusNotFound, err.Error()
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("Preview request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}

	c.JSON(status, gin.H{"error": message})
}

// Start starts the preview server
func (s *PreviewServer) Start(addr string) error {
	s.logger.Info("Starting preview server", zap.String("addr", addr))
	return s.router.Run(addr)
}
