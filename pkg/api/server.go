package api

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
	"github.com/JohnSili/multimodal-demo/pkg/middleware"
)

// ServerOptions configure the outer HTTP surface.
type ServerOptions struct {
	CORSOrigins []string
	// StaticDir, when set, is served at /static and its index.html at /.
	StaticDir string
}

// NewServer builds the echo instance with middleware and all routes.
func NewServer(h *Handlers, reg *metrics.Registry, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.RequestLogger(reg))
	e.Use(echomw.Recover())
	if len(opts.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     opts.CORSOrigins,
			AllowCredentials: true,
			AllowHeaders:     []string{"*"},
		}))
	}

	RegisterRoutes(e, h, reg)

	if opts.StaticDir != "" {
		e.Static("/static", opts.StaticDir)
		e.File("/", filepath.Join(opts.StaticDir, "index.html"))
	}
	return e
}

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(e *echo.Echo, h *Handlers, reg *metrics.Registry) {
	g := e.Group("/api")
	g.GET("/health", h.Health)
	g.POST("/vqa", h.VQA)
	g.POST("/ocr", h.OCR)
	g.GET("/download/ocr/:task_id", h.DownloadOCR)
	g.DELETE("/session/:session_id", h.EndSession)
	if reg != nil {
		g.GET("/metrics", reg.EchoHandlerText)
		g.GET("/metrics.json", reg.EchoHandlerJSON)
	}
}
