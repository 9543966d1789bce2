// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/raidmarks/backend/internal/parser"
	"github.com/raidmarks/backend/internal/session"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	SessionMgr   *session.Manager
	ReportClient ReportFetcher
	ParseRules   *parser.Rules
	Version      string
}

// Handlers holds all handler instances
type Handlers struct {
	Health  HealthHandler
	Session SessionHandler
	Ingest  IngestHandler
	Rules   *RulesHandlerImpl
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	rules := NewRulesHandler(deps.ParseRules)
	return &Handlers{
		Health:  NewHealthHandler(deps.Version),
		Session: NewSessionHandler(deps.SessionMgr),
		Ingest:  NewIngestHandler(deps.SessionMgr, deps.ReportClient, rules),
		Rules:   rules,
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/api/health", handlers.Health.HandleHealth)

	// Session lifecycle and entry management
	sessionGroup := e.Group("/api/session")
	sessionGroup.POST("", handlers.Session.HandleCreateSession)
	sessionGroup.GET("/:sessionId", handlers.Session.HandleGetSession)
	sessionGroup.POST("/:sessionId/keepalive", handlers.Session.HandleSessionKeepAlive)
	sessionGroup.DELETE("/:sessionId", handlers.Session.HandleDeleteSession)
	sessionGroup.GET("/:sessionId/entries", handlers.Session.HandleGetEntries)
	sessionGroup.GET("/:sessionId/entries/msgpack", handlers.Session.HandleGetEntriesMsgpack)
	sessionGroup.POST("/:sessionId/entries", handlers.Session.HandleAddEntry)
	sessionGroup.DELETE("/:sessionId/entries/:entryId", handlers.Session.HandleDeleteEntry)
	sessionGroup.DELETE("/:sessionId/entries", handlers.Session.HandleClearEntries)
	sessionGroup.POST("/:sessionId/generate", handlers.Session.HandleGenerate)

	// Entry ingestion
	sessionGroup.POST("/:sessionId/parse", handlers.Ingest.HandleParseText)
	sessionGroup.POST("/:sessionId/import", handlers.Ingest.HandleImportReport)

	// Parse rule configuration
	e.GET("/api/config/parse-rules", handlers.Rules.HandleGetParseRules)
	e.PUT("/api/config/parse-rules", handlers.Rules.HandleUpdateParseRules)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
}
