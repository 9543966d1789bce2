// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/raidmarks/backend/internal/models"
)

// SessionHandler handles session lifecycle and entry-list operations
type SessionHandler interface {
	HandleCreateSession(c echo.Context) error
	HandleGetSession(c echo.Context) error
	HandleSessionKeepAlive(c echo.Context) error
	HandleDeleteSession(c echo.Context) error
	HandleGetEntries(c echo.Context) error
	HandleGetEntriesMsgpack(c echo.Context) error
	HandleAddEntry(c echo.Context) error
	HandleDeleteEntry(c echo.Context) error
	HandleClearEntries(c echo.Context) error
	HandleGenerate(c echo.Context) error
}

// IngestHandler handles getting pull entries into a session,
// from pasted text or from a remote report URL
type IngestHandler interface {
	HandleParseText(c echo.Context) error
	HandleImportReport(c echo.Context) error
}

// RulesHandler handles the tunable parse rules
type RulesHandler interface {
	HandleGetParseRules(c echo.Context) error
	HandleUpdateParseRules(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// SessionManager defines the interface for session state management
// This allows mocking in tests
type SessionManager interface {
	Create() *models.MarkerSession
	Get(id string) (*models.MarkerSession, bool)
	Touch(id string) bool
	Delete(id string) bool
	SetEntries(id string, entries []models.PullEntry) ([]models.PullEntry, bool)
	AppendEntries(id string, entries []models.PullEntry) ([]models.PullEntry, bool)
	AddEntry(id, name, pullTime string) (*models.PullEntry, bool, error)
	DeleteEntry(id, entryID string) (entryFound, sessionFound bool)
	ClearEntries(id string) bool
	Entries(id string) ([]models.PullEntry, bool)
	Generate(id, referenceTime string) (string, bool, error)
}

// ReportFetcher resolves a report URL into pull entries
// This allows mocking the remote service in tests
type ReportFetcher interface {
	FetchPulls(ctx context.Context, reportURL string) ([]models.PullEntry, error)
}
