// handlers_ingest.go - Handlers that bring pull entries into a session
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/raidmarks/backend/internal/models"
	"github.com/raidmarks/backend/internal/parser"
)

// IngestHandlerImpl implements the IngestHandler interface
type IngestHandlerImpl struct {
	sessionMgr SessionManager
	fetcher    ReportFetcher
	rules      RulesProvider
}

// RulesProvider hands out the current parse rules
type RulesProvider interface {
	Current() *parser.Rules
}

// NewIngestHandler creates a new ingest handler instance
func NewIngestHandler(sessionMgr SessionManager, fetcher ReportFetcher, rules RulesProvider) IngestHandler {
	return &IngestHandlerImpl{
		sessionMgr: sessionMgr,
		fetcher:    fetcher,
		rules:      rules,
	}
}

// HandleParseText scrapes pasted raid-log text into the session's
// entry list. By default the parsed entries replace the list; set
// append to keep existing entries.
func (h *IngestHandlerImpl) HandleParseText(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	var req parseTextRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return NewEmptyInputError("no log text to parse")
	}

	if _, ok := h.sessionMgr.Get(id); !ok {
		return NewNotFoundError("session", id)
	}

	result := parser.Parse(req.Text, h.rules.Current())
	if !result.Valid {
		return NewNoMatchError(result.ErrorMessage)
	}

	entries, ok := h.storeEntries(id, result.Entries, req.Append)
	if !ok {
		return NewNotFoundError("session", id)
	}

	return c.JSON(http.StatusOK, entriesResponse{Entries: entries, Total: len(entries)})
}

// HandleImportReport fetches a remote combat-log report and converts
// its boss fights into pull entries. One outbound request, no retries.
func (h *IngestHandlerImpl) HandleImportReport(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	var req importReportRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if strings.TrimSpace(req.URL) == "" {
		return NewEmptyInputError("report URL is required")
	}

	if _, ok := h.sessionMgr.Get(id); !ok {
		return NewNotFoundError("session", id)
	}

	pulls, err := h.fetcher.FetchPulls(c.Request().Context(), req.URL)
	if err != nil {
		return MapDomainError(err)
	}

	entries, ok := h.storeEntries(id, pulls, req.Append)
	if !ok {
		return NewNotFoundError("session", id)
	}

	return c.JSON(http.StatusOK, entriesResponse{Entries: entries, Total: len(entries)})
}

func (h *IngestHandlerImpl) storeEntries(id string, entries []models.PullEntry, appendMode bool) ([]models.PullEntry, bool) {
	if appendMode {
		return h.sessionMgr.AppendEntries(id, entries)
	}
	return h.sessionMgr.SetEntries(id, entries)
}

// Request types

type parseTextRequest struct {
	Text   string `json:"text"`
	Append bool   `json:"append"`
}

type importReportRequest struct {
	URL    string `json:"url"`
	Append bool   `json:"append"`
}
