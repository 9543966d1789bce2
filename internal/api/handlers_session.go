// handlers_session.go - Session lifecycle and entry-list handlers
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/raidmarks/backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// SessionHandlerImpl implements the SessionHandler interface
type SessionHandlerImpl struct {
	sessionMgr SessionManager
}

// NewSessionHandler creates a new session handler instance
func NewSessionHandler(sessionMgr SessionManager) SessionHandler {
	return &SessionHandlerImpl{sessionMgr: sessionMgr}
}

// HandleCreateSession starts a new empty marker session
func (h *SessionHandlerImpl) HandleCreateSession(c echo.Context) error {
	sess := h.sessionMgr.Create()
	return c.JSON(http.StatusCreated, sess)
}

// HandleGetSession returns session metadata
func (h *SessionHandlerImpl) HandleGetSession(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	sess, ok := h.sessionMgr.Get(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	h.sessionMgr.Touch(id)
	return c.JSON(http.StatusOK, sess)
}

// HandleSessionKeepAlive extends session lifetime for active viewing
func (h *SessionHandlerImpl) HandleSessionKeepAlive(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	if ok := h.sessionMgr.Touch(id); !ok {
		return NewNotFoundError("session", id)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleDeleteSession removes a session and its entries
func (h *SessionHandlerImpl) HandleDeleteSession(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	if ok := h.sessionMgr.Delete(id); !ok {
		return NewNotFoundError("session", id)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleGetEntries returns the ordered entry list
func (h *SessionHandlerImpl) HandleGetEntries(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	entries, ok := h.sessionMgr.Entries(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	return c.JSON(http.StatusOK, entriesResponse{Entries: entries, Total: len(entries)})
}

// HandleGetEntriesMsgpack returns the entry list in MessagePack format
func (h *SessionHandlerImpl) HandleGetEntriesMsgpack(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	entries, ok := h.sessionMgr.Entries(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	data, err := msgpack.Marshal(entries)
	if err != nil {
		return NewInternalError("failed to encode entries", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleAddEntry appends a manually entered pull
func (h *SessionHandlerImpl) HandleAddEntry(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	var req addEntryRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.Name == "" {
		return NewEmptyInputError("entry name is required")
	}
	if req.PullTime == "" {
		return NewEmptyInputError("pull time is required")
	}

	entry, found, err := h.sessionMgr.AddEntry(id, req.Name, req.PullTime)
	if !found {
		return NewNotFoundError("session", id)
	}
	if err != nil {
		return MapDomainError(err)
	}

	return c.JSON(http.StatusCreated, entry)
}

// HandleDeleteEntry removes a single entry by ID
func (h *SessionHandlerImpl) HandleDeleteEntry(c echo.Context) error {
	id := c.Param("sessionId")
	entryID := c.Param("entryId")
	if id == "" {
		return NewValidationError("sessionId")
	}
	if entryID == "" {
		return NewValidationError("entryId")
	}

	entryFound, sessionFound := h.sessionMgr.DeleteEntry(id, entryID)
	if !sessionFound {
		return NewNotFoundError("session", id)
	}
	if !entryFound {
		return NewNotFoundError("entry", entryID)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleClearEntries empties the session's entry list
func (h *SessionHandlerImpl) HandleClearEntries(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	if ok := h.sessionMgr.ClearEntries(id); !ok {
		return NewNotFoundError("session", id)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleGenerate renders the video-description marker text against a
// reference recording-start time. Output is recomputed from the
// current entry list on every call.
func (h *SessionHandlerImpl) HandleGenerate(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.ReferenceTime == "" {
		return NewEmptyInputError("reference time is required")
	}

	output, found, err := h.sessionMgr.Generate(id, req.ReferenceTime)
	if !found {
		return NewNotFoundError("session", id)
	}
	if err != nil {
		return MapDomainError(err)
	}

	resp := generateResponse{Output: output}
	if output != "" {
		resp.Lines = splitLines(output)
	}
	return c.JSON(http.StatusOK, resp)
}

// Request/Response types

type addEntryRequest struct {
	Name     string `json:"name"`
	PullTime string `json:"pullTime"`
}

type generateRequest struct {
	ReferenceTime string `json:"referenceTime"`
}

type generateResponse struct {
	Output string   `json:"output"`
	Lines  []string `json:"lines,omitempty"`
}

type entriesResponse struct {
	Entries []models.PullEntry `json:"entries"`
	Total   int                `json:"total"`
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
