// handlers_session_test.go - Tests for session and entry handlers
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/raidmarks/backend/internal/models"
	"github.com/raidmarks/backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestServer(t *testing.T) (*echo.Echo, *session.Manager) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler

	mgr := session.NewManager()
	handlers := NewHandlers(&Dependencies{
		SessionMgr:   mgr,
		ReportClient: nil,
		Version:      "test",
	})
	// The report client stays nil here; import tests wire their own fetcher.
	RegisterRoutes(e, handlers)
	return e, mgr
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/session", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var sess models.MarkerSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.ID)
	return sess.ID
}

func TestSessionLifecycle(t *testing.T) {
	e, _ := newTestServer(t)
	id := createSession(t, e)

	rec := doJSON(e, http.MethodGet, "/api/session/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/session/"+id+"/keepalive", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/session/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/session/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestParseTextIntoSession(t *testing.T) {
	e, _ := newTestServer(t)
	id := createSession(t, e)

	rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/parse",
		`{"text":"1  (3:24)\n48%\nP2\n7:46 PM\n"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Entries []models.PullEntry `json:"entries"`
		Total   int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Pull 1: P2 - 48% (3:24)", resp.Entries[0].Name)
	assert.Equal(t, "19:46:00", resp.Entries[0].PullTime)
}

func TestParseTextErrors(t *testing.T) {
	e, _ := newTestServer(t)
	id := createSession(t, e)

	t.Run("blank text", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/parse", `{"text":"   "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "EMPTY_INPUT")
	})

	t.Run("no pulls found", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/parse", `{"text":"just some chatter"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "NO_MATCH")
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/session/nope/parse", `{"text":"1  (3:24)\n7:46 PM"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestParseReplacesUnlessAppend(t *testing.T) {
	e, _ := newTestServer(t)
	id := createSession(t, e)

	rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/parse",
		`{"text":"1  (3:24)\n7:46 PM\n"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Replace by default
	rec = doJSON(e, http.MethodPost, "/api/session/"+id+"/parse",
		`{"text":"2  (1:10)\n8:03 PM\n"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Pull 2 (1:10)", resp.Entries[0].Name)

	// Append keeps existing entries
	rec = doJSON(e, http.MethodPost, "/api/session/"+id+"/parse",
		`{"text":"3  (0:45)\n8:10 PM\n","append":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

func TestAddAndDeleteEntry(t *testing.T) {
	e, _ := newTestServer(t)
	id := createSession(t, e)

	rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/entries",
		`{"name":"Manual pull","pullTime":"7:46"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry models.PullEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "19:46:00", entry.PullTime)
	require.NotEmpty(t, entry.ID)

	rec = doJSON(e, http.MethodDelete, "/api/session/"+id+"/entries/"+entry.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/session/"+id+"/entries/"+entry.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("bad pull time", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/entries",
			`{"name":"Bad","pullTime":"not a time"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "FORMAT_ERROR")
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/entries", `{"name":"Only name"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "EMPTY_INPUT")
	})
}

func TestGenerateOutput(t *testing.T) {
	e, _ := newTestServer(t)
	id := createSession(t, e)

	rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/parse",
		`{"text":"1  (3:24)\n48%\nP2\n7:46 PM\n"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/session/"+id+"/generate",
		`{"referenceTime":"19:30"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "16:00 Pull 1: P2 - 48% (3:24)", resp.Output)
	assert.Equal(t, []string{"16:00 Pull 1: P2 - 48% (3:24)"}, resp.Lines)

	t.Run("bad reference time", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/generate",
			`{"referenceTime":"whenever"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "FORMAT_ERROR")
	})

	t.Run("missing reference time", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/session/"+id+"/generate", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "EMPTY_INPUT")
	})
}

func TestGenerateReflectsDeletion(t *testing.T) {
	e, mgr := newTestServer(t)
	id := createSession(t, e)

	mgr.SetEntries(id, []models.PullEntry{
		{ID: "e-1", Name: "Pull 1", PullTime: "19:46:00"},
		{ID: "e-2", Name: "Pull 2", PullTime: "19:55:00"},
	})

	rec := doJSON(e, http.MethodDelete, "/api/session/"+id+"/entries/e-1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/session/"+id+"/generate",
		`{"referenceTime":"19:30:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "25:00 Pull 2", resp.Output)
}

func TestClearEntries(t *testing.T) {
	e, mgr := newTestServer(t)
	id := createSession(t, e)

	mgr.SetEntries(id, []models.PullEntry{{ID: "e-1", Name: "Pull 1", PullTime: "19:46:00"}})

	rec := doJSON(e, http.MethodDelete, "/api/session/"+id+"/entries", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/session/"+id+"/entries", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
}

func TestGetEntriesMsgpack(t *testing.T) {
	e, mgr := newTestServer(t)
	id := createSession(t, e)

	want := []models.PullEntry{
		{ID: "e-1", Name: "Pull 1", PullTime: "19:46:00"},
		{ID: "e-2", Name: "Pull 2", PullTime: "19:55:00"},
	}
	mgr.SetEntries(id, want)

	rec := doJSON(e, http.MethodGet, "/api/session/"+id+"/entries/msgpack", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get(echo.HeaderContentType))

	var got []models.PullEntry
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want, got)
}
