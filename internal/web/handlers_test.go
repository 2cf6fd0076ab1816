package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/noteboard/internal/app"
	"github.com/rpggio/noteboard/internal/backend"
	"github.com/rpggio/noteboard/internal/demobackend"
	"github.com/rpggio/noteboard/internal/domain/note"
	"github.com/rpggio/noteboard/internal/testserver"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	backend *testserver.TestServer
	server  *httptest.Server
	client  *http.Client
}

func newHarness(t *testing.T, seed ...note.Note) *harness {
	t.Helper()

	ts := testserver.New(t, seed...)
	client, err := backend.NewClient(ts.BaseURL)
	require.NoError(t, err)

	srv := NewServer(Config{
		Controller: app.NewController(client, nil),
		BackendURL: client.BaseURL(),
		PageTTL:    time.Hour,
		NoticeTTL:  time.Minute,
	})
	server := httptest.NewServer(srv.Handler())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &harness{t: t, backend: ts, server: server, client: &http.Client{Jar: jar}}
}

func (h *harness) get(path string) string {
	h.t.Helper()
	resp, err := h.client.Get(h.server.URL + path)
	require.NoError(h.t, err)
	return readAll(h.t, resp)
}

func (h *harness) post(path string, form url.Values) string {
	h.t.Helper()
	resp, err := h.client.PostForm(h.server.URL+path, form)
	require.NoError(h.t, err)
	return readAll(h.t, resp)
}

func (h *harness) requests(method string) []demobackend.Request {
	var out []demobackend.Request
	for _, req := range h.backend.Backend.Requests() {
		if req.Method == method {
			out = append(out, req)
		}
	}
	return out
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func seedNotes() []note.Note {
	return []note.Note{
		{ID: "1", Title: "Groceries", Content: "milk", Tags: "home,errands", CreatedAt: "2024-01-01", UpdatedAt: "2024-01-02"},
		{ID: "2", Title: "Ideas", Content: "write more", Tags: "", CreatedAt: "2024-02-01", UpdatedAt: "2024-02-01"},
	}
}

func TestIndex_FirstVisitLoads(t *testing.T) {
	h := newHarness(t, seedNotes()...)

	body := h.get("/")
	require.Contains(t, body, "Groceries")
	require.Contains(t, body, `<span class="tag">home</span><span class="tag">errands</span>`)
	require.Len(t, h.requests(http.MethodGet), 1)

	h.get("/")
	require.Len(t, h.requests(http.MethodGet), 1, "later visits render without reloading")
}

func TestIndex_EmptyState(t *testing.T) {
	h := newHarness(t)

	body := h.get("/")
	require.Contains(t, body, "No notes yet")
	require.Contains(t, body, "Create your first note to get started!")
}

func TestIndex_EscapesNoteText(t *testing.T) {
	h := newHarness(t, note.Note{ID: "x", Title: "<script>alert(1)</script>", Content: "<b>bold</b>", Tags: "<i>"})

	body := h.get("/")
	require.NotContains(t, body, "<script>alert(1)</script>")
	require.NotContains(t, body, "<b>bold</b>")
	require.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestIndex_BackendDown(t *testing.T) {
	client, err := backend.NewClient(testserver.Unreachable(t))
	require.NoError(t, err)
	server := httptest.NewServer(NewServer(Config{Controller: app.NewController(client, nil)}).Handler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	body := readAll(t, resp)
	require.Contains(t, body, app.MsgLoadFailed)
	require.Contains(t, body, `class="message error show"`)
}

func TestIndex_RetriesFailedLoad(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.backend.Backend.FailNext(http.StatusInternalServerError, "")

	body := h.get("/")
	require.Contains(t, body, app.MsgLoadFailed)
	require.NotContains(t, body, "Groceries")

	body = h.get("/")
	require.Contains(t, body, "Groceries")
	require.Len(t, h.requests(http.MethodGet), 2)
}

func TestIndex_ActionOutcomeSurvivesFailedLoad(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.backend.Backend.FailNext(http.StatusInternalServerError, "")
	h.backend.Backend.FailNext(http.StatusInternalServerError, "")
	h.get("/")

	body := h.post("/search", url.Values{"q": {"groc"}, "mode": {"title"}})
	require.Contains(t, body, app.MsgSearchFailed)
	require.NotContains(t, body, app.MsgLoadFailed)
	require.Len(t, h.requests(http.MethodGet), 2, "the redirect after an action does not reload")
}

func TestSearch_EmptyTermSkipsBackend(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.get("/")

	body := h.post("/search", url.Values{"q": {"   "}, "mode": {"title"}})
	require.Contains(t, body, app.MsgEmptySearch)
	for _, req := range h.backend.Backend.Requests() {
		require.NotContains(t, req.Path, "/search")
	}
}

func TestSearch_ByTitleAndTag(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.get("/")

	body := h.post("/search", url.Values{"q": {"groc"}, "mode": {"title"}})
	require.Contains(t, body, "Found 1 note(s)")
	require.Contains(t, body, "Groceries")
	require.NotContains(t, body, "Ideas")
	require.Contains(t, body, `value="groc"`)

	body = h.post("/search", url.Values{"q": {"nothing"}, "mode": {"tag"}})
	require.Contains(t, body, app.MsgNoResults)
	require.Contains(t, body, `<option value="tag" selected>`)

	body = h.post("/search/reset", nil)
	require.Contains(t, body, "Groceries")
	require.Contains(t, body, "Ideas")
	require.Contains(t, body, `name="q" value=""`)
}

func TestCreateNote(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.get("/")

	body := h.post("/notes/new", nil)
	require.Contains(t, body, app.CreateHeading)
	require.Contains(t, body, app.CreateLabel)

	body = h.post("/notes/submit", url.Values{"title": {" Todo "}, "content": {"buy stamps"}, "tags": {"a, ,b"}})
	require.Contains(t, body, app.MsgCreated)
	require.NotContains(t, body, `id="modal"`)
	require.Contains(t, body, "buy stamps")

	posts := h.requests(http.MethodPost)
	require.Len(t, posts, 1)
	require.JSONEq(t, `{"title":"Todo","content":"buy stamps","tags":["a","b"]}`, posts[0].Body)
}

func TestCreateNote_ServerRejects(t *testing.T) {
	h := newHarness(t)
	h.get("/")
	h.post("/notes/new", nil)

	body := h.post("/notes/submit", url.Values{"title": {""}, "content": {"keep me"}})
	require.Contains(t, body, "Title is required")
	require.Contains(t, body, `id="modal"`)
	require.Contains(t, body, "keep me")
}

func TestEditNote(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.get("/")

	body := h.post("/notes/1/edit", nil)
	require.Contains(t, body, app.EditHeading)
	require.Contains(t, body, app.EditLabel)
	require.Contains(t, body, `value="Groceries"`)
	require.Contains(t, body, `value="home,errands"`)

	body = h.post("/notes/submit", url.Values{"title": {"Groceries"}, "content": {"milk, eggs"}, "tags": {"home"}})
	require.Contains(t, body, app.MsgUpdated)
	require.Contains(t, body, "milk, eggs")

	patches := h.requests(http.MethodPatch)
	require.Len(t, patches, 1)
	require.Equal(t, "/api/notes/update/1", patches[0].Path)
	require.Empty(t, h.requests(http.MethodPost))
}

func TestDialog_DismissAndClose(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.get("/")
	h.post("/notes/new", nil)

	body := h.post("/dialog/dismiss", url.Values{"target": {"content"}})
	require.Contains(t, body, `id="modal"`)

	body = h.post("/dialog/dismiss", url.Values{"target": {"backdrop"}})
	require.NotContains(t, body, `id="modal"`)

	h.post("/notes/1/edit", nil)
	body = h.post("/dialog/close", nil)
	require.NotContains(t, body, `id="modal"`)

	// A closed edit must not turn the next submit into an update.
	h.post("/notes/new", nil)
	h.post("/notes/submit", url.Values{"title": {"fresh"}})
	require.Empty(t, h.requests(http.MethodPatch))
	require.Len(t, h.requests(http.MethodPost), 1)
}

func TestDelete_ConfirmFlow(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.get("/")

	body := h.get("/notes/1/delete")
	require.Contains(t, body, app.MsgDeletePrompt)
	require.Empty(t, h.requests(http.MethodDelete))

	h.post("/notes/1/delete", url.Values{"confirm": {"no"}})
	require.Empty(t, h.requests(http.MethodDelete))

	body = h.post("/notes/1/delete", url.Values{"confirm": {"yes"}})
	require.Contains(t, body, app.MsgDeleted)
	require.NotContains(t, body, "Groceries")
	deletes := h.requests(http.MethodDelete)
	require.Len(t, deletes, 1)
	require.Equal(t, "/api/notes/delete/1", deletes[0].Path)
}

func TestDelete_IDsWithEscapes(t *testing.T) {
	h := newHarness(t,
		note.Note{ID: "a%41", Title: "Percent"},
		note.Note{ID: "aA", Title: "Plain"},
		note.Note{ID: "n/1", Title: "Slash"},
	)
	body := h.get("/")
	require.Contains(t, body, `/notes/a%2541/delete`)
	require.Contains(t, body, `/notes/n%2F1/delete`)

	body = h.get("/notes/a%2541/delete")
	require.Contains(t, body, `action="/notes/a%2541/delete"`)

	h.post("/notes/a%2541/delete", url.Values{"confirm": {"yes"}})
	deletes := h.requests(http.MethodDelete)
	require.Len(t, deletes, 1)
	require.Equal(t, "/api/notes/delete/a%2541", deletes[0].Path)

	h.post("/notes/n%2F1/delete", url.Values{"confirm": {"yes"}})
	deletes = h.requests(http.MethodDelete)
	require.Len(t, deletes, 2)
	require.Equal(t, "/api/notes/delete/n%2F1", deletes[1].Path)

	remaining := h.backend.Backend.Notes()
	require.Len(t, remaining, 1)
	require.Equal(t, "aA", remaining[0].ID)
}

func TestEditNote_IDWithPercent(t *testing.T) {
	h := newHarness(t,
		note.Note{ID: "a%41", Title: "Percent"},
		note.Note{ID: "aA", Title: "Plain"},
	)
	h.get("/")

	body := h.post("/notes/a%2541/edit", nil)
	require.Contains(t, body, `value="Percent"`)

	h.post("/notes/submit", url.Values{"title": {"Percent!"}})
	patches := h.requests(http.MethodPatch)
	require.Len(t, patches, 1)
	require.Equal(t, "/api/notes/update/a%2541", patches[0].Path)
	require.Equal(t, "Plain", h.backend.Backend.Notes()[1].Title)
}

func TestDelete_NotFound(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.get("/")

	body := h.post("/notes/missing/delete", url.Values{"confirm": {"yes"}})
	require.Contains(t, body, app.MsgDeleteFailed)
	require.NotContains(t, body, "Note not found")
}

func TestPages_AreIndependent(t *testing.T) {
	h := newHarness(t, seedNotes()...)
	h.get("/")
	h.post("/notes/new", nil)

	other := &http.Client{}
	resp, err := other.Get(h.server.URL + "/")
	require.NoError(t, err)
	require.NotContains(t, readAll(t, resp), `id="modal"`)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	resp, err := http.Get(h.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, h.backend.BaseURL, health.Backend)
}

func TestSecurityHeadersAndCSS(t *testing.T) {
	h := newHarness(t)

	resp, err := http.Get(h.server.URL + "/static/app.css")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/css"))
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	require.Contains(t, resp.Header.Get("Content-Security-Policy"), "script-src 'none'")
}

func TestPageStore_EvictsIdlePages(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newPageStore(time.Minute, time.Second)
	store.now = func() time.Time { return now }

	id, page := store.Create()
	got, ok := store.Get(id)
	require.True(t, ok)
	require.Same(t, page, got)

	now = now.Add(30 * time.Second)
	_, ok = store.Get(id)
	require.True(t, ok, "access refreshes the idle timer")

	now = now.Add(2 * time.Minute)
	_, ok = store.Get(id)
	require.False(t, ok)
	require.Zero(t, store.Len())
}
