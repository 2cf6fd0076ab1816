// Package demobackend is an in-memory notes service implementing the REST
// contract the client consumes. It backs the -demo server mode and tests.
package demobackend

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/rpggio/noteboard/internal/domain/note"
)

// Request is a request the fake backend received.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type failure struct {
	status  int
	message string
}

// Backend is an in-memory notes service implementing the REST contract the
// client consumes. It is safe for concurrent use.
type Backend struct {
	mu       sync.Mutex
	notes    []note.Note
	requests []Request
	failures []failure
	now      func() time.Time
	router   chi.Router
}

// NewBackend creates an empty backend serving under /api.
func NewBackend() *Backend {
	b := &Backend{now: time.Now}
	r := chi.NewRouter()
	r.Use(b.record)
	r.Route("/api/notes", func(r chi.Router) {
		r.Get("/getAll", b.handleGetAll)
		r.Get("/search", b.handleSearchTitle)
		r.Get("/search/tags", b.handleSearchTags)
		r.Post("/add", b.handleAdd)
		r.Patch("/update/{id}", b.handleUpdate)
		r.Delete("/delete/{id}", b.handleDelete)
	})
	b.router = r
	return b
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

// SetClock replaces the timestamp source.
func (b *Backend) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// Seed appends notes as-is, assigning ids to notes that have none.
func (b *Backend) Seed(notes ...note.Note) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, n := range notes {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		b.notes = append(b.notes, n)
	}
}

// Notes returns a copy of the stored notes in insertion order.
func (b *Backend) Notes() []note.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]note.Note, len(b.notes))
	copy(out, b.notes)
	return out
}

// Requests returns the requests received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// ResetRequests forgets the recorded requests.
func (b *Backend) ResetRequests() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

// FailNext makes the next request fail with status. An empty message sends a
// body without a message field.
func (b *Backend) FailNext(status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, failure{status: status, message: message})
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := readBody(r)
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Body:   body,
		})
		var fail *failure
		if len(b.failures) > 0 {
			f := b.failures[0]
			b.failures = b.failures[1:]
			fail = &f
		}
		b.mu.Unlock()

		if fail != nil {
			render.Status(r, fail.status)
			if fail.message == "" {
				render.JSON(w, r, map[string]any{"error": true})
				return
			}
			render.JSON(w, r, map[string]string{"message": fail.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleGetAll(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{"notes": b.Notes()})
}

func (b *Backend) handleSearchTitle(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("title")))
	var out []note.Note
	for _, n := range b.Notes() {
		if strings.Contains(strings.ToLower(n.Title), term) {
			out = append(out, n)
		}
	}
	render.JSON(w, r, map[string]any{"notes": out})
}

func (b *Backend) handleSearchTags(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("tag")))
	var out []note.Note
	for _, n := range b.Notes() {
		for _, tag := range note.ParseTags(n.Tags) {
			if strings.ToLower(tag) == term {
				out = append(out, n)
				break
			}
		}
	}
	render.JSON(w, r, map[string]any{"notes": out})
}

func (b *Backend) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req note.Payload
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeMessage(w, r, http.StatusBadRequest, "Title is required")
		return
	}

	b.mu.Lock()
	stamp := b.now().UTC().Format(time.RFC3339)
	n := note.Note{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Tags:      strings.Join(req.Tags, ","),
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
	b.notes = append(b.notes, n)
	b.mu.Unlock()

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{"message": "Note created", "note": n})
}

func (b *Backend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	var req note.Payload
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeMessage(w, r, http.StatusBadRequest, "Title is required")
		return
	}

	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		writeMessage(w, r, http.StatusNotFound, "Note not found")
		return
	}
	n := b.notes[idx]
	n.Title = req.Title
	n.Content = req.Content
	n.Tags = strings.Join(req.Tags, ",")
	n.LastUpdatedAt = b.now().UTC().Format(time.RFC3339)
	b.notes[idx] = n
	b.mu.Unlock()

	render.JSON(w, r, map[string]any{"message": "Note updated", "note": n})
}

func (b *Backend) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)

	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		writeMessage(w, r, http.StatusNotFound, "Note not found")
		return
	}
	b.notes = append(b.notes[:idx], b.notes[idx+1:]...)
	b.mu.Unlock()

	render.JSON(w, r, map[string]string{"message": "Note deleted"})
}

// indexOf must be called with b.mu held.
func (b *Backend) indexOf(id string) int {
	for i, n := range b.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func readBody(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	data, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))
	return string(data)
}

// noteID returns the {id} segment. chi routes on the raw path only when the
// request path has escapes that decoding would lose, and only then is the
// segment still escaped.
func noteID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return raw
	}
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"message": message})
}
