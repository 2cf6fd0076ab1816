package web

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rpggio/noteboard/internal/app"
	"github.com/rpggio/noteboard/internal/domain/note"
)

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{Status: "ok", Backend: s.backendURL})
}

func (s *Server) handleCSS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(appCSS)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := mustPage(r)
	// A view right after an action shows that action's outcome; only a fresh
	// visit retries a load that has not succeeded yet.
	if !s.pages.TakeAction(page) {
		s.controller.EnsureLoaded(r.Context(), page)
	}
	s.views.renderPage(w, page.View(), nil)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	page := mustPage(r)
	mode := note.ParseSearchMode(r.PostFormValue("mode"))
	s.controller.Search(r.Context(), page, r.PostFormValue("q"), mode)
	s.backToPage(w, r)
}

func (s *Server) handleResetSearch(w http.ResponseWriter, r *http.Request) {
	s.controller.ResetSearch(r.Context(), mustPage(r))
	s.backToPage(w, r)
}

func (s *Server) handleNewNote(w http.ResponseWriter, r *http.Request) {
	s.controller.OpenCreate(mustPage(r))
	s.backToPage(w, r)
}

func (s *Server) handleEditNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}
	s.controller.OpenEdit(r.Context(), mustPage(r), id)
	s.backToPage(w, r)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	form := note.Draft{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
		Tags:    r.PostFormValue("tags"),
	}
	s.controller.Submit(r.Context(), mustPage(r), form)
	s.backToPage(w, r)
}

func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}
	page := mustPage(r)
	s.views.renderPage(w, page.View(), &confirmData{ID: id, Prompt: app.MsgDeletePrompt})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}
	confirmed := r.PostFormValue("confirm") == "yes"
	s.controller.Delete(r.Context(), mustPage(r), id, app.Answer(confirmed))
	s.backToPage(w, r)
}

func (s *Server) handleCloseDialog(w http.ResponseWriter, r *http.Request) {
	s.controller.CloseDialog(mustPage(r))
	s.backToPage(w, r)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.controller.Dismiss(mustPage(r), app.Target(r.PostFormValue("target")))
	s.backToPage(w, r)
}

func mustPage(r *http.Request) *app.Page {
	page, ok := PageFromContext(r.Context())
	if !ok {
		panic("web: page middleware not installed")
	}
	return page
}

// noteID returns the {id} route segment. chi routes on the raw path only
// when the request path has escapes that decoding would lose, and only then
// is the segment still escaped.
func noteID(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(id)
		if err != nil {
			return "", false
		}
		id = unescaped
	}
	if id == "" {
		return "", false
	}
	return id, true
}

func (s *Server) backToPage(w http.ResponseWriter, r *http.Request) {
	s.pages.MarkAction(mustPage(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
