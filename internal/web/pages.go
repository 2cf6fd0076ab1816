package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/noteboard/internal/app"
	"github.com/rpggio/noteboard/internal/notify"
)

// PageCookie names the cookie that ties a browser to its page state.
const PageCookie = "noteboard_page"

type pageKey struct{}

// PageFromContext returns the page attached by PageMiddleware.
func PageFromContext(ctx context.Context) (*app.Page, bool) {
	page, ok := ctx.Value(pageKey{}).(*app.Page)
	return page, ok
}

type pageEntry struct {
	page     *app.Page
	lastSeen time.Time
}

// pageStore keeps one page per browser. Pages idle longer than ttl are
// evicted on access.
type pageStore struct {
	mu        sync.Mutex
	pages     map[string]*pageEntry
	actions   map[*app.Page]bool
	ttl       time.Duration
	noticeTTL time.Duration
	now       func() time.Time
}

func newPageStore(ttl, noticeTTL time.Duration) *pageStore {
	return &pageStore{
		pages:     make(map[string]*pageEntry),
		actions:   make(map[*app.Page]bool),
		ttl:       ttl,
		noticeTTL: noticeTTL,
		now:       time.Now,
	}
}

// Get returns the page for id, or false if it is unknown or has expired.
func (s *pageStore) Get(id string) (*app.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.evictLocked(now)
	entry, ok := s.pages[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = now
	return entry.page, true
}

// Create registers a fresh page and returns its id.
func (s *pageStore) Create() (string, *app.Page) {
	id := uuid.NewString()
	page := app.NewPage(notify.NewPresenter(s.noticeTTL))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[id] = &pageEntry{page: page, lastSeen: s.now()}
	return id, page
}

// Len reports the number of live pages.
func (s *pageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// MarkAction records that the page's next view follows an action redirect.
func (s *pageStore) MarkAction(page *app.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[page] = true
}

// TakeAction reports and clears the mark set by MarkAction.
func (s *pageStore) TakeAction(page *app.Page) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := s.actions[page]
	delete(s.actions, page)
	return marked
}

func (s *pageStore) evictLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, entry := range s.pages {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.pages, id)
			delete(s.actions, entry.page)
		}
	}
}

// PageMiddleware resolves the page cookie to a page, creating one when the
// cookie is missing or its page has expired.
func (s *pageStore) PageMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var page *app.Page
		if cookie, err := r.Cookie(PageCookie); err == nil {
			page, _ = s.Get(cookie.Value)
		}
		if page == nil {
			var id string
			id, page = s.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     PageCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), pageKey{}, page)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
