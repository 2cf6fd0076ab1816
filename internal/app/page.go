package app

import (
	"sync"

	"github.com/rpggio/noteboard/internal/domain/note"
	"github.com/rpggio/noteboard/internal/domain/session"
	"github.com/rpggio/noteboard/internal/notify"
	"github.com/rpggio/noteboard/internal/render"
)

// Target is where a click on the open dialog landed.
type Target string

const (
	TargetBackdrop Target = "backdrop"
	TargetContent  Target = "content"
)

// Dialog is the shared create/edit dialog.
type Dialog struct {
	Open bool
	Form note.Draft
}

// View is a snapshot of a page for rendering.
type View struct {
	Board      render.Board
	Loaded     bool
	Busy       bool
	SearchTerm string
	SearchMode note.SearchMode
	Dialog     Dialog
	Session    session.Edit
	Notice     *notify.Notice
}

// DialogHeading is the dialog title for the current edit session.
func (v View) DialogHeading() string {
	if v.Session.IsUpdate() {
		return EditHeading
	}
	return CreateHeading
}

// SubmitLabel is the dialog's submit button text.
func (v View) SubmitLabel() string {
	if v.Session.IsUpdate() {
		return EditLabel
	}
	return CreateLabel
}

// Page is the state of one notes page: what the container shows, the search
// box, the dialog and its edit session, and the status banner. Controller
// actions on a page run one at a time; View may be called at any time.
type Page struct {
	run sync.Mutex

	mu         sync.Mutex
	board      render.Board
	loaded     bool
	busy       bool
	searchTerm string
	searchMode note.SearchMode
	dialog     Dialog
	edit       session.Edit

	notices *notify.Presenter
}

// NewPage creates a page in browsing mode with an empty container.
func NewPage(notices *notify.Presenter) *Page {
	if notices == nil {
		notices = notify.NewPresenter(notify.DefaultTTL)
	}
	return &Page{
		board:      render.Build(nil),
		searchMode: note.SearchByTitle,
		notices:    notices,
	}
}

// Notices returns the page's status banner.
func (p *Page) Notices() *notify.Presenter {
	return p.notices
}

// View returns a snapshot of the page.
func (p *Page) View() View {
	p.mu.Lock()
	v := View{
		Board:      p.board,
		Loaded:     p.loaded,
		Busy:       p.busy,
		SearchTerm: p.searchTerm,
		SearchMode: p.searchMode,
		Dialog:     p.dialog,
		Session:    p.edit,
	}
	p.mu.Unlock()

	if n, ok := p.notices.Current(); ok {
		v.Notice = &n
	}
	return v
}

// begin serializes actions on the page. The returned func ends the action.
func (p *Page) begin() func() {
	p.run.Lock()
	p.update(func(p *Page) { p.busy = true })
	return func() {
		p.update(func(p *Page) { p.busy = false })
		p.run.Unlock()
	}
}

func (p *Page) update(fn func(*Page)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p)
}

func (p *Page) session() session.Edit {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edit
}
