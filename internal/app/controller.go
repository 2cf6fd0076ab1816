package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/noteboard/internal/backend"
	"github.com/rpggio/noteboard/internal/domain/note"
	"github.com/rpggio/noteboard/internal/render"
)

// Controller runs user actions against the backend and updates a Page.
// Failures never escape an action; they end up in the page's status banner.
type Controller struct {
	api    NotesAPI
	logger *slog.Logger
}

// NewController creates a controller.
func NewController(api NotesAPI, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{api: api, logger: logger}
}

// Load fetches every note and replaces the container contents. On failure
// the previous contents stay.
func (c *Controller) Load(ctx context.Context, p *Page) {
	defer p.begin()()
	c.load(ctx, p)
}

// EnsureLoaded runs Load until it has succeeded once for the page.
func (c *Controller) EnsureLoaded(ctx context.Context, p *Page) {
	defer p.begin()()
	loaded := false
	p.update(func(p *Page) { loaded = p.loaded })
	if !loaded {
		c.load(ctx, p)
	}
}

func (c *Controller) load(ctx context.Context, p *Page) {
	notes, err := c.api.ListNotes(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "load notes failed", "error", err)
		p.notices.Error(MsgLoadFailed)
		return
	}
	board := render.Build(notes)
	p.update(func(p *Page) {
		p.board = board
		p.loaded = true
	})
}

// Search runs a title or tag search. An empty term is rejected without
// contacting the backend.
func (c *Controller) Search(ctx context.Context, p *Page, term string, mode note.SearchMode) {
	defer p.begin()()
	p.update(func(p *Page) {
		p.searchTerm = term
		p.searchMode = mode
	})

	term, err := note.ValidateSearchTerm(term)
	if err != nil {
		p.notices.Error(MsgEmptySearch)
		return
	}

	notes, err := c.api.Search(ctx, mode, term)
	if err != nil {
		c.logger.WarnContext(ctx, "search failed", "mode", mode, "error", err)
		p.notices.Error(MsgSearchFailed)
		return
	}

	board := render.Build(notes)
	p.update(func(p *Page) {
		p.board = board
		p.loaded = true
	})
	if len(notes) == 0 {
		p.notices.Info(MsgNoResults)
		return
	}
	p.notices.Success(fmt.Sprintf(MsgFoundFormat, len(notes)))
}

// ResetSearch clears the search input and reloads all notes.
func (c *Controller) ResetSearch(ctx context.Context, p *Page) {
	defer p.begin()()
	p.update(func(p *Page) { p.searchTerm = "" })
	c.load(ctx, p)
}

// OpenCreate opens an empty dialog for a new note.
func (c *Controller) OpenCreate(p *Page) {
	defer p.begin()()
	p.update(func(p *Page) {
		p.edit = p.edit.OpenCreate()
		p.dialog = Dialog{Open: true}
	})
}

// OpenEdit fetches the current list, finds the note by id and opens the
// dialog prefilled with it. An id that is no longer present does nothing.
func (c *Controller) OpenEdit(ctx context.Context, p *Page, id string) {
	defer p.begin()()
	notes, err := c.api.ListNotes(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "load note for edit failed", "note_id", id, "error", err)
		p.notices.Error(MsgNoteLoadFailed)
		return
	}
	for _, n := range notes {
		if n.ID != id {
			continue
		}
		p.update(func(p *Page) {
			p.edit = p.edit.OpenEdit(n.ID)
			p.dialog = Dialog{Open: true, Form: note.DraftFrom(n)}
		})
		return
	}
	c.logger.DebugContext(ctx, "note for edit not found", "note_id", id)
}

// Submit creates or updates a note depending on the edit session. On success
// the dialog closes and the list reloads; on failure the dialog stays open
// with the entered values.
func (c *Controller) Submit(ctx context.Context, p *Page, form note.Draft) {
	defer p.begin()()
	p.update(func(p *Page) { p.dialog.Form = form })

	edit := p.session()
	var err error
	if edit.IsUpdate() {
		err = c.api.UpdateNote(ctx, edit.NoteID(), form)
	} else {
		err = c.api.CreateNote(ctx, form)
	}

	if err != nil {
		c.logger.WarnContext(ctx, "submit note failed", "session", edit.String(), "error", err)
		fallback := MsgCreateFailed
		if edit.IsUpdate() {
			fallback = MsgUpdateFailed
		}
		p.notices.Error(failureText(err, fallback, MsgSubmitOffline))
		return
	}

	if edit.IsUpdate() {
		p.notices.Success(MsgUpdated)
	} else {
		p.notices.Success(MsgCreated)
	}
	p.update(closeDialog)
	c.load(ctx, p)
}

// Delete asks for confirmation and deletes the note. A declined prompt
// sends nothing. Failures show a fixed text; the delete endpoint carries no
// message body.
func (c *Controller) Delete(ctx context.Context, p *Page, id string, confirm Confirmer) {
	defer p.begin()()
	if confirm == nil || !confirm.Confirm(ctx, MsgDeletePrompt) {
		return
	}

	if err := c.api.DeleteNote(ctx, id); err != nil {
		c.logger.WarnContext(ctx, "delete note failed", "note_id", id, "error", err)
		if backend.IsNetwork(err) {
			p.notices.Error(MsgDeleteOffline)
		} else {
			p.notices.Error(MsgDeleteFailed)
		}
		return
	}

	p.notices.Success(MsgDeleted)
	c.load(ctx, p)
}

// CloseDialog hides the dialog, clears the form and ends the edit session.
func (c *Controller) CloseDialog(p *Page) {
	defer p.begin()()
	p.update(closeDialog)
}

// Dismiss handles a click on the open dialog. Only the backdrop closes it.
func (c *Controller) Dismiss(p *Page, target Target) {
	if target != TargetBackdrop {
		return
	}
	c.CloseDialog(p)
}

func closeDialog(p *Page) {
	p.dialog = Dialog{}
	p.edit = p.edit.Close()
}
