// Package tui is the terminal front end: a bubbletea program over one notes
// page.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/noteboard/internal/app"
	"github.com/rpggio/noteboard/internal/domain/note"
	"github.com/rpggio/noteboard/internal/notify"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeDialog
	modeConfirm
)

const (
	fieldTitle = iota
	fieldContent
	fieldTags
	fieldCount
)

// actionDoneMsg reports that a controller action finished.
type actionDoneMsg struct{}

// noticeChangedMsg reports that the banner changed outside an action, such
// as a notice expiring.
type noticeChangedMsg struct{}

// Model is the bubbletea model.
type Model struct {
	ctx        context.Context
	controller *app.Controller
	page       *app.Page
	changes    <-chan struct{}

	keys keyMap
	help help.Model

	search     textinput.Model
	searchMode note.SearchMode
	title      textinput.Model
	content    textarea.Model
	tags       textinput.Model
	field      int

	mode          mode
	cursor        int
	pendingDelete string
	inflight      int

	width  int
	height int
}

// New creates a model with a fresh page whose notices last noticeTTL.
func New(ctx context.Context, controller *app.Controller, noticeTTL time.Duration) Model {
	changes := make(chan struct{}, 1)
	notices := notify.NewPresenter(noticeTTL, notify.WithOnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}))

	search := newInput("Search notes...", 100)
	title := newInput("Title", 200)
	tags := newInput("tag1, tag2", 200)

	content := textarea.New()
	content.Placeholder = "Content"
	content.ShowLineNumbers = false
	content.SetHeight(6)
	content.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		ctx:        ctx,
		controller: controller,
		page:       app.NewPage(notices),
		changes:    changes,
		keys:       newKeyMap(),
		help:       help.New(),
		search:     search,
		searchMode: note.SearchByTitle,
		title:      title,
		content:    content,
		tags:       tags,
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// Page returns the page the model drives.
func (m Model) Page() *app.Page {
	return m.page
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForNotice(), m.action(func(ctx context.Context) {
		m.controller.Load(ctx, m.page)
	}))
}

// action runs a controller action off the UI goroutine. Callers count it
// in inflight.
func (m Model) action(fn func(ctx context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		fn(ctx)
		return actionDoneMsg{}
	}
}

func (m Model) waitForNotice() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return noticeChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-24, 10)
		m.title.Width = max(msg.Width-16, 10)
		m.tags.Width = max(msg.Width-16, 10)
		m.content.SetWidth(max(msg.Width-12, 10))
		return m, nil

	case actionDoneMsg:
		if m.inflight > 0 {
			m.inflight--
		}
		m.sync()
		return m, nil

	case noticeChangedMsg:
		return m, m.waitForNotice()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeDialog:
			return m.updateDialog(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.page.View().Board.Cards

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Reset):
		m.search.SetValue("")
		m.inflight++
		return m, m.action(func(ctx context.Context) {
			m.controller.ResetSearch(ctx, m.page)
		})
	case key.Matches(msg, m.keys.New):
		m.inflight++
		return m, m.action(func(context.Context) {
			m.controller.OpenCreate(m.page)
		})
	case key.Matches(msg, m.keys.Edit):
		if len(cards) == 0 {
			return m, nil
		}
		id := cards[m.cursor].ID
		m.inflight++
		return m, m.action(func(ctx context.Context) {
			m.controller.OpenEdit(ctx, m.page, id)
		})
	case key.Matches(msg, m.keys.Delete):
		if len(cards) == 0 {
			return m, nil
		}
		m.pendingDelete = cards[m.cursor].ID
		m.mode = modeConfirm
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.ToggleMode):
		if m.searchMode == note.SearchByTitle {
			m.searchMode = note.SearchByTag
		} else {
			m.searchMode = note.SearchByTitle
		}
		return m, nil
	case key.Matches(msg, m.keys.RunSearch):
		m.mode = modeBrowse
		m.search.Blur()
		m.cursor = 0
		term, searchMode := m.search.Value(), m.searchMode
		m.inflight++
		return m, m.action(func(ctx context.Context) {
			m.controller.Search(ctx, m.page, term, searchMode)
		})
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.inflight++
		return m, m.action(func(context.Context) {
			m.controller.CloseDialog(m.page)
		})
	case key.Matches(msg, m.keys.Submit):
		form := note.Draft{
			Title:   m.title.Value(),
			Content: m.content.Value(),
			Tags:    m.tags.Value(),
		}
		m.inflight++
		return m, m.action(func(ctx context.Context) {
			m.controller.Submit(ctx, m.page, form)
		})
	case key.Matches(msg, m.keys.NextField):
		cmd := m.focusField((m.field + 1) % fieldCount)
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := m.focusField((m.field + fieldCount - 1) % fieldCount)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.field {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
	case fieldTags:
		m.tags, cmd = m.tags.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		id := m.pendingDelete
		m.pendingDelete = ""
		m.mode = modeBrowse
		m.inflight++
		return m, m.action(func(ctx context.Context) {
			m.controller.Delete(ctx, m.page, id, app.Answer(true))
		})
	case key.Matches(msg, m.keys.No):
		m.pendingDelete = ""
		m.mode = modeBrowse
	}
	return m, nil
}

// sync aligns local widgets with the page after an action.
func (m *Model) sync() {
	v := m.page.View()
	if n := len(v.Board.Cards); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}

	switch {
	case v.Dialog.Open && m.mode != modeDialog:
		m.mode = modeDialog
		m.title.SetValue(v.Dialog.Form.Title)
		m.content.SetValue(v.Dialog.Form.Content)
		m.tags.SetValue(v.Dialog.Form.Tags)
		m.focusField(fieldTitle)
	case !v.Dialog.Open && m.mode == modeDialog:
		m.mode = modeBrowse
		m.title.Blur()
		m.content.Blur()
		m.tags.Blur()
	}
}

func (m *Model) focusField(field int) tea.Cmd {
	m.field = field
	m.title.Blur()
	m.content.Blur()
	m.tags.Blur()
	switch field {
	case fieldContent:
		return m.content.Focus()
	case fieldTags:
		return m.tags.Focus()
	default:
		return m.title.Focus()
	}
}
