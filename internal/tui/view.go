package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rpggio/noteboard/internal/app"
	"github.com/rpggio/noteboard/internal/domain/note"
	"github.com/rpggio/noteboard/internal/render"
)

const (
	defaultWidth   = 80
	cardHeight     = 7
	contentPreview = 3
)

func (m Model) View() string {
	v := m.page.View()
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	header := titleStyle.Render("📝 Notes")
	if m.inflight > 0 || v.Busy {
		header += metaStyle.Render(" loading…")
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.searchBar(width))
	b.WriteString("\n")

	if v.Notice != nil {
		b.WriteString(noticeStyles[v.Notice.Kind].Render(clean(v.Notice.Text)))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeDialog:
		b.WriteString(m.dialog(v, width))
	case modeConfirm:
		b.WriteString(m.board(v.Board, width))
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render(app.MsgDeletePrompt + " (y/n)"))
	default:
		b.WriteString(m.board(v.Board, width))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.helpKeys()))
	return b.String()
}

func (m Model) helpKeys() help.KeyMap {
	switch m.mode {
	case modeSearch:
		return searchKeys(m.keys)
	case modeDialog:
		return dialogKeys(m.keys)
	case modeConfirm:
		return confirmKeys(m.keys)
	default:
		return browseKeys(m.keys)
	}
}

func (m Model) searchBar(width int) string {
	label := "Title"
	if m.searchMode == note.SearchByTag {
		label = "Tag"
	}
	style := searchBarStyle
	if m.mode == modeSearch {
		style = searchBarActiveStyle
	}
	return style.Width(width - 2).Render(labelStyle.Render("["+label+"] ") + m.search.View())
}

func (m Model) board(b render.Board, width int) string {
	if b.IsEmpty() {
		return emptyStyle.Render(b.Empty.Title + "\n" + b.Empty.Hint)
	}

	first, last := m.visibleRange(len(b.Cards))
	cards := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		cards = append(cards, m.card(b.Cards[i], i == m.cursor, width))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, cards...)
	if first > 0 || last < len(b.Cards) {
		out += "\n" + metaStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(b.Cards)))
	}
	return out
}

// visibleRange returns the window of cards that fits the screen around the
// cursor.
func (m Model) visibleRange(n int) (int, int) {
	fit := n
	if m.height > 0 {
		fit = max((m.height-10)/cardHeight, 1)
	}
	if fit >= n {
		return 0, n
	}
	first := max(m.cursor-fit+1, 0)
	return first, min(first+fit, n)
}

func (m Model) card(c render.Card, selected bool, width int) string {
	inner := max(width-6, 10)
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}

	lines := []string{cardTitleStyle.Render(ansi.Truncate(clean(c.Title), inner, "…"))}
	content := strings.Split(strings.TrimRight(c.Content, "\n"), "\n")
	for i, line := range content {
		if i == contentPreview {
			lines = append(lines, metaStyle.Render("…"))
			break
		}
		lines = append(lines, ansi.Truncate(clean(line), inner, "…"))
	}
	if len(c.Tags) > 0 {
		chips := make([]string, len(c.Tags))
		for i, tag := range c.Tags {
			chips[i] = "#" + clean(tag)
		}
		lines = append(lines, tagStyle.Render(ansi.Truncate(strings.Join(chips, " "), inner, "…")))
	}
	meta := fmt.Sprintf("Created: %s  Updated: %s", clean(c.Created), clean(c.Updated))
	lines = append(lines, metaStyle.Render(ansi.Truncate(meta, inner, "…")))

	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) dialog(v app.View, width int) string {
	body := []string{
		titleStyle.Render(v.DialogHeading()),
		"",
		labelStyle.Render("Title"),
		m.title.View(),
		"",
		labelStyle.Render("Content"),
		m.content.View(),
		"",
		labelStyle.Render("Tags (comma separated)"),
		m.tags.View(),
		"",
		metaStyle.Render("ctrl+s: " + v.SubmitLabel()),
	}
	return dialogStyle.Width(width - 2).Render(strings.Join(body, "\n"))
}

// clean strips terminal escape sequences and control characters from text
// that came from the backend.
func clean(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}
