// Package render turns backend notes into a display tree that front ends draw.
// Building the tree is pure; escaping happens in the emitters.
package render

import (
	"strings"

	"github.com/rpggio/noteboard/internal/domain/note"
)

// Empty-state copy shown when there is nothing to list.
const (
	EmptyTitle = "No notes yet"
	EmptyHint  = "Create your first note to get started!"
)

// Board is the full content of the notes container. Exactly one of Empty and
// Cards is set.
type Board struct {
	Empty *EmptyState
	Cards []Card
}

// EmptyState is the placeholder drawn instead of a list.
type EmptyState struct {
	Title string
	Hint  string
}

// Card is one note as displayed. Text fields are raw; emitters escape them.
type Card struct {
	// Index is the position in the backend's ordering, used for staggered
	// entrance styling.
	Index   int
	ID      string
	Title   string
	Content string
	// Tags is nil when the note has no tag section.
	Tags    []string
	Created string
	Updated string
}

// IsEmpty reports whether the board shows the empty state.
func (b Board) IsEmpty() bool {
	return len(b.Cards) == 0
}

// Build lays out notes in the order given.
func Build(notes []note.Note) Board {
	if len(notes) == 0 {
		return Board{Empty: &EmptyState{Title: EmptyTitle, Hint: EmptyHint}}
	}
	cards := make([]Card, 0, len(notes))
	for i, n := range notes {
		cards = append(cards, Card{
			Index:   i,
			ID:      n.ID,
			Title:   n.Title,
			Content: n.Content,
			Tags:    SplitTags(n.Tags),
			Created: n.CreatedAt,
			Updated: n.UpdatedLabel(),
		})
	}
	return Board{Cards: cards}
}

// SplitTags splits a stored tag string into trimmed chips. It returns nil
// when no chip would have text.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
