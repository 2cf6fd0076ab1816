package app

import (
	"context"

	"github.com/rpggio/noteboard/internal/domain/note"
)

// NotesAPI is the backend surface the controller drives.
type NotesAPI interface {
	ListNotes(ctx context.Context) ([]note.Note, error)
	Search(ctx context.Context, mode note.SearchMode, term string) ([]note.Note, error)
	CreateNote(ctx context.Context, draft note.Draft) error
	UpdateNote(ctx context.Context, id string, draft note.Draft) error
	DeleteNote(ctx context.Context, id string) error
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Answer returns a Confirmer with a fixed answer, for front ends that have
// already asked the user.
func Answer(yes bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) bool { return yes })
}
