package mocks

import (
	"context"

	"github.com/rpggio/noteboard/internal/domain/note"
	"github.com/stretchr/testify/mock"
)

// NotesAPI is a mock for app.NotesAPI.
type NotesAPI struct {
	mock.Mock
}

func (m *NotesAPI) ListNotes(ctx context.Context) ([]note.Note, error) {
	args := m.Called(ctx)
	if notes, ok := args.Get(0).([]note.Note); ok {
		return notes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotesAPI) Search(ctx context.Context, mode note.SearchMode, term string) ([]note.Note, error) {
	args := m.Called(ctx, mode, term)
	if notes, ok := args.Get(0).([]note.Note); ok {
		return notes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotesAPI) CreateNote(ctx context.Context, draft note.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *NotesAPI) UpdateNote(ctx context.Context, id string, draft note.Draft) error {
	args := m.Called(ctx, id, draft)
	return args.Error(0)
}

func (m *NotesAPI) DeleteNote(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Confirmer is a mock for app.Confirmer.
type Confirmer struct {
	mock.Mock
}

func (m *Confirmer) Confirm(ctx context.Context, prompt string) bool {
	args := m.Called(ctx, prompt)
	return args.Bool(0)
}
