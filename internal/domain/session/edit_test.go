package session_test

import (
	"testing"

	"github.com/rpggio/noteboard/internal/domain/session"
	"github.com/stretchr/testify/require"
)

func TestEdit_ZeroValueIsBrowsing(t *testing.T) {
	var e session.Edit
	require.Equal(t, session.Browsing, e.Mode())
	require.Empty(t, e.NoteID())
	require.False(t, e.IsUpdate())
	require.Equal(t, "browsing", e.String())
}

func TestEdit_Transitions(t *testing.T) {
	var e session.Edit

	created := e.OpenCreate()
	require.Equal(t, session.Editing, created.Mode())
	require.False(t, created.IsUpdate())
	require.Equal(t, "editing(new)", created.String())

	edited := created.OpenEdit("n1")
	require.Equal(t, session.Editing, edited.Mode())
	require.True(t, edited.IsUpdate())
	require.Equal(t, "n1", edited.NoteID())

	replaced := edited.OpenEdit("n2")
	require.Equal(t, "n2", replaced.NoteID())

	closed := replaced.Close()
	require.Equal(t, session.Browsing, closed.Mode())
	require.Empty(t, closed.NoteID())

	// Transitions never mutate the receiver.
	require.Equal(t, "n1", edited.NoteID())
}

func TestEdit_OpenCreateClearsTarget(t *testing.T) {
	e := session.Edit{}.OpenEdit("n1").OpenCreate()
	require.Empty(t, e.NoteID())
	require.False(t, e.IsUpdate())
}
