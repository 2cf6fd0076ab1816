package note_test

import (
	"encoding/json"
	"testing"

	"github.com/rpggio/noteboard/internal/domain/note"
	"github.com/stretchr/testify/require"
)

func TestNote_UnmarshalLenient(t *testing.T) {
	var n note.Note
	err := json.Unmarshal([]byte(`{
		"id": 42,
		"title": "Groceries",
		"content": "milk",
		"tags": ["home", " errands "],
		"createdAt": "2024-01-02T03:04:05Z",
		"updatedAt": 1704164645
	}`), &n)
	require.NoError(t, err)
	require.Equal(t, "42", n.ID)
	require.Equal(t, "Groceries", n.Title)
	require.Equal(t, "home, errands ", n.Tags)
	require.Equal(t, "2024-01-02T03:04:05Z", n.CreatedAt)
	require.Equal(t, "1704164645", n.UpdatedAt)
	require.Empty(t, n.LastUpdatedAt)
}

func TestNote_UnmarshalNullTags(t *testing.T) {
	var n note.Note
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","title":"t","content":"","tags":null}`), &n))
	require.Empty(t, n.Tags)
}

func TestNote_UnmarshalRejectsObjectTitle(t *testing.T) {
	var n note.Note
	require.Error(t, json.Unmarshal([]byte(`{"id":"a","title":{"x":1}}`), &n))
}

func TestNote_UpdatedLabel(t *testing.T) {
	both := note.Note{UpdatedAt: "standard", LastUpdatedAt: "alternate"}
	require.Equal(t, "alternate", both.UpdatedLabel())

	standardOnly := note.Note{UpdatedAt: "standard"}
	require.Equal(t, "standard", standardOnly.UpdatedLabel())

	var decoded note.Note
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","updatedAt":"u","LastUpdatedAt":"l"}`), &decoded))
	require.Equal(t, "u", decoded.UpdatedAt)
	require.Equal(t, "l", decoded.UpdatedLabel())
}

func TestParseSearchMode(t *testing.T) {
	require.Equal(t, note.SearchByTitle, note.ParseSearchMode("title"))
	require.Equal(t, note.SearchByTag, note.ParseSearchMode("tag"))
	require.Equal(t, note.SearchByTag, note.ParseSearchMode(""))
	require.Equal(t, note.SearchByTag, note.ParseSearchMode("anything"))
}

func TestParseTags(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, note.ParseTags("a, b ,c"))
	require.Equal(t, []string{"x", "x"}, note.ParseTags(" x,, ,x "))
	require.Equal(t, []string{}, note.ParseTags("   "))
	require.NotNil(t, note.ParseTags(""))
}

func TestDraft_Payload(t *testing.T) {
	p := note.Draft{Title: "  Title ", Content: "\nbody\n", Tags: "one, two,"}.Payload()
	require.Equal(t, "Title", p.Title)
	require.Equal(t, "body", p.Content)
	require.Equal(t, []string{"one", "two"}, p.Tags)

	data, err := json.Marshal(note.Draft{Title: "t"}.Payload())
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"t","content":"","tags":[]}`, string(data))
}

func TestValidateSearchTerm(t *testing.T) {
	term, err := note.ValidateSearchTerm("  milk ")
	require.NoError(t, err)
	require.Equal(t, "milk", term)

	_, err = note.ValidateSearchTerm(" \t ")
	require.ErrorIs(t, err, note.ErrValidation)
	var verr *note.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "search term", verr.Field)
}
