package session

// Mode is the page mode of the notes client.
type Mode string

const (
	Browsing Mode = "browsing"
	Editing  Mode = "editing"
)

// Edit is the edit session of one page: either browsing, or editing a new
// note, or editing an existing note identified by id. The zero value is
// Browsing. Edit is a value; transitions return the next state.
type Edit struct {
	mode   Mode
	noteID string
}

// Mode reports whether the page is browsing or has the dialog open.
func (e Edit) Mode() Mode {
	if e.mode == "" {
		return Browsing
	}
	return e.mode
}

// NoteID returns the id of the note being edited, or "" when browsing or
// creating a new note.
func (e Edit) NoteID() string {
	return e.noteID
}

// IsUpdate reports whether a submit should update an existing note.
func (e Edit) IsUpdate() bool {
	return e.Mode() == Editing && e.noteID != ""
}

// OpenCreate starts an edit session for a new note.
func (e Edit) OpenCreate() Edit {
	return Edit{mode: Editing}
}

// OpenEdit starts an edit session for the note with the given id. Any
// previous session is replaced.
func (e Edit) OpenEdit(noteID string) Edit {
	return Edit{mode: Editing, noteID: noteID}
}

// Close ends the edit session.
func (e Edit) Close() Edit {
	return Edit{}
}

func (e Edit) String() string {
	switch {
	case e.Mode() == Browsing:
		return string(Browsing)
	case e.noteID == "":
		return "editing(new)"
	default:
		return "editing(" + e.noteID + ")"
	}
}
