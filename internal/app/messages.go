package app

// User-facing notice texts.
const (
	MsgLoadFailed     = "Failed to fetch notes. Make sure the backend is running."
	MsgEmptySearch    = "Please enter a search term"
	MsgFoundFormat    = "Found %d note(s)"
	MsgNoResults      = "No notes found"
	MsgSearchFailed   = "Search failed"
	MsgNoteLoadFailed = "Failed to load note"
	MsgCreated        = "Note created successfully"
	MsgUpdated        = "Note updated successfully"
	MsgCreateFailed   = "Failed to create note"
	MsgUpdateFailed   = "Failed to update note"
	MsgSubmitOffline  = "Operation failed. Check your connection."
	MsgDeletePrompt   = "Are you sure you want to delete this note?"
	MsgDeleted        = "Note deleted successfully"
	MsgDeleteFailed   = "Failed to delete note"
	MsgDeleteOffline  = "Delete operation failed"
)

// Dialog headings and submit labels.
const (
	CreateHeading = "Create New Note"
	CreateLabel   = "Create Note"
	EditHeading   = "Edit Note"
	EditLabel     = "Update Note"
)
