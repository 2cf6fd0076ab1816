package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Search     key.Binding
	ToggleMode key.Binding
	RunSearch  key.Binding
	Reset      key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Yes        key.Binding
	No         key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ToggleMode: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "title/tag")),
		RunSearch:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run search")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Yes:        key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		No:         key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// browseKeys is the help.KeyMap shown while browsing the list.
type browseKeys keyMap

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Search, k.New, k.Edit, k.Delete, k.Reset, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type searchKeys keyMap

func (k searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.RunSearch, k.ToggleMode, k.Cancel}
}

func (k searchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type dialogKeys keyMap

func (k dialogKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.PrevField, k.Cancel}
}

func (k dialogKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type confirmKeys keyMap

func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
