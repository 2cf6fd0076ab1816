package note

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SearchMode selects which backend search endpoint a term is matched against.
type SearchMode string

const (
	SearchByTitle SearchMode = "title"
	SearchByTag   SearchMode = "tag"
)

// ParseSearchMode maps a UI selector value to a mode. Anything other than
// "title" searches tags.
func ParseSearchMode(value string) SearchMode {
	if strings.TrimSpace(value) == string(SearchByTitle) {
		return SearchByTitle
	}
	return SearchByTag
}

// Note is the client's ephemeral copy of a backend note.
type Note struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Tags          string `json:"tags,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
	LastUpdatedAt string `json:"LastUpdatedAt,omitempty"`
}

// UpdatedLabel returns the "updated" timestamp to display. The backend has
// been seen sending LastUpdatedAt alongside updatedAt; the former wins.
func (n Note) UpdatedLabel() string {
	if n.LastUpdatedAt != "" {
		return n.LastUpdatedAt
	}
	return n.UpdatedAt
}

type wireNote struct {
	ID            json.RawMessage `json:"id"`
	Title         json.RawMessage `json:"title"`
	Content       json.RawMessage `json:"content"`
	Tags          json.RawMessage `json:"tags"`
	CreatedAt     json.RawMessage `json:"createdAt"`
	UpdatedAt     json.RawMessage `json:"updatedAt"`
	LastUpdatedAt json.RawMessage `json:"LastUpdatedAt"`
}

// UnmarshalJSON decodes a note leniently: scalar fields keep the literal text
// of whatever JSON scalar the backend sent, and tags may be a comma-separated
// string or an array of strings.
func (n *Note) UnmarshalJSON(data []byte) error {
	var w wireNote
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var out Note
	var err error
	if out.ID, err = scalarText(w.ID); err != nil {
		return err
	}
	if out.Title, err = scalarText(w.Title); err != nil {
		return err
	}
	if out.Content, err = scalarText(w.Content); err != nil {
		return err
	}
	if out.Tags, err = tagsText(w.Tags); err != nil {
		return err
	}
	if out.CreatedAt, err = scalarText(w.CreatedAt); err != nil {
		return err
	}
	if out.UpdatedAt, err = scalarText(w.UpdatedAt); err != nil {
		return err
	}
	if out.LastUpdatedAt, err = scalarText(w.LastUpdatedAt); err != nil {
		return err
	}
	*n = out
	return nil
}

func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	if raw[0] == '{' || raw[0] == '[' {
		return "", fmt.Errorf("expected scalar, got %s", raw)
	}
	return string(raw), nil
}

func tagsText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return "", err
		}
		return strings.Join(list, ","), nil
	}
	return scalarText(raw)
}
