package note

import "strings"

// Draft is the content of the create/edit dialog as typed by the user.
type Draft struct {
	Title   string
	Content string
	Tags    string
}

// Payload is the JSON body sent for create and update.
type Payload struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Payload trims the draft and parses its tag field for transmission.
func (d Draft) Payload() Payload {
	return Payload{
		Title:   strings.TrimSpace(d.Title),
		Content: strings.TrimSpace(d.Content),
		Tags:    ParseTags(d.Tags),
	}
}

// DraftFrom fills a dialog form from an existing note.
func DraftFrom(n Note) Draft {
	return Draft{Title: n.Title, Content: n.Content, Tags: n.Tags}
}

// ParseTags splits a comma-separated tag field, trims every entry and drops
// the empty ones. Order and duplicates are kept. The result is never nil.
func ParseTags(raw string) []string {
	tags := []string{}
	if strings.TrimSpace(raw) == "" {
		return tags
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}
