package note

import "strings"

// ValidateSearchTerm trims a search term and rejects it when nothing is left.
func ValidateSearchTerm(term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", &ValidationError{Field: "search term"}
	}
	return term, nil
}
