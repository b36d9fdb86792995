package domain

import "strings"

// ImportRow is one spreadsheet row keyed by its trimmed header cell.
// Cell values are the raw text the reader saw, so numeric cells keep their
// serial or fraction form.
type ImportRow map[string]string

// Get returns the first non-empty value among the header aliases.
func (r ImportRow) Get(aliases ...string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(r[alias]); v != "" {
			return v
		}
	}
	return ""
}
