// Package domain defines domain models and interfaces
package domain

import "time"

// Note is a titled document in the vault. Title uniqueness is the only
// invariant; the body is unstructured text and Links holds every outbound
// wiki-style reference parsed from it, in order of appearance.
type Note struct {
	ID        int64
	Title     string
	TitleHash string
	Body      string
	Links     []Link
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLinkTo reports whether the note contains at least one Link whose
// target equals the given title under the provided fold function.
func (n *Note) HasLinkTo(title string, fold func(string) string) bool {
	want := fold(title)
	for _, l := range n.Links {
		if fold(l.TargetTitle) == want {
			return true
		}
	}
	return false
}
