// Package domain defines domain models and interfaces
package domain

// Link is a directed wiki-style reference from a source note to a target
// title. The target may or may not name an existing note; a link to a
// missing title is a dangling reference, not an error.
type Link struct {
	ID          int64
	SourceTitle string
	TargetTitle string
	// TargetTitleHash is the hash of the folded target title, so persisted
	// links match note rows under the configured case sensitivity. Set by
	// the service before the link is persisted.
	TargetTitleHash string
	Alias           string // alias from [[target|alias]]
	IsEmbed         bool   // true if embed (![[...]]) vs regular link ([[...]])
}
