// Package domain defines domain models and interfaces
package domain

import "context"

// NoteRepository persists notes.
type NoteRepository interface {
	// GetByTitleHash gets a note by title hash
	GetByTitleHash(ctx context.Context, titleHash string) (*Note, error)

	// Create creates a note
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update updates a note
	Update(ctx context.Context, note *Note) (*Note, error)

	// Delete removes a note by title hash; deleting an absent note is not an error
	Delete(ctx context.Context, titleHash string) error

	// List pages through notes ordered by title
	List(ctx context.Context, page, pageSize int, keyword string) ([]*Note, error)

	// ListCount counts notes matching the keyword
	ListCount(ctx context.Context, keyword string) (int64, error)

	// ListAll returns every persisted note, links included
	ListAll(ctx context.Context) ([]*Note, error)
}

// NoteLinkRepository persists the parsed outbound links of notes.
type NoteLinkRepository interface {
	// ReplaceForSource atomically replaces all links owned by a source note
	ReplaceForSource(ctx context.Context, sourceNoteID int64, links []*Link) error

	// DeleteBySourceNoteID deletes all links from a source note
	DeleteBySourceNoteID(ctx context.Context, sourceNoteID int64) error

	// ListBySourceNoteID gets all links from a source note in insertion order
	ListBySourceNoteID(ctx context.Context, sourceNoteID int64) ([]*Link, error)
}
