// Package dto defines the request and response shapes of the HTTP API.
package dto

import "github.com/ForkFiesta/note-graph-service/pkg/timex"

// NoteGetRequest fetches a single note by title.
type NoteGetRequest struct {
	Title string `json:"title" form:"title" binding:"required,notetitle"`
}

// NoteUpsertRequest creates a new note or replaces the body of an existing
// one. The body may be empty.
type NoteUpsertRequest struct {
	Title string `json:"title" form:"title" binding:"required,notetitle"`
	Body  string `json:"content" form:"content"`
}

// NoteDeleteRequest removes a note by title.
type NoteDeleteRequest struct {
	Title string `json:"title" form:"title" binding:"required,notetitle"`
}

// NoteListRequest pages through notes, optionally filtered by keyword.
type NoteListRequest struct {
	Keyword string `json:"keyword" form:"keyword"`
}

// NoteDTO is the API representation of a note.
type NoteDTO struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Body      string         `json:"content"`
	Links     []NoteLinkItem `json:"links"`
	CreatedAt timex.Time     `json:"createdAt"`
	UpdatedAt timex.Time     `json:"updatedAt"`
}

// NoteLinkItem is one wiki-link occurrence.
type NoteLinkItem struct {
	SourceTitle string `json:"sourceTitle"`
	TargetTitle string `json:"targetTitle"`
	Alias       string `json:"alias,omitempty"`
	IsEmbed     bool   `json:"isEmbed,omitempty"`
}
