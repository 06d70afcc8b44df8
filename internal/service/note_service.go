// Package service implements business logic layer
package service

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ForkFiesta/note-graph-service/internal/domain"
	"github.com/ForkFiesta/note-graph-service/internal/dto"
	"github.com/ForkFiesta/note-graph-service/internal/graph"
	"github.com/ForkFiesta/note-graph-service/pkg/app"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
	"github.com/ForkFiesta/note-graph-service/pkg/timex"
	"github.com/ForkFiesta/note-graph-service/pkg/util"
)

// NoteService defines the note service interface
type NoteService interface {
	// Upsert creates a note or replaces the body of an existing one
	Upsert(ctx context.Context, params *dto.NoteUpsertRequest) (*dto.NoteDTO, error)

	// Get fetches a note by title
	Get(ctx context.Context, params *dto.NoteGetRequest) (*dto.NoteDTO, error)

	// Delete removes a note; deleting an absent note is a no-op
	Delete(ctx context.Context, params *dto.NoteDeleteRequest) error

	// List pages through persisted notes
	List(ctx context.Context, params *dto.NoteListRequest, pager *app.Pager) ([]*dto.NoteDTO, int, error)

	// Rebuild reloads the in-memory graph from persistence
	Rebuild(ctx context.Context) error
}

// noteService implements NoteService interface
type noteService struct {
	noteRepo domain.NoteRepository
	linkRepo domain.NoteLinkRepository
	graph    *graph.Store
	logger   *zap.Logger
}

// NewNoteService creates a NoteService instance
func NewNoteService(noteRepo domain.NoteRepository, linkRepo domain.NoteLinkRepository, g *graph.Store, logger *zap.Logger) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		linkRepo: linkRepo,
		graph:    g,
		logger:   logger,
	}
}

// titleHash hashes the folded title so matching follows the configured
// case sensitivity.
func (s *noteService) titleHash(title string) string {
	return util.EncodeHash32(s.graph.Fold(title))
}

// toDTO converts a domain note to its API shape
func toDTO(note *domain.Note) *dto.NoteDTO {
	if note == nil {
		return nil
	}
	d := &dto.NoteDTO{}
	_ = copier.Copy(d, note)
	return d
}

// Upsert creates a note or replaces the body of an existing one. The graph
// is updated first, then the change is persisted.
func (s *noteService) Upsert(ctx context.Context, params *dto.NoteUpsertRequest) (*dto.NoteDTO, error) {
	note := s.graph.AddOrUpdateNote(params.Title, params.Body)
	note.TitleHash = s.titleHash(params.Title)

	existing, err := s.noteRepo.GetByTitleHash(ctx, note.TitleHash)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	var persisted *domain.Note
	if existing == nil {
		persisted, err = s.noteRepo.Create(ctx, note)
	} else {
		note.ID = existing.ID
		persisted, err = s.noteRepo.Update(ctx, note)
	}
	if err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	note.ID = persisted.ID
	note.CreatedAt = persisted.CreatedAt
	note.UpdatedAt = persisted.UpdatedAt

	links := make([]*domain.Link, len(note.Links))
	for i := range note.Links {
		note.Links[i].TargetTitleHash = s.titleHash(note.Links[i].TargetTitle)
		links[i] = &note.Links[i]
	}
	if err := s.linkRepo.ReplaceForSource(ctx, note.ID, links); err != nil {
		return nil, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	s.logger.Debug("note upserted",
		zap.String("title", note.Title),
		zap.Int("links", len(note.Links)))

	return toDTO(note), nil
}

// Get fetches a note by title
func (s *noteService) Get(ctx context.Context, params *dto.NoteGetRequest) (*dto.NoteDTO, error) {
	note, ok := s.graph.Get(params.Title)
	if !ok {
		return nil, code.ErrorNoteNotFound
	}

	d := toDTO(note)

	// The graph holds no timestamps; fill them from persistence when the
	// row is available.
	if persisted, err := s.noteRepo.GetByTitleHash(ctx, s.titleHash(params.Title)); err == nil {
		d.ID = persisted.ID
		d.CreatedAt = timex.Time(persisted.CreatedAt)
		d.UpdatedAt = timex.Time(persisted.UpdatedAt)
	}

	return d, nil
}

// Delete removes a note from the graph and from persistence. Absent titles
// are a no-op; links pointing at the removed title become dangling.
func (s *noteService) Delete(ctx context.Context, params *dto.NoteDeleteRequest) error {
	s.graph.RemoveNote(params.Title)

	hash := s.titleHash(params.Title)
	existing, err := s.noteRepo.GetByTitleHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	if err := s.linkRepo.DeleteBySourceNoteID(ctx, existing.ID); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}
	if err := s.noteRepo.Delete(ctx, hash); err != nil {
		return code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	s.logger.Debug("note deleted", zap.String("title", params.Title))
	return nil
}

// List pages through persisted notes ordered by title
func (s *noteService) List(ctx context.Context, params *dto.NoteListRequest, pager *app.Pager) ([]*dto.NoteDTO, int, error) {
	count, err := s.noteRepo.ListCount(ctx, params.Keyword)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	notes, err := s.noteRepo.List(ctx, pager.Page, pager.PageSize, params.Keyword)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.Clone().WithDetails(err.Error())
	}

	var results []*dto.NoteDTO
	for _, note := range notes {
		d := toDTO(note)
		// Links are owned by the graph, not the listing query.
		for _, link := range s.graph.Outlinks(note.Title) {
			item := dto.NoteLinkItem{}
			_ = copier.Copy(&item, link)
			d.Links = append(d.Links, item)
		}
		results = append(results, d)
	}

	return results, int(count), nil
}

// Rebuild reloads every persisted note into the in-memory graph. Used at
// startup so queries never see a partially loaded graph.
func (s *noteService) Rebuild(ctx context.Context) error {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return code.ErrorGraphRebuild.Clone().WithDetails(err.Error())
	}

	for _, note := range notes {
		s.graph.AddOrUpdateNote(note.Title, note.Body)
	}

	s.logger.Info("graph rebuilt from persistence", zap.Int("notes", len(notes)))
	return nil
}

// Ensure noteService implements NoteService interface
var _ NoteService = (*noteService)(nil)
