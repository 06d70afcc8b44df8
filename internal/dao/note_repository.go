// Package dao implements the data access layer
package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ForkFiesta/note-graph-service/internal/domain"
	"github.com/ForkFiesta/note-graph-service/internal/model"
	"github.com/ForkFiesta/note-graph-service/pkg/timex"
)

// noteRepository implements domain.NoteRepository interface
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository creates a NoteRepository instance
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// db returns the note table handle, ensuring the table is migrated once
func (r *noteRepository) db() *gorm.DB {
	r.dao.migrateOnce("note", "Note")
	return r.dao.Db
}

// toDomain converts database model to domain model
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		TitleHash: m.TitleHash,
		Body:      m.Content,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel converts domain model to database model
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	return &model.Note{
		ID:        note.ID,
		Title:     note.Title,
		TitleHash: note.TitleHash,
		Content:   note.Body,
		CreatedAt: timex.Time(note.CreatedAt),
		UpdatedAt: timex.Time(note.UpdatedAt),
	}
}

// GetByTitleHash gets a note by title hash
func (r *noteRepository) GetByTitleHash(ctx context.Context, titleHash string) (*domain.Note, error) {
	var m model.Note
	err := r.db().WithContext(ctx).
		Where("title_hash = ?", titleHash).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create creates a note
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.db().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update updates a note
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	m.UpdatedAt = timex.Now()

	err := r.db().WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"title":      m.Title,
			"title_hash": m.TitleHash,
			"content":    m.Content,
			"updated_at": m.UpdatedAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete removes a note by title hash; deleting an absent note is not an error
func (r *noteRepository) Delete(ctx context.Context, titleHash string) error {
	return r.db().WithContext(ctx).
		Where("title_hash = ?", titleHash).
		Delete(&model.Note{}).Error
}

// List pages through notes ordered by title
func (r *noteRepository) List(ctx context.Context, page, pageSize int, keyword string) ([]*domain.Note, error) {
	q := r.db().WithContext(ctx).Model(&model.Note{})
	if keyword != "" {
		q = q.Where("title LIKE ?", "%"+keyword+"%")
	}

	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}

	var modelList []*model.Note
	err := q.Order("title").Offset(offset).Limit(pageSize).Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.Note
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// ListCount counts notes matching the keyword
func (r *noteRepository) ListCount(ctx context.Context, keyword string) (int64, error) {
	q := r.db().WithContext(ctx).Model(&model.Note{})
	if keyword != "" {
		q = q.Where("title LIKE ?", "%"+keyword+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll returns every persisted note, links included
func (r *noteRepository) ListAll(ctx context.Context) ([]*domain.Note, error) {
	var modelList []*model.Note
	err := r.db().WithContext(ctx).Order("title").Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	// Load all links in one pass and group by source note
	r.dao.migrateOnce("note_link", "NoteLink")
	var linkList []*model.NoteLink
	err = r.dao.Db.WithContext(ctx).
		Order("source_note_id, position").
		Find(&linkList).Error
	if err != nil {
		return nil, err
	}

	linksBySource := make(map[int64][]*model.NoteLink)
	for _, l := range linkList {
		linksBySource[l.SourceNoteID] = append(linksBySource[l.SourceNoteID], l)
	}

	var results []*domain.Note
	for _, m := range modelList {
		note := r.toDomain(m)
		for _, l := range linksBySource[m.ID] {
			note.Links = append(note.Links, domain.Link{
				ID:          l.ID,
				SourceTitle: m.Title,
				TargetTitle: l.TargetTitle,
				Alias:       l.Alias,
				IsEmbed:     l.IsEmbed,
			})
		}
		results = append(results, note)
	}
	return results, nil
}

// Ensure noteRepository implements domain.NoteRepository interface
var _ domain.NoteRepository = (*noteRepository)(nil)
