// Package dao implements the data access layer
package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/ForkFiesta/note-graph-service/internal/domain"
	"github.com/ForkFiesta/note-graph-service/internal/model"
	"github.com/ForkFiesta/note-graph-service/pkg/timex"
)

// noteLinkRepository implements domain.NoteLinkRepository interface
type noteLinkRepository struct {
	dao *Dao
}

// NewNoteLinkRepository creates a NoteLinkRepository instance
func NewNoteLinkRepository(dao *Dao) domain.NoteLinkRepository {
	return &noteLinkRepository{dao: dao}
}

// db returns the note_link table handle, ensuring the table is migrated once
func (r *noteLinkRepository) db() *gorm.DB {
	r.dao.migrateOnce("note_link", "NoteLink")
	return r.dao.Db
}

// toDomain converts database model to domain model
func (r *noteLinkRepository) toDomain(m *model.NoteLink, sourceTitle string) *domain.Link {
	if m == nil {
		return nil
	}
	return &domain.Link{
		ID:              m.ID,
		SourceTitle:     sourceTitle,
		TargetTitle:     m.TargetTitle,
		TargetTitleHash: m.TargetTitleHash,
		Alias:           m.Alias,
		IsEmbed:         m.IsEmbed,
	}
}

// ReplaceForSource atomically replaces all links owned by a source note
func (r *noteLinkRepository) ReplaceForSource(ctx context.Context, sourceNoteID int64, links []*domain.Link) error {
	return r.db().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("source_note_id = ?", sourceNoteID).
			Delete(&model.NoteLink{}).Error
		if err != nil {
			return err
		}

		if len(links) == 0 {
			return nil
		}

		now := timex.Now()
		var models []*model.NoteLink
		for i, link := range links {
			// The hash is computed by the caller over the folded title;
			// hashing here would bypass the configured case sensitivity.
			models = append(models, &model.NoteLink{
				SourceNoteID:    sourceNoteID,
				TargetTitle:     link.TargetTitle,
				TargetTitleHash: link.TargetTitleHash,
				Alias:           link.Alias,
				IsEmbed:         link.IsEmbed,
				Position:        i,
				CreatedAt:       now,
			})
		}
		return tx.CreateInBatches(models, 100).Error
	})
}

// DeleteBySourceNoteID deletes all links from a source note
func (r *noteLinkRepository) DeleteBySourceNoteID(ctx context.Context, sourceNoteID int64) error {
	return r.db().WithContext(ctx).
		Where("source_note_id = ?", sourceNoteID).
		Delete(&model.NoteLink{}).Error
}

// ListBySourceNoteID gets all links from a source note in insertion order
func (r *noteLinkRepository) ListBySourceNoteID(ctx context.Context, sourceNoteID int64) ([]*domain.Link, error) {
	var modelList []*model.NoteLink
	err := r.db().WithContext(ctx).
		Where("source_note_id = ?", sourceNoteID).
		Order("position").
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	var note model.Note
	sourceTitle := ""
	if err := r.dao.Db.WithContext(ctx).Where("id = ?", sourceNoteID).First(&note).Error; err == nil {
		sourceTitle = note.Title
	}

	var results []*domain.Link
	for _, m := range modelList {
		results = append(results, r.toDomain(m, sourceTitle))
	}
	return results, nil
}

// Ensure noteLinkRepository implements domain.NoteLinkRepository interface
var _ domain.NoteLinkRepository = (*noteLinkRepository)(nil)
