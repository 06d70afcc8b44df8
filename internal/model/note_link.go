package model

import "github.com/ForkFiesta/note-graph-service/pkg/timex"

const TableNameNoteLink = "note_link"

// NoteLink mapped from table <note_link>
type NoteLink struct {
	ID              int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	SourceNoteID    int64      `gorm:"column:source_note_id;not null;index:idx_source_note" json:"sourceNoteId" form:"sourceNoteId"`
	TargetTitle     string     `gorm:"column:target_title;not null" json:"targetTitle" form:"targetTitle"`
	TargetTitleHash string     `gorm:"column:target_title_hash;not null;index:idx_target_title_hash" json:"targetTitleHash" form:"targetTitleHash"`
	Alias           string     `gorm:"column:alias" json:"alias" form:"alias"`
	IsEmbed         bool       `gorm:"column:is_embed;default:false" json:"isEmbed" form:"isEmbed"`
	Position        int        `gorm:"column:position;not null;default:0" json:"position" form:"position"`
	CreatedAt       timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName NoteLink's table name
func (*NoteLink) TableName() string {
	return TableNameNoteLink
}
