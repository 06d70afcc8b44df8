package model

import "github.com/ForkFiesta/note-graph-service/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	Title     string     `gorm:"column:title;not null" json:"title" form:"title"`
	TitleHash string     `gorm:"column:title_hash;not null;uniqueIndex:idx_title_hash" json:"titleHash" form:"titleHash"`
	Content   string     `gorm:"column:content;type:text" json:"content" form:"content"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
