package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Note":
		return db.AutoMigrate(Note{})

	case "NoteLink":
		return db.AutoMigrate(NoteLink{})
	}
	return nil
}
