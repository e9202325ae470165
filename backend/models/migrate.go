package models

import "gorm.io/gorm"

// All lists every table in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Quiz{},
		&Question{},
		&AnswerOption{},
		&Answer{},
		&SubmittedAnswer{},
		&Review{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
