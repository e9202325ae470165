package models

import "time"

type Quiz struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CourseCode  string    `json:"courseCode"`
	Published   bool      `gorm:"not null;default:false;index" json:"published"`
	DateAdded   time.Time `gorm:"not null" json:"dateAdded"`
	CategoryID  *uint     `gorm:"index" json:"categoryId"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type Question struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	QuizID     uint           `gorm:"index;not null" json:"quizId"`
	Content    string         `gorm:"type:text" json:"content"`
	Difficulty string         `gorm:"size:50" json:"difficulty"`
	Options    []AnswerOption `gorm:"foreignKey:QuestionID" json:"answers"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectOptionID returns the first option flagged correct, or 0 when none is.
func (q Question) CorrectOptionID() uint {
	for _, option := range q.Options {
		if option.IsCorrect {
			return option.ID
		}
	}
	return 0
}

// FindOption looks an option up among the options loaded for the question.
func (q Question) FindOption(optionID uint) (AnswerOption, bool) {
	for _, option := range q.Options {
		if option.ID == optionID {
			return option, true
		}
	}
	return AnswerOption{}, false
}

type AnswerOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `json:"text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"correct"`
}

func (AnswerOption) TableName() string {
	return "answer_options"
}
