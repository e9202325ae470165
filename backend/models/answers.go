package models

import "time"

// Answer is a user-attributed choice for a question. Correct is frozen at
// submission time and is not recomputed when the option changes later.
type Answer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"size:100;index;not null" json:"userId"`
	QuestionID       uint      `gorm:"index;not null" json:"questionId"`
	SelectedOptionID uint      `gorm:"index;not null" json:"selectedOptionId"`
	Correct          bool      `gorm:"not null" json:"correct"`
	SubmittedAt      time.Time `gorm:"not null" json:"submittedAt"`
}

func (Answer) TableName() string {
	return "answers"
}

// SubmittedAnswer is the anonymous record: only the chosen option is kept.
type SubmittedAnswer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnswerOptionID uint      `gorm:"index;not null" json:"answerOptionId"`
	SubmittedAt    time.Time `gorm:"not null" json:"submittedAt"`
}

func (SubmittedAnswer) TableName() string {
	return "submitted_answers"
}
