package models

// QuestionStats aggregates stored answers for one question of a quiz.
type QuestionStats struct {
	QuestionID   uint   `json:"questionId"`
	Content      string `json:"content"`
	Difficulty   string `json:"difficulty"`
	TotalAnswers int64  `json:"totalAnswers"`
	CorrectCount int64  `json:"correctCount"`
	WrongCount   int64  `json:"wrongCount"`
}
