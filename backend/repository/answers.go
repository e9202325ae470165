package repository

import (
	"context"

	"quizzer/backend/models"

	"gorm.io/gorm"
)

type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	CreateBatch(ctx context.Context, answers []models.Answer) error
	// ListByQuiz returns answers to questions of quizID; an empty userID
	// matches every user.
	ListByQuiz(ctx context.Context, quizID uint, userID string) ([]models.Answer, error)
	StatsByQuiz(ctx context.Context, quizID uint) ([]models.QuestionStats, error)
}

type answerRepository struct {
	db *gorm.DB
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *answerRepository) CreateBatch(ctx context.Context, answers []models.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&answers).Error
}

func (r *answerRepository) ListByQuiz(ctx context.Context, quizID uint, userID string) ([]models.Answer, error) {
	query := r.db.WithContext(ctx).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.quiz_id = ?", quizID)
	if userID != "" {
		query = query.Where("answers.user_id = ?", userID)
	}

	var answers []models.Answer
	err := query.Order("answers.id").Find(&answers).Error
	return answers, err
}

// StatsByQuiz counts stored answers per question using the correctness
// recorded at submission.
func (r *answerRepository) StatsByQuiz(ctx context.Context, quizID uint) ([]models.QuestionStats, error) {
	var stats []models.QuestionStats
	err := r.db.WithContext(ctx).
		Table("questions").
		Select(`questions.id AS question_id, questions.content, questions.difficulty,
			COUNT(answers.id) AS total_answers,
			COALESCE(SUM(CASE WHEN answers.correct THEN 1 ELSE 0 END), 0) AS correct_count`).
		Joins("LEFT JOIN answers ON answers.question_id = questions.id").
		Where("questions.quiz_id = ?", quizID).
		Group("questions.id, questions.content, questions.difficulty").
		Order("questions.id").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return withWrongCounts(stats), nil
}

type SubmittedAnswerRepository interface {
	CreateBatch(ctx context.Context, answers []models.SubmittedAnswer) error
	StatsByQuiz(ctx context.Context, quizID uint) ([]models.QuestionStats, error)
}

type submittedAnswerRepository struct {
	db *gorm.DB
}

func (r *submittedAnswerRepository) CreateBatch(ctx context.Context, answers []models.SubmittedAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&answers).Error
}

// StatsByQuiz judges anonymous records by the option's current flag, since
// nothing else is stored for them.
func (r *submittedAnswerRepository) StatsByQuiz(ctx context.Context, quizID uint) ([]models.QuestionStats, error) {
	var stats []models.QuestionStats
	err := r.db.WithContext(ctx).
		Table("questions").
		Select(`questions.id AS question_id, questions.content, questions.difficulty,
			COUNT(submitted_answers.id) AS total_answers,
			COALESCE(SUM(CASE WHEN submitted_answers.id IS NOT NULL AND answer_options.is_correct THEN 1 ELSE 0 END), 0) AS correct_count`).
		Joins("LEFT JOIN answer_options ON answer_options.question_id = questions.id").
		Joins("LEFT JOIN submitted_answers ON submitted_answers.answer_option_id = answer_options.id").
		Where("questions.quiz_id = ?", quizID).
		Group("questions.id, questions.content, questions.difficulty").
		Order("questions.id").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return withWrongCounts(stats), nil
}

func withWrongCounts(stats []models.QuestionStats) []models.QuestionStats {
	for i := range stats {
		stats[i].WrongCount = stats[i].TotalAnswers - stats[i].CorrectCount
	}
	return stats
}
