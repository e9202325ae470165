package repository

import (
	"context"

	"quizzer/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuizFilter narrows List. Zero value lists every quiz.
type QuizFilter struct {
	PublishedOnly bool
	CategoryID    *uint
}

type QuizRepository interface {
	List(ctx context.Context, filter QuizFilter) ([]models.Quiz, error)
	FindByID(ctx context.Context, id uint) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error
	QuestionCounts(ctx context.Context, quizIDs []uint) (map[uint]int64, error)
}

type quizRepository struct {
	db *gorm.DB
}

func (r *quizRepository) List(ctx context.Context, filter QuizFilter) ([]models.Quiz, error) {
	query := r.db.WithContext(ctx).Preload("Category").Order("id")
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var quizzes []models.Quiz
	err := query.Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).Preload("Category").First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(quiz).Error
}

func (r *quizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(quiz).Error
}

func (r *quizRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Quiz{}, id).Error
}

// QuestionCounts returns the number of questions per quiz id. Quizzes without
// questions are absent from the map.
func (r *quizRepository) QuestionCounts(ctx context.Context, quizIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(quizIDs))
	if len(quizIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		QuizID uint
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Select("quiz_id, COUNT(*) AS total").
		Where("quiz_id IN ?", quizIDs).
		Group("quiz_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.QuizID] = row.Total
	}
	return counts, nil
}
