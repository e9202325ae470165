package repository

import (
	"context"

	"quizzer/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository interface {
	ListByQuiz(ctx context.Context, quizID uint) ([]models.Question, error)
	FindByID(ctx context.Context, id uint) (*models.Question, error)
	// FindInQuiz only matches a question that belongs to quizID.
	FindInQuiz(ctx context.Context, quizID, id uint) (*models.Question, error)
	Create(ctx context.Context, question *models.Question) error
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	DeleteByQuiz(ctx context.Context, quizID uint) error
	IDsByQuiz(ctx context.Context, quizID uint) ([]uint, error)
	CountByQuiz(ctx context.Context, quizID uint) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func (r *questionRepository) withOptions(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func (r *questionRepository) ListByQuiz(ctx context.Context, quizID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.withOptions(ctx).Where("quiz_id = ?", quizID).Order("id").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := r.withOptions(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindInQuiz(ctx context.Context, quizID, id uint) (*models.Question, error) {
	var question models.Question
	err := r.withOptions(ctx).Where("quiz_id = ?", quizID).First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Create inserts the question together with its Options.
func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

// Update writes the question's own columns; options are managed separately.
func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(question).Error
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Question{}, id).Error
}

func (r *questionRepository) DeleteByQuiz(ctx context.Context, quizID uint) error {
	return r.db.WithContext(ctx).Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error
}

func (r *questionRepository) IDsByQuiz(ctx context.Context, quizID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Question{}).Where("quiz_id = ?", quizID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *questionRepository) CountByQuiz(ctx context.Context, quizID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
