package repository

import (
	"context"

	"quizzer/backend/models"

	"gorm.io/gorm"
)

type AnswerOptionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.AnswerOption, error)
	ListByQuestion(ctx context.Context, questionID uint) ([]models.AnswerOption, error)
	Create(ctx context.Context, option *models.AnswerOption) error
	CreateBatch(ctx context.Context, options []models.AnswerOption) error
	Delete(ctx context.Context, id uint) error
	DeleteByQuestions(ctx context.Context, questionIDs []uint) error
}

type answerOptionRepository struct {
	db *gorm.DB
}

func (r *answerOptionRepository) FindByID(ctx context.Context, id uint) (*models.AnswerOption, error) {
	var option models.AnswerOption
	if err := r.db.WithContext(ctx).First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *answerOptionRepository) ListByQuestion(ctx context.Context, questionID uint) ([]models.AnswerOption, error) {
	var options []models.AnswerOption
	err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id").Find(&options).Error
	return options, err
}

func (r *answerOptionRepository) Create(ctx context.Context, option *models.AnswerOption) error {
	return r.db.WithContext(ctx).Create(option).Error
}

func (r *answerOptionRepository) CreateBatch(ctx context.Context, options []models.AnswerOption) error {
	if len(options) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&options).Error
}

func (r *answerOptionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AnswerOption{}, id).Error
}

func (r *answerOptionRepository) DeleteByQuestions(ctx context.Context, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("question_id IN ?", questionIDs).Delete(&models.AnswerOption{}).Error
}
