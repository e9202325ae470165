package repository

import (
	"context"

	"quizzer/backend/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	ListByQuiz(ctx context.Context, quizID uint) ([]models.Review, error)
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	DeleteByQuiz(ctx context.Context, quizID uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// ListByQuiz returns the newest reviews first.
func (r *reviewRepository) ListByQuiz(ctx context.Context, quizID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Where("quiz_id = ?", quizID).Order("created_at DESC, id DESC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

func (r *reviewRepository) DeleteByQuiz(ctx context.Context, quizID uint) error {
	return r.db.WithContext(ctx).Where("quiz_id = ?", quizID).Delete(&models.Review{}).Error
}
