package services

import (
	"context"
	"log"

	"quizzer/backend/models"
	"quizzer/backend/repository"
)

type ReviewInput struct {
	Nickname string
	Rating   int
	Text     string
}

// ReviewSummary is the aggregate returned for a quiz.
type ReviewSummary struct {
	AvgRating float64         `json:"avgRating"`
	Total     int             `json:"total"`
	Reviews   []models.Review `json:"reviews"`
}

type ReviewService struct {
	store  *repository.Store
	logger *log.Logger
}

func NewReviewService(store *repository.Store, logger *log.Logger) *ReviewService {
	return &ReviewService{store: store, logger: logger}
}

func (s *ReviewService) List(ctx context.Context, quizID uint) (*ReviewSummary, error) {
	if _, err := s.store.Quizzes.FindByID(ctx, quizID); err != nil {
		return nil, lookupErr(err, "quiz", quizID)
	}

	reviews, err := s.store.Reviews.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	summary := &ReviewSummary{Total: len(reviews), Reviews: reviews}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		summary.AvgRating = float64(sum) / float64(len(reviews))
	}
	return summary, nil
}

// Create checks existence, then publication, then the rating.
func (s *ReviewService) Create(ctx context.Context, quizID uint, input ReviewInput) (*models.Review, error) {
	quiz, err := s.store.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, lookupErr(err, "quiz", quizID)
	}
	if !quiz.Published {
		s.logger.Printf("[WARN] review rejected: quiz %d is not published", quizID)
		return nil, conflict("Cannot review an unpublished quiz")
	}
	if err := checkRating(input.Rating); err != nil {
		return nil, err
	}

	review := &models.Review{
		QuizID:   quizID,
		Nickname: input.Nickname,
		Rating:   input.Rating,
		Text:     input.Text,
	}
	if err := s.store.Reviews.Create(ctx, review); err != nil {
		s.logger.Printf("[ERROR] create review for quiz %d: %v", quizID, err)
		return nil, err
	}
	return review, nil
}

// Update changes rating and text only; the nickname stays as created.
func (s *ReviewService) Update(ctx context.Context, id uint, input ReviewInput) (*models.Review, error) {
	review, err := s.store.Reviews.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "review", id)
	}
	if err := checkRating(input.Rating); err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Text = input.Text
	if err := s.store.Reviews.Update(ctx, review); err != nil {
		s.logger.Printf("[ERROR] update review %d: %v", id, err)
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uint) error {
	if _, err := s.store.Reviews.FindByID(ctx, id); err != nil {
		return lookupErr(err, "review", id)
	}
	return s.store.Reviews.Delete(ctx, id)
}

func checkRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return validation("Rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	return nil
}
