package services

import (
	"context"
	"log"
	"math"
	"time"

	"quizzer/backend/config"
	"quizzer/backend/models"
	"quizzer/backend/repository"

	"github.com/google/uuid"
)

const (
	FeedbackCorrect   = "Correct! Well done!"
	FeedbackIncorrect = "Incorrect. Please review the question and try again."

	anonymousUserPrefix = "temp-user-"
)

type AnswerPair struct {
	QuestionID       uint
	SelectedAnswerID uint
}

type SubmissionInput struct {
	UserID  string
	Answers []AnswerPair
}

type QuestionResult struct {
	QuestionID       uint   `json:"questionId"`
	SelectedAnswerID uint   `json:"selectedAnswerId"`
	CorrectAnswerID  uint   `json:"correctAnswerId"`
	IsCorrect        bool   `json:"isCorrect"`
	Explanation      string `json:"explanation"`
}

type SubmissionResult struct {
	QuizID         uint             `json:"quizId"`
	UserID         string           `json:"userId,omitempty"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	Results        []QuestionResult `json:"results"`
}

// SingleAnswerInput is the one request shape for answering a single question.
// QuestionID is optional; when given, the option must belong to it.
type SingleAnswerInput struct {
	AnswerOptionID uint
	QuestionID     *uint
	UserID         string
}

type AnswerFeedback struct {
	ID                 uint      `json:"id"`
	UserID             string    `json:"userId,omitempty"`
	QuestionID         uint      `json:"questionId"`
	QuestionContent    string    `json:"questionContent"`
	SelectedOptionID   uint      `json:"selectedOptionId"`
	SelectedOptionText string    `json:"selectedOptionText"`
	Correct            bool      `json:"correct"`
	SubmittedAt        time.Time `json:"submittedAt"`
	Feedback           string    `json:"feedback"`
}

type AnswerService struct {
	store  *repository.Store
	mode   string
	logger *log.Logger
}

func NewAnswerService(store *repository.Store, cfg *config.Config, logger *log.Logger) *AnswerService {
	mode := cfg.AnswerRecordMode
	if mode == "" {
		mode = config.AnswerModeUser
	}
	return &AnswerService{store: store, mode: mode, logger: logger}
}

// Submit scores a whole quiz attempt. Nothing is stored unless every pair
// resolves to a question of the quiz and one of that question's options.
func (s *AnswerService) Submit(ctx context.Context, quizID uint, input SubmissionInput) (*SubmissionResult, error) {
	quiz, err := s.store.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, lookupErr(err, "quiz", quizID)
	}
	if !quiz.Published {
		s.logger.Printf("[WARN] submission rejected: quiz %d is not published", quizID)
		return nil, invalidState("quiz %d is not published", quizID)
	}
	if len(input.Answers) == 0 {
		return nil, validation("At least one answer is required")
	}

	seen := make(map[uint]bool, len(input.Answers))
	for _, pair := range input.Answers {
		if seen[pair.QuestionID] {
			return nil, validation("question %d is answered more than once", pair.QuestionID)
		}
		seen[pair.QuestionID] = true
	}

	questions, err := s.store.Questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	results := make([]QuestionResult, 0, len(input.Answers))
	correct := 0
	for _, pair := range input.Answers {
		question, ok := byID[pair.QuestionID]
		if !ok {
			return nil, notFound("question not found with id %d in quiz %d", pair.QuestionID, quizID)
		}
		option, ok := question.FindOption(pair.SelectedAnswerID)
		if !ok {
			return nil, notFound("answer option not found with id %d for question %d", pair.SelectedAnswerID, pair.QuestionID)
		}

		if option.IsCorrect {
			correct++
		}
		results = append(results, QuestionResult{
			QuestionID:       question.ID,
			SelectedAnswerID: option.ID,
			CorrectAnswerID:  question.CorrectOptionID(),
			IsCorrect:        option.IsCorrect,
			Explanation:      feedback(option.IsCorrect),
		})
	}

	result := &SubmissionResult{
		QuizID:         quizID,
		Score:          Score(correct, len(questions)),
		TotalQuestions: len(questions),
		CorrectAnswers: correct,
		Results:        results,
	}

	now := time.Now().UTC()
	if s.mode == config.AnswerModeAnonymous {
		records := make([]models.SubmittedAnswer, 0, len(results))
		for _, r := range results {
			records = append(records, models.SubmittedAnswer{AnswerOptionID: r.SelectedAnswerID, SubmittedAt: now})
		}
		err = s.store.Transaction(ctx, func(tx *repository.Store) error {
			return tx.SubmittedAnswers.CreateBatch(ctx, records)
		})
	} else {
		result.UserID = userOrAnonymous(input.UserID)
		records := make([]models.Answer, 0, len(results))
		for _, r := range results {
			records = append(records, models.Answer{
				UserID:           result.UserID,
				QuestionID:       r.QuestionID,
				SelectedOptionID: r.SelectedAnswerID,
				Correct:          r.IsCorrect,
				SubmittedAt:      now,
			})
		}
		err = s.store.Transaction(ctx, func(tx *repository.Store) error {
			return tx.Answers.CreateBatch(ctx, records)
		})
	}
	if err != nil {
		s.logger.Printf("[ERROR] store submission for quiz %d: %v", quizID, err)
		return nil, err
	}
	return result, nil
}

// SubmitSingle records one chosen option and reports whether it was right.
func (s *AnswerService) SubmitSingle(ctx context.Context, input SingleAnswerInput) (*AnswerFeedback, error) {
	option, err := s.store.Options.FindByID(ctx, input.AnswerOptionID)
	if err != nil {
		return nil, lookupErr(err, "answer option", input.AnswerOptionID)
	}

	questionID := option.QuestionID
	if input.QuestionID != nil {
		questionID = *input.QuestionID
	}
	question, err := s.store.Questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, lookupErr(err, "question", questionID)
	}
	if option.QuestionID != question.ID {
		return nil, validation("answer option %d does not belong to question %d", option.ID, question.ID)
	}

	quiz, err := s.store.Quizzes.FindByID(ctx, question.QuizID)
	if err != nil {
		return nil, lookupErr(err, "quiz", question.QuizID)
	}
	if !quiz.Published {
		s.logger.Printf("[WARN] answer rejected: quiz %d is not published", quiz.ID)
		return nil, invalidState("quiz %d is not published", quiz.ID)
	}

	out := &AnswerFeedback{
		QuestionID:         question.ID,
		QuestionContent:    question.Content,
		SelectedOptionID:   option.ID,
		SelectedOptionText: option.Text,
		Correct:            option.IsCorrect,
		SubmittedAt:        time.Now().UTC(),
		Feedback:           feedback(option.IsCorrect),
	}

	if s.mode == config.AnswerModeAnonymous {
		records := []models.SubmittedAnswer{{AnswerOptionID: option.ID, SubmittedAt: out.SubmittedAt}}
		if err := s.store.SubmittedAnswers.CreateBatch(ctx, records); err != nil {
			return nil, err
		}
		out.ID = records[0].ID
		return out, nil
	}

	out.UserID = userOrAnonymous(input.UserID)
	answer := &models.Answer{
		UserID:           out.UserID,
		QuestionID:       question.ID,
		SelectedOptionID: option.ID,
		Correct:          option.IsCorrect,
		SubmittedAt:      out.SubmittedAt,
	}
	if err := s.store.Answers.Create(ctx, answer); err != nil {
		s.logger.Printf("[ERROR] store answer for question %d: %v", question.ID, err)
		return nil, err
	}
	out.ID = answer.ID
	return out, nil
}

// ListByQuiz returns user-attributed answers to a quiz, optionally for one user.
func (s *AnswerService) ListByQuiz(ctx context.Context, quizID uint, userID string) ([]models.Answer, error) {
	if _, err := s.store.Quizzes.FindByID(ctx, quizID); err != nil {
		return nil, lookupErr(err, "quiz", quizID)
	}
	return s.store.Answers.ListByQuiz(ctx, quizID, userID)
}

// Results aggregates the stored records of the active mode per question.
func (s *AnswerService) Results(ctx context.Context, quizID uint) ([]models.QuestionStats, error) {
	if _, err := s.store.Quizzes.FindByID(ctx, quizID); err != nil {
		return nil, lookupErr(err, "quiz", quizID)
	}
	if s.mode == config.AnswerModeAnonymous {
		return s.store.SubmittedAnswers.StatsByQuiz(ctx, quizID)
	}
	return s.store.Answers.StatsByQuiz(ctx, quizID)
}

// Score is the rounded percentage of correct answers over all questions of a quiz.
func Score(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}

func feedback(correct bool) string {
	if correct {
		return FeedbackCorrect
	}
	return FeedbackIncorrect
}

func userOrAnonymous(userID string) string {
	if userID != "" {
		return userID
	}
	return anonymousUserPrefix + uuid.NewString()
}
