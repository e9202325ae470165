package services

import (
	"context"
	"log"
	"time"

	"quizzer/backend/models"
	"quizzer/backend/repository"
)

type QuizInput struct {
	Name        string
	Description string
	CourseCode  string
	Published   bool
	CategoryID  *uint
}

// QuizSummary is the list view of a quiz.
type QuizSummary struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CourseCode    string    `json:"courseCode"`
	Published     bool      `json:"published"`
	DateAdded     time.Time `json:"dateAdded"`
	CategoryID    *uint     `json:"categoryId"`
	CategoryName  string    `json:"categoryName,omitempty"`
	QuestionCount int64     `json:"questionCount"`
}

// QuizDetails is the student view: questions and options, no correctness flags.
type QuizDetails struct {
	QuizSummary
	Questions []QuestionView `json:"questions"`
}

type QuestionView struct {
	ID         uint         `json:"id"`
	Content    string       `json:"content"`
	Difficulty string       `json:"difficulty"`
	Options    []OptionView `json:"answers"`
}

type OptionView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type QuizService struct {
	store  *repository.Store
	logger *log.Logger
}

func NewQuizService(store *repository.Store, logger *log.Logger) *QuizService {
	return &QuizService{store: store, logger: logger}
}

func (s *QuizService) List(ctx context.Context, publishedOnly bool) ([]QuizSummary, error) {
	quizzes, err := s.store.Quizzes.List(ctx, repository.QuizFilter{PublishedOnly: publishedOnly})
	if err != nil {
		return nil, err
	}
	return summarize(ctx, s.store, quizzes)
}

func (s *QuizService) Get(ctx context.Context, id uint) (*QuizSummary, error) {
	quiz, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	summaries, err := summarize(ctx, s.store, []models.Quiz{*quiz})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

func (s *QuizService) Details(ctx context.Context, id uint) (*QuizDetails, error) {
	summary, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.store.Questions.ListByQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &QuizDetails{QuizSummary: *summary, Questions: make([]QuestionView, 0, len(questions))}
	for _, q := range questions {
		view := QuestionView{ID: q.ID, Content: q.Content, Difficulty: q.Difficulty, Options: make([]OptionView, 0, len(q.Options))}
		for _, o := range q.Options {
			view.Options = append(view.Options, OptionView{ID: o.ID, Text: o.Text})
		}
		details.Questions = append(details.Questions, view)
	}
	return details, nil
}

func (s *QuizService) Create(ctx context.Context, input QuizInput) (*QuizSummary, error) {
	if input.Name == "" {
		return nil, validation("Quiz name is required")
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		Name:        input.Name,
		Description: input.Description,
		CourseCode:  input.CourseCode,
		Published:   input.Published,
		DateAdded:   time.Now().UTC(),
		CategoryID:  input.CategoryID,
	}
	if err := s.store.Quizzes.Create(ctx, quiz); err != nil {
		s.logger.Printf("[ERROR] create quiz %q: %v", input.Name, err)
		return nil, err
	}
	return s.Get(ctx, quiz.ID)
}

// Update replaces the editable fields; dateAdded is kept.
func (s *QuizService) Update(ctx context.Context, id uint, input QuizInput) (*QuizSummary, error) {
	quiz, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, validation("Quiz name is required")
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	quiz.Name = input.Name
	quiz.Description = input.Description
	quiz.CourseCode = input.CourseCode
	quiz.Published = input.Published
	quiz.CategoryID = input.CategoryID
	quiz.Category = nil
	if err := s.store.Quizzes.Update(ctx, quiz); err != nil {
		s.logger.Printf("[ERROR] update quiz %d: %v", id, err)
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the quiz with its questions, their options and its reviews
// in one transaction. Stored answers are left alone.
func (s *QuizService) Delete(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		questionIDs, err := tx.Questions.IDsByQuiz(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Options.DeleteByQuestions(ctx, questionIDs); err != nil {
			return err
		}
		if err := tx.Questions.DeleteByQuiz(ctx, id); err != nil {
			return err
		}
		if err := tx.Reviews.DeleteByQuiz(ctx, id); err != nil {
			return err
		}
		return tx.Quizzes.Delete(ctx, id)
	})
}

func (s *QuizService) find(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.store.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "quiz", id)
	}
	return quiz, nil
}

func (s *QuizService) checkCategory(ctx context.Context, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.store.Categories.FindByID(ctx, *categoryID); err != nil {
		return lookupErr(err, "category", *categoryID)
	}
	return nil
}

func summarize(ctx context.Context, store *repository.Store, quizzes []models.Quiz) ([]QuizSummary, error) {
	ids := make([]uint, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.ID)
	}

	counts, err := store.Quizzes.QuestionCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summary := QuizSummary{
			ID:            q.ID,
			Name:          q.Name,
			Description:   q.Description,
			CourseCode:    q.CourseCode,
			Published:     q.Published,
			DateAdded:     q.DateAdded,
			CategoryID:    q.CategoryID,
			QuestionCount: counts[q.ID],
		}
		if q.Category != nil {
			summary.CategoryName = q.Category.Name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
