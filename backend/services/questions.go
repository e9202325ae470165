package services

import (
	"context"
	"log"

	"quizzer/backend/models"
	"quizzer/backend/repository"
)

const msgNoCorrectOption = "At least one answer must be marked as correct"

type OptionInput struct {
	Text    string
	Correct bool
}

type QuestionInput struct {
	Content    string
	Difficulty string
	Options    []OptionInput
}

type QuestionService struct {
	store  *repository.Store
	logger *log.Logger
}

func NewQuestionService(store *repository.Store, logger *log.Logger) *QuestionService {
	return &QuestionService{store: store, logger: logger}
}

func (s *QuestionService) ListByQuiz(ctx context.Context, quizID uint) ([]models.Question, error) {
	if _, err := s.store.Quizzes.FindByID(ctx, quizID); err != nil {
		return nil, lookupErr(err, "quiz", quizID)
	}
	return s.store.Questions.ListByQuiz(ctx, quizID)
}

func (s *QuestionService) Get(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.store.Questions.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "question", id)
	}
	return question, nil
}

func (s *QuestionService) Create(ctx context.Context, quizID uint, input QuestionInput) (*models.Question, error) {
	if _, err := s.store.Quizzes.FindByID(ctx, quizID); err != nil {
		return nil, lookupErr(err, "quiz", quizID)
	}
	if err := checkOptions(input.Options); err != nil {
		return nil, err
	}

	question := &models.Question{
		QuizID:     quizID,
		Content:    input.Content,
		Difficulty: input.Difficulty,
		Options:    buildOptions(0, input.Options),
	}
	if err := s.store.Questions.Create(ctx, question); err != nil {
		s.logger.Printf("[ERROR] create question for quiz %d: %v", quizID, err)
		return nil, err
	}
	return question, nil
}

// Update rewrites content and difficulty. A non-empty option list replaces
// every existing option with new rows; an empty one leaves them as they are.
func (s *QuestionService) Update(ctx context.Context, id uint, input QuestionInput) (*models.Question, error) {
	question, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOptions(input.Options); err != nil {
		return nil, err
	}

	question.Content = input.Content
	question.Difficulty = input.Difficulty

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Questions.Update(ctx, question); err != nil {
			return err
		}
		if len(input.Options) == 0 {
			return nil
		}
		if err := tx.Options.DeleteByQuestions(ctx, []uint{id}); err != nil {
			return err
		}
		return tx.Options.CreateBatch(ctx, buildOptions(id, input.Options))
	})
	if err != nil {
		s.logger.Printf("[ERROR] update question %d: %v", id, err)
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Options.DeleteByQuestions(ctx, []uint{id}); err != nil {
			return err
		}
		return tx.Questions.Delete(ctx, id)
	})
}

// AddOption appends one option; the question must still have a correct one afterwards.
func (s *QuestionService) AddOption(ctx context.Context, questionID uint, input OptionInput) (*models.AnswerOption, error) {
	question, err := s.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}

	options := make([]OptionInput, 0, len(question.Options)+1)
	for _, o := range question.Options {
		options = append(options, OptionInput{Text: o.Text, Correct: o.IsCorrect})
	}
	if err := checkOptions(append(options, input)); err != nil {
		return nil, err
	}

	option := &models.AnswerOption{QuestionID: questionID, Text: input.Text, IsCorrect: input.Correct}
	if err := s.store.Options.Create(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

// DeleteOption refuses to drop the last correct option while other options remain.
func (s *QuestionService) DeleteOption(ctx context.Context, id uint) error {
	option, err := s.store.Options.FindByID(ctx, id)
	if err != nil {
		return lookupErr(err, "answer option", id)
	}

	if option.IsCorrect {
		siblings, err := s.store.Options.ListByQuestion(ctx, option.QuestionID)
		if err != nil {
			return err
		}
		remaining := make([]OptionInput, 0, len(siblings))
		for _, o := range siblings {
			if o.ID != id {
				remaining = append(remaining, OptionInput{Text: o.Text, Correct: o.IsCorrect})
			}
		}
		if err := checkOptions(remaining); err != nil {
			return err
		}
	}

	return s.store.Options.Delete(ctx, id)
}

func checkOptions(options []OptionInput) error {
	if len(options) == 0 {
		return nil
	}
	for _, o := range options {
		if o.Correct {
			return nil
		}
	}
	return validation(msgNoCorrectOption)
}

func buildOptions(questionID uint, inputs []OptionInput) []models.AnswerOption {
	options := make([]models.AnswerOption, 0, len(inputs))
	for _, in := range inputs {
		options = append(options, models.AnswerOption{QuestionID: questionID, Text: in.Text, IsCorrect: in.Correct})
	}
	return options
}
