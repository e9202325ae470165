package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the per-entity repositories over one connection. A Store
// built inside Transaction shares the transaction with all of them.
type Store struct {
	db *gorm.DB

	Categories       CategoryRepository
	Quizzes          QuizRepository
	Questions        QuestionRepository
	Options          AnswerOptionRepository
	Answers          AnswerRepository
	SubmittedAnswers SubmittedAnswerRepository
	Reviews          ReviewRepository
	Users            UserRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:               db,
		Categories:       &categoryRepository{db: db},
		Quizzes:          &quizRepository{db: db},
		Questions:        &questionRepository{db: db},
		Options:          &answerOptionRepository{db: db},
		Answers:          &answerRepository{db: db},
		SubmittedAnswers: &submittedAnswerRepository{db: db},
		Reviews:          &reviewRepository{db: db},
		Users:            &userRepository{db: db},
	}
}

// Transaction runs fn against a Store bound to a single database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Ping checks that the underlying connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
