package services

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"quizzer/backend/config"
	"quizzer/backend/models"
	"quizzer/backend/repository"
	"quizzer/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	store     *repository.Store
	logger    *log.Logger
	quizzes   *QuizService
	questions *QuestionService
	answers   *AnswerService
}

func newFixture(t *testing.T, mode string) *fixture {
	t.Helper()
	db, err := utils.OpenMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := repository.NewStore(db)
	logger := log.New(io.Discard, "", 0)
	return &fixture{
		db:        db,
		store:     store,
		logger:    logger,
		quizzes:   NewQuizService(store, logger),
		questions: NewQuestionService(store, logger),
		answers:   NewAnswerService(store, &config.Config{AnswerRecordMode: mode}, logger),
	}
}

// quizWith creates a published quiz with n questions of two options each;
// the first option of every question is correct.
func (f *fixture) quizWith(t *testing.T, n int) (uint, []models.Question) {
	t.Helper()
	ctx := context.Background()
	quiz, err := f.quizzes.Create(ctx, QuizInput{Name: "Quiz", Published: true})
	require.NoError(t, err)

	questions := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		q, err := f.questions.Create(ctx, quiz.ID, QuestionInput{
			Content: "question",
			Options: []OptionInput{{Text: "right", Correct: true}, {Text: "wrong"}},
		})
		require.NoError(t, err)
		questions = append(questions, *q)
	}
	return quiz.ID, questions
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0, Score(0, 0))
	assert.Equal(t, 0, Score(0, 3))
	assert.Equal(t, 33, Score(1, 3))
	assert.Equal(t, 67, Score(2, 3))
	assert.Equal(t, 50, Score(1, 2))
	assert.Equal(t, 13, Score(1, 8)) // 12.5 rounds up
	assert.Equal(t, 100, Score(7, 7))
}

func TestSubmitAllCorrectAndAllWrong(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	quizID, questions := f.quizWith(t, 3)

	right := make([]AnswerPair, 0, len(questions))
	wrong := make([]AnswerPair, 0, len(questions))
	for _, q := range questions {
		right = append(right, AnswerPair{QuestionID: q.ID, SelectedAnswerID: q.Options[0].ID})
		wrong = append(wrong, AnswerPair{QuestionID: q.ID, SelectedAnswerID: q.Options[1].ID})
	}

	result, err := f.answers.Submit(context.Background(), quizID, SubmissionInput{UserID: "u1", Answers: right})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 3, result.CorrectAnswers)

	result, err = f.answers.Submit(context.Background(), quizID, SubmissionInput{Answers: wrong})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.UserID, anonymousUserPrefix)
	for i, r := range result.Results {
		assert.Equal(t, questions[i].Options[0].ID, r.CorrectAnswerID)
		assert.Equal(t, FeedbackIncorrect, r.Explanation)
	}
}

func TestSubmitScoresAgainstAllQuestions(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	quizID, questions := f.quizWith(t, 4)

	result, err := f.answers.Submit(context.Background(), quizID, SubmissionInput{Answers: []AnswerPair{
		{QuestionID: questions[0].ID, SelectedAnswerID: questions[0].Options[0].ID},
	}})
	require.NoError(t, err)
	assert.Equal(t, 25, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)
}

func TestSubmitRejections(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	ctx := context.Background()
	quizID, questions := f.quizWith(t, 2)
	_, others := f.quizWith(t, 1)

	draft, err := f.quizzes.Create(ctx, QuizInput{Name: "Draft"})
	require.NoError(t, err)

	valid := AnswerPair{QuestionID: questions[0].ID, SelectedAnswerID: questions[0].Options[0].ID}

	cases := []struct {
		name   string
		quizID uint
		pairs  []AnswerPair
		kind   error
	}{
		{"unknown quiz", 424242, []AnswerPair{valid}, ErrNotFound},
		{"unpublished quiz", draft.ID, nil, ErrInvalidState},
		{"no answers", quizID, nil, ErrValidation},
		{"duplicate question", quizID, []AnswerPair{valid, valid}, ErrValidation},
		{"question of another quiz", quizID, []AnswerPair{
			{QuestionID: others[0].ID, SelectedAnswerID: others[0].Options[0].ID},
		}, ErrNotFound},
		{"option of another question", quizID, []AnswerPair{
			{QuestionID: questions[1].ID, SelectedAnswerID: questions[0].Options[0].ID},
		}, ErrNotFound},
		{"valid pair then bad pair", quizID, []AnswerPair{valid, {QuestionID: questions[1].ID, SelectedAnswerID: 999}}, ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.answers.Submit(ctx, tc.quizID, SubmissionInput{Answers: tc.pairs})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)
		})
	}

	assert.Equal(t, int64(0), f.count(t, &models.Answer{}))
}

func TestCorrectnessIsFrozenAtSubmission(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	ctx := context.Background()
	quizID, questions := f.quizWith(t, 1)
	q := questions[0]

	_, err := f.answers.SubmitSingle(ctx, SingleAnswerInput{AnswerOptionID: q.Options[1].ID, UserID: "u1"})
	require.NoError(t, err)

	// flip which option is correct after the fact
	require.NoError(t, f.db.Model(&models.AnswerOption{}).Where("id = ?", q.Options[1].ID).Update("is_correct", true).Error)

	answers, err := f.answers.ListByQuiz(ctx, quizID, "u1")
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.False(t, answers[0].Correct)

	stats, err := f.answers.Results(ctx, quizID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].TotalAnswers)
	assert.Equal(t, int64(0), stats[0].CorrectCount)
	assert.Equal(t, int64(1), stats[0].WrongCount)
}

func TestAnonymousModeStoresSubmittedAnswers(t *testing.T) {
	f := newFixture(t, config.AnswerModeAnonymous)
	ctx := context.Background()
	quizID, questions := f.quizWith(t, 2)

	_, err := f.answers.Submit(ctx, quizID, SubmissionInput{UserID: "ignored", Answers: []AnswerPair{
		{QuestionID: questions[0].ID, SelectedAnswerID: questions[0].Options[0].ID},
		{QuestionID: questions[1].ID, SelectedAnswerID: questions[1].Options[1].ID},
	}})
	require.NoError(t, err)

	out, err := f.answers.SubmitSingle(ctx, SingleAnswerInput{AnswerOptionID: questions[0].Options[1].ID})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Empty(t, out.UserID)

	assert.Equal(t, int64(3), f.count(t, &models.SubmittedAnswer{}))
	assert.Equal(t, int64(0), f.count(t, &models.Answer{}))

	stats, err := f.answers.Results(ctx, quizID)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, int64(2), stats[0].TotalAnswers)
	assert.Equal(t, int64(1), stats[0].CorrectCount)
	assert.Equal(t, int64(1), stats[1].WrongCount)
}

func TestSubmitSingleRejections(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	ctx := context.Background()
	_, questions := f.quizWith(t, 2)

	_, err := f.answers.SubmitSingle(ctx, SingleAnswerInput{AnswerOptionID: 9999})
	assert.ErrorIs(t, err, ErrNotFound)

	missing := uint(9999)
	_, err = f.answers.SubmitSingle(ctx, SingleAnswerInput{AnswerOptionID: questions[0].Options[0].ID, QuestionID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.answers.SubmitSingle(ctx, SingleAnswerInput{AnswerOptionID: questions[0].Options[0].ID, QuestionID: &questions[1].ID})
	assert.ErrorIs(t, err, ErrValidation)

	draft, err := f.quizzes.Create(ctx, QuizInput{Name: "Draft"})
	require.NoError(t, err)
	q, err := f.questions.Create(ctx, draft.ID, QuestionInput{Content: "x", Options: []OptionInput{{Text: "y", Correct: true}}})
	require.NoError(t, err)
	_, err = f.answers.SubmitSingle(ctx, SingleAnswerInput{AnswerOptionID: q.Options[0].ID})
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Equal(t, int64(0), f.count(t, &models.Answer{}))
}

func TestCategoryRules(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	ctx := context.Background()
	categories := NewCategoryService(f.store, f.logger)

	algebra, err := categories.Create(ctx, CategoryInput{Name: "Math"})
	require.NoError(t, err)
	history, err := categories.Create(ctx, CategoryInput{Name: "History"})
	require.NoError(t, err)

	_, err = categories.Create(ctx, CategoryInput{Name: "Math"})
	assert.ErrorIs(t, err, ErrConflict)

	// names are case-sensitive
	_, err = categories.Create(ctx, CategoryInput{Name: "math"})
	assert.NoError(t, err)

	// keeping its own name is fine, taking another one is not
	_, err = categories.Update(ctx, algebra.ID, CategoryInput{Name: "Math", Description: "numbers"})
	assert.NoError(t, err)
	_, err = categories.Update(ctx, algebra.ID, CategoryInput{Name: "History"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.quizzes.Create(ctx, QuizInput{Name: "WW2", CategoryID: &history.ID})
	require.NoError(t, err)
	assert.ErrorIs(t, categories.Delete(ctx, history.ID), ErrConflict)
	assert.NoError(t, categories.Delete(ctx, algebra.ID))
	assert.ErrorIs(t, categories.Delete(ctx, algebra.ID), ErrNotFound)

	missing := uint(777)
	_, err = f.quizzes.Create(ctx, QuizInput{Name: "Orphan", CategoryID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuizDeleteRemovesOwnedRows(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	ctx := context.Background()
	quizID, questions := f.quizWith(t, 2)
	keepID, _ := f.quizWith(t, 1)

	reviews := NewReviewService(f.store, f.logger)
	_, err := reviews.Create(ctx, quizID, ReviewInput{Nickname: "ann", Rating: 3})
	require.NoError(t, err)
	_, err = f.answers.SubmitSingle(ctx, SingleAnswerInput{AnswerOptionID: questions[0].Options[0].ID})
	require.NoError(t, err)

	require.NoError(t, f.quizzes.Delete(ctx, quizID))

	assert.Equal(t, int64(1), f.count(t, &models.Quiz{}))
	assert.Equal(t, int64(1), f.count(t, &models.Question{}))
	assert.Equal(t, int64(2), f.count(t, &models.AnswerOption{}))
	assert.Equal(t, int64(0), f.count(t, &models.Review{}))
	assert.Equal(t, int64(1), f.count(t, &models.Answer{}))

	_, err = f.quizzes.Get(ctx, keepID)
	assert.NoError(t, err)
	assert.ErrorIs(t, f.quizzes.Delete(ctx, quizID), ErrNotFound)
}

func TestQuestionOptionRules(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	ctx := context.Background()
	quizID, questions := f.quizWith(t, 1)
	q := questions[0]

	_, err := f.questions.Create(ctx, quizID, QuestionInput{Content: "x", Options: []OptionInput{{Text: "a"}}})
	assert.ErrorIs(t, err, ErrValidation)

	// empty list keeps the current options
	updated, err := f.questions.Update(ctx, q.ID, QuestionInput{Content: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Content)
	assert.Len(t, updated.Options, 2)

	_, err = f.questions.Update(ctx, 5555, QuestionInput{Content: "x", Options: []OptionInput{{Text: "a"}}})
	assert.ErrorIs(t, err, ErrNotFound, "missing question wins over bad options")

	assert.ErrorIs(t, f.questions.DeleteOption(ctx, q.Options[0].ID), ErrValidation)
	assert.NoError(t, f.questions.DeleteOption(ctx, q.Options[1].ID))
	assert.NoError(t, f.questions.DeleteOption(ctx, q.Options[0].ID), "last option may go")

	_, err = f.questions.AddOption(ctx, q.ID, OptionInput{Text: "wrong"})
	assert.ErrorIs(t, err, ErrValidation, "an empty question cannot get only a wrong option")
	options, err := f.store.Options.ListByQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, options)

	added, err := f.questions.AddOption(ctx, q.ID, OptionInput{Text: "new", Correct: true})
	require.NoError(t, err)
	assert.Equal(t, q.ID, added.QuestionID)

	// once a correct option exists, wrong ones may follow
	_, err = f.questions.AddOption(ctx, q.ID, OptionInput{Text: "distractor"})
	assert.NoError(t, err)
}

func TestReviewRules(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	ctx := context.Background()
	reviews := NewReviewService(f.store, f.logger)
	quizID, _ := f.quizWith(t, 0)

	summary, err := reviews.List(ctx, quizID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.AvgRating)
	assert.Equal(t, 0, summary.Total)

	_, err = reviews.List(ctx, 31337)
	assert.ErrorIs(t, err, ErrNotFound)

	draft, err := f.quizzes.Create(ctx, QuizInput{Name: "Draft"})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, draft.ID, ReviewInput{Rating: 9})
	assert.ErrorIs(t, err, ErrConflict, "publication is checked before the rating")

	review, err := reviews.Create(ctx, quizID, ReviewInput{Nickname: "ann", Rating: 1, Text: "bad"})
	require.NoError(t, err)
	assert.Equal(t, review.CreatedAt, review.UpdatedAt)

	_, err = reviews.Update(ctx, review.ID, ReviewInput{Rating: 6})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := reviews.Update(ctx, review.ID, ReviewInput{Nickname: "eve", Rating: 5, Text: "good"})
	require.NoError(t, err)
	assert.Equal(t, "ann", updated.Nickname)
	assert.False(t, updated.UpdatedAt.Before(review.CreatedAt))

	_, err = reviews.Create(ctx, quizID, ReviewInput{Nickname: "bob", Rating: 2})
	require.NoError(t, err)
	summary, err = reviews.List(ctx, quizID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, summary.AvgRating, 0.0001)
	assert.Equal(t, 2, summary.Total)
}

func TestAuth(t *testing.T) {
	f := newFixture(t, config.AnswerModeUser)
	ctx := context.Background()
	cfg := &config.Config{JWTSecret: "secret", JWTTTLHours: 1}
	auth := NewAuthService(f.store, cfg, f.logger)

	res, err := auth.Register(ctx, RegisterInput{Username: "kim", Email: "kim@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "STUDENT", res.Role)

	_, err = auth.Register(ctx, RegisterInput{Username: "kim", Email: "other@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = auth.Register(ctx, RegisterInput{Username: "lee", Email: "kim@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = auth.Register(ctx, RegisterInput{Username: "lee", Email: "lee@example.com", Password: "hunter22", Roles: []string{"ADMIN"}})
	assert.ErrorIs(t, err, ErrValidation)

	res, err = auth.Register(ctx, RegisterInput{Username: "pat", Email: "pat@example.com", Password: "hunter22", Roles: []string{"teacher"}})
	require.NoError(t, err)
	assert.Equal(t, "TEACHER", res.Role)

	token, err := utils.ParseToken(res.Token, cfg)
	require.NoError(t, err)
	claims, err := utils.ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "pat", claims.Username)

	_, err = auth.Login(ctx, LoginInput{Email: "kim@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = auth.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	res, err = auth.Login(ctx, LoginInput{Email: "kim@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "kim", res.Username)

	guarded := NewAuthService(f.store, &config.Config{JWTSecret: "secret", JWTTTLHours: 1, AuthEnabled: true}, f.logger)
	_, err = guarded.Register(ctx, RegisterInput{Username: "mal", Email: "mal@example.com", Password: "hunter22", Roles: []string{"TEACHER"}})
	assert.ErrorIs(t, err, ErrForbidden)
	exists, err := f.store.Users.ExistsByEmail(ctx, "mal@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	res, err = guarded.Register(ctx, RegisterInput{Username: "sue", Email: "sue@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "STUDENT", res.Role)
}
