package services

import (
	"context"
	"errors"
	"log"

	"quizzer/backend/models"
	"quizzer/backend/repository"

	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryService struct {
	store  *repository.Store
	logger *log.Logger
}

func NewCategoryService(store *repository.Store, logger *log.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.store.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "category", id)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if err := s.ensureNameFree(ctx, input.Name, 0); err != nil {
		return nil, err
	}

	category := &models.Category{Name: input.Name, Description: input.Description}
	if err := s.store.Categories.Create(ctx, category); err != nil {
		return nil, s.writeErr(err, input.Name)
	}
	return category, nil
}

// Update renames are only rejected when the name belongs to another category.
func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, input.Name, id); err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	if err := s.store.Categories.Update(ctx, category); err != nil {
		return nil, s.writeErr(err, input.Name)
	}
	return category, nil
}

// Delete refuses to remove a category that quizzes still point at.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	inUse, err := s.store.Categories.CountQuizzes(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return conflict("Category is in use by quizzes and cannot be deleted")
	}

	return s.store.Categories.Delete(ctx, id)
}

// Quizzes lists the quizzes of a category as summaries.
func (s *CategoryService) Quizzes(ctx context.Context, id uint, publishedOnly bool) ([]QuizSummary, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	quizzes, err := s.store.Quizzes.List(ctx, repository.QuizFilter{PublishedOnly: publishedOnly, CategoryID: &id})
	if err != nil {
		return nil, err
	}
	return summarize(ctx, s.store, quizzes)
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.store.Categories.FindByName(ctx, name)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return conflict("Category with name '%s' already exists", name)
	}
	return nil
}

func (s *CategoryService) writeErr(err error, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict("Category with name '%s' already exists", name)
	}
	s.logger.Printf("[ERROR] save category %q: %v", name, err)
	return err
}
