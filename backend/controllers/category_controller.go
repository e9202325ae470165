package controllers

import (
	"quizzer/backend/services"
	"quizzer/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type CategoryController struct {
	Service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{Service: service}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (cc *CategoryController) ListCategories(c *fiber.Ctx) error {
	categories, err := cc.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} utils.ErrorResponse
// @Router /categories/{id} [get]
func (cc *CategoryController) GetCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "category")
	if err != nil {
		return err
	}

	category, err := cc.Service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// GetCategoryQuizzes godoc
// @Summary List quizzes of a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param published query bool false "Only published quizzes"
// @Success 200 {array} services.QuizSummary
// @Failure 404 {object} utils.ErrorResponse
// @Router /categories/{id}/quizzes [get]
func (cc *CategoryController) GetCategoryQuizzes(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "category")
	if err != nil {
		return err
	}

	quizzes, err := cc.Service.Quizzes(c.UserContext(), id, c.QueryBool("published", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quizzes)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body categoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /categories [post]
func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	category, err := cc.Service.Create(c.UserContext(), services.CategoryInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, category)
}

func (cc *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "category")
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	category, err := cc.Service.Update(c.UserContext(), id, services.CategoryInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

func (cc *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "category")
	if err != nil {
		return err
	}

	if err := cc.Service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return utils.NoContent(c)
}
