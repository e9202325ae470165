package controllers

import (
	"quizzer/backend/services"
	"quizzer/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type quizRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	CourseCode  string `json:"courseCode" validate:"max=50"`
	Published   bool   `json:"published"`
	CategoryID  *uint  `json:"categoryId"`
}

func (r quizRequest) input() services.QuizInput {
	return services.QuizInput{
		Name:        r.Name,
		Description: r.Description,
		CourseCode:  r.CourseCode,
		Published:   r.Published,
		CategoryID:  r.CategoryID,
	}
}

type QuizController struct {
	Service *services.QuizService
}

func NewQuizController(service *services.QuizService) *QuizController {
	return &QuizController{Service: service}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Param published query bool false "Only published quizzes"
// @Success 200 {array} services.QuizSummary
// @Router /quizzes [get]
func (qc *QuizController) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := qc.Service.List(c.UserContext(), c.QueryBool("published", false))
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

func (qc *QuizController) ListPublishedQuizzes(c *fiber.Ctx) error {
	quizzes, err := qc.Service.List(c.UserContext(), true)
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} services.QuizSummary
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes/{id} [get]
func (qc *QuizController) GetQuiz(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "quiz")
	if err != nil {
		return err
	}

	quiz, err := qc.Service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quiz)
}

// GetQuizDetails godoc
// @Summary Quiz with questions for taking it
// @Description Options are returned without their correctness flag
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} services.QuizDetails
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes/{id}/details [get]
func (qc *QuizController) GetQuizDetails(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "quiz")
	if err != nil {
		return err
	}

	details, err := qc.Service.Details(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(details)
}

func (qc *QuizController) CreateQuiz(c *fiber.Ctx) error {
	var req quizRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	quiz, err := qc.Service.Create(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, quiz)
}

func (qc *QuizController) UpdateQuiz(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "quiz")
	if err != nil {
		return err
	}

	var req quizRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	quiz, err := qc.Service.Update(c.UserContext(), id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quiz)
}

// DeleteQuiz godoc
// @Summary Delete a quiz with its questions, options and reviews
// @Tags quizzes
// @Param id path int true "Quiz ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes/{id} [delete]
func (qc *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "quiz")
	if err != nil {
		return err
	}

	if err := qc.Service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return utils.NoContent(c)
}
