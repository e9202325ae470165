package controllers

import (
	"quizzer/backend/services"
	"quizzer/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type answerPairRequest struct {
	QuestionID       uint `json:"questionId"`
	SelectedAnswerID uint `json:"selectedAnswerId"`
}

type submitRequest struct {
	UserID  string              `json:"userId" validate:"max=100"`
	Answers []answerPairRequest `json:"answers"`
}

type singleAnswerRequest struct {
	AnswerOptionID uint   `json:"answerOptionId" validate:"required"`
	QuestionID     *uint  `json:"questionId"`
	UserID         string `json:"userId" validate:"max=100"`
}

type AnswerController struct {
	Service *services.AnswerService
}

func NewAnswerController(service *services.AnswerService) *AnswerController {
	return &AnswerController{Service: service}
}

// SubmitQuiz godoc
// @Summary Submit answers for a quiz and get the score
// @Tags answers
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param submission body submitRequest true "Chosen options"
// @Success 200 {object} services.SubmissionResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (ac *AnswerController) SubmitQuiz(c *fiber.Ctx) error {
	quizID, err := paramID(c, "id", "quiz")
	if err != nil {
		return err
	}

	var req submitRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	pairs := make([]services.AnswerPair, 0, len(req.Answers))
	for _, a := range req.Answers {
		pairs = append(pairs, services.AnswerPair{QuestionID: a.QuestionID, SelectedAnswerID: a.SelectedAnswerID})
	}

	result, err := ac.Service.Submit(c.UserContext(), quizID, services.SubmissionInput{UserID: req.UserID, Answers: pairs})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// SubmitAnswer godoc
// @Summary Answer a single question
// @Tags answers
// @Accept json
// @Produce json
// @Param answer body singleAnswerRequest true "Chosen option"
// @Success 201 {object} services.AnswerFeedback
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /answers [post]
func (ac *AnswerController) SubmitAnswer(c *fiber.Ctx) error {
	var req singleAnswerRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	out, err := ac.Service.SubmitSingle(c.UserContext(), services.SingleAnswerInput{
		AnswerOptionID: req.AnswerOptionID,
		QuestionID:     req.QuestionID,
		UserID:         req.UserID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, out)
}

func (ac *AnswerController) ListQuizAnswers(c *fiber.Ctx) error {
	quizID, err := paramID(c, "quizId", "quiz")
	if err != nil {
		return err
	}

	answers, err := ac.Service.ListByQuiz(c.UserContext(), quizID, c.Query("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(answers)
}

// GetQuizResults godoc
// @Summary Per-question answer statistics of a quiz
// @Tags answers
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {array} models.QuestionStats
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes/{id}/results [get]
func (ac *AnswerController) GetQuizResults(c *fiber.Ctx) error {
	quizID, err := paramID(c, "id", "quiz")
	if err != nil {
		return err
	}

	stats, err := ac.Service.Results(c.UserContext(), quizID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
