package controllers

import (
	"quizzer/backend/services"
	"quizzer/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type optionRequest struct {
	Text    string `json:"text" validate:"required,max=500"`
	Correct bool   `json:"correct"`
}

type questionRequest struct {
	Content    string          `json:"content" validate:"required"`
	Difficulty string          `json:"difficulty" validate:"max=50"`
	Answers    []optionRequest `json:"answers" validate:"dive"`
}

func (r questionRequest) input() services.QuestionInput {
	options := make([]services.OptionInput, 0, len(r.Answers))
	for _, a := range r.Answers {
		options = append(options, services.OptionInput{Text: a.Text, Correct: a.Correct})
	}
	return services.QuestionInput{Content: r.Content, Difficulty: r.Difficulty, Options: options}
}

type QuestionController struct {
	Service *services.QuestionService
}

func NewQuestionController(service *services.QuestionService) *QuestionController {
	return &QuestionController{Service: service}
}

// ListQuizQuestions godoc
// @Summary Questions of a quiz with their options
// @Tags questions
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {array} models.Question
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes/{id}/questions [get]
func (qc *QuestionController) ListQuizQuestions(c *fiber.Ctx) error {
	quizID, err := paramID(c, "id", "quiz")
	if err != nil {
		return err
	}

	questions, err := qc.Service.ListByQuiz(c.UserContext(), quizID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(questions)
}

// CreateQuestion godoc
// @Summary Add a question to a quiz
// @Tags questions
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param question body questionRequest true "Question with options"
// @Success 201 {object} models.Question
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes/{id}/questions [post]
func (qc *QuestionController) CreateQuestion(c *fiber.Ctx) error {
	quizID, err := paramID(c, "id", "quiz")
	if err != nil {
		return err
	}

	var req questionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	question, err := qc.Service.Create(c.UserContext(), quizID, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, question)
}

func (qc *QuestionController) GetQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "question")
	if err != nil {
		return err
	}

	question, err := qc.Service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description A non-empty answers list replaces all options of the question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body questionRequest true "Question with options"
// @Success 200 {object} models.Question
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /questions/{id} [put]
func (qc *QuestionController) UpdateQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "question")
	if err != nil {
		return err
	}

	var req questionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	question, err := qc.Service.Update(c.UserContext(), id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(question)
}

func (qc *QuestionController) DeleteQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "question")
	if err != nil {
		return err
	}

	if err := qc.Service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return utils.NoContent(c)
}

func (qc *QuestionController) AddOption(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "question")
	if err != nil {
		return err
	}

	var req optionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	option, err := qc.Service.AddOption(c.UserContext(), id, services.OptionInput{Text: req.Text, Correct: req.Correct})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, option)
}

func (qc *QuestionController) DeleteOption(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "answer option")
	if err != nil {
		return err
	}

	if err := qc.Service.DeleteOption(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return utils.NoContent(c)
}
