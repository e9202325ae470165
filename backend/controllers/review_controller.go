package controllers

import (
	"quizzer/backend/services"
	"quizzer/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type reviewRequest struct {
	Nickname string `json:"nickname" validate:"max=100"`
	Rating   int    `json:"rating"`
	Text     string `json:"text" validate:"max=2000"`
}

type ReviewController struct {
	Service *services.ReviewService
}

func NewReviewController(service *services.ReviewService) *ReviewController {
	return &ReviewController{Service: service}
}

// GetQuizReviews godoc
// @Summary Reviews of a quiz with the average rating
// @Tags reviews
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} services.ReviewSummary
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes/{quizId}/reviews [get]
func (rc *ReviewController) GetQuizReviews(c *fiber.Ctx) error {
	quizID, err := paramID(c, "quizId", "quiz")
	if err != nil {
		return err
	}

	summary, err := rc.Service.List(c.UserContext(), quizID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// CreateReview godoc
// @Summary Review a published quiz
// @Tags reviews
// @Accept json
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Param review body reviewRequest true "Review"
// @Success 201 {object} models.Review
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /quizzes/{quizId}/reviews [post]
func (rc *ReviewController) CreateReview(c *fiber.Ctx) error {
	quizID, err := paramID(c, "quizId", "quiz")
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	review, err := rc.Service.Create(c.UserContext(), quizID, services.ReviewInput{
		Nickname: req.Nickname,
		Rating:   req.Rating,
		Text:     req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, review)
}

func (rc *ReviewController) UpdateReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "review")
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	review, err := rc.Service.Update(c.UserContext(), id, services.ReviewInput{Rating: req.Rating, Text: req.Text})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

func (rc *ReviewController) DeleteReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "review")
	if err != nil {
		return err
	}

	if err := rc.Service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return utils.NoContent(c)
}
