package controllers

import (
	"quizzer/backend/services"
	"quizzer/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Service *services.AuthService
}

func NewUserController(service *services.AuthService) *UserController {
	return &UserController{Service: service}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := uc.Service.Profile(c.UserContext(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"roles":    user.Roles,
		"role":     user.PrimaryRole(),
	})
}
