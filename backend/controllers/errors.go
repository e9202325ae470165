package controllers

import (
	"errors"
	"strconv"

	"quizzer/backend/services"
	"quizzer/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError пишет ответ для известных ошибок; остальные уходят в ErrorHandler
func respondError(c *fiber.Ctx, err error) error {
	var verrs utils.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return utils.ValidationError(c, verrs)
	case errors.Is(err, services.ErrValidation):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidState):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return utils.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return utils.Forbidden(c, err.Error())
	default:
		return err
	}
}

// parseBody разбирает JSON и проверяет validate-теги
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	return utils.ValidateStruct(dst)
}

func paramID(c *fiber.Ctx, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+label+" ID")
	}
	return uint(id), nil
}
