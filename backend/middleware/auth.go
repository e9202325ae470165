package middleware

import (
	"quizzer/backend/config"
	"quizzer/backend/models"
	"quizzer/backend/utils"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
)

// Protected проверяет Bearer токен и кладёт его в c.Locals("user")
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(cfg.JWTSecret),
		ContextKey:   utils.TokenContextKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return utils.Unauthorized(c, "Missing or malformed JWT")
	}
	return utils.Unauthorized(c, "Invalid or expired JWT")
}

// TeacherRequired пропускает только токены с ролью TEACHER.
// Должен стоять после Protected.
func TeacherRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ClaimsFromContext(c)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		if claims.Role != string(models.RoleTeacher) {
			return utils.Forbidden(c, "Forbidden: Teacher access required")
		}
		return c.Next()
	}
}

// Mutating собирает цепочку для изменяющих маршрутов. При выключенной
// авторизации цепочка пустая.
func Mutating(cfg *config.Config) []fiber.Handler {
	if !cfg.AuthEnabled {
		return nil
	}
	return []fiber.Handler{Protected(cfg), TeacherRequired()}
}
