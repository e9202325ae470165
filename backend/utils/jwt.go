package utils

import (
	"time"

	"quizzer/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// TokenContextKey is where the JWT middleware stores the parsed token.
const TokenContextKey = "user"

// TokenClaims is what handlers need from a verified token.
type TokenClaims struct {
	UserID   uint
	Username string
	Role     string
}

func GenerateJWTToken(userID uint, username, role string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour * time.Duration(cfg.JWTTTLHours)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ClaimsFromContext reads the token that middleware.Protected stored in locals.
func ClaimsFromContext(c *fiber.Ctx) (TokenClaims, error) {
	token, ok := c.Locals(TokenContextKey).(*jwt.Token)
	if !ok || token == nil {
		return TokenClaims{}, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}
	return ParseClaims(token)
}

// ParseClaims extracts our claims from an already verified token.
func ParseClaims(token *jwt.Token) (TokenClaims, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenClaims{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return TokenClaims{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return TokenClaims{
		UserID:   uint(userIDFloat),
		Username: username,
		Role:     role,
	}, nil
}

// ParseToken verifies a raw token string signed with the configured secret.
func ParseToken(tokenString string, cfg *config.Config) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	return token, nil
}
