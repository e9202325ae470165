package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"quizzer/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWTToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret", JWTTTLHours: 1}

	tokenString, err := GenerateJWTToken(42, "teach", "TEACHER", cfg)
	require.NoError(t, err)

	token, err := ParseToken(tokenString, cfg)
	require.NoError(t, err)

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "teach", claims.Username)
	assert.Equal(t, "TEACHER", claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tokenString, err := GenerateJWTToken(1, "a", "STUDENT", &config.Config{JWTSecret: "one", JWTTTLHours: 1})
	require.NoError(t, err)

	_, err = ParseToken(tokenString, &config.Config{JWTSecret: "two"})
	assert.Error(t, err)
}

type sampleRequest struct {
	Name  string   `json:"name" validate:"required,min=2,max=5"`
	Email string   `json:"email" validate:"omitempty,email"`
	Tags  []string `json:"tags" validate:"max=1"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(sampleRequest{Name: "ok"}))

	err := ValidateStruct(sampleRequest{Name: "x", Email: "nope", Tags: []string{"a", "b"}})
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "must be at least 2 characters", verrs["name"])
	assert.Equal(t, "must be a valid email", verrs["email"])
	assert.Equal(t, "must be at most 1 items", verrs["tags"])
	assert.Equal(t, "email must be a valid email; name must be at least 2 characters; tags must be at most 1 items", verrs.Error())
}

func TestErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log.New(&buf, "", 0))})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("kaboom") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "An unexpected error occurred", body.Error)
	assert.Equal(t, "kaboom", body.Message)
	assert.Equal(t, "*errors.errorString", body.Type)
	assert.Contains(t, buf.String(), "kaboom")

	resp, err = app.Test(httptest.NewRequest("GET", "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"short and stout"}`, string(raw))
}

func TestInitLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LoggerConfig{Format: "json", Output: &buf})
	logger.Print("hello")
	assert.Contains(t, buf.String(), "[Quizzer] hello")
}
