package routes

import (
	"log"

	"quizzer/backend/config"
	"quizzer/backend/controllers"
	"quizzer/backend/middleware"
	"quizzer/backend/repository"
	"quizzer/backend/services"
	"quizzer/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp builds the fiber app with the shared middleware stack.
func NewApp(cfg *config.Config, logger *log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Quizzer",
		ErrorHandler: utils.ErrorHandler(logger),
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(recover.New())

	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	store := repository.NewStore(db)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.Ping(c.UserContext()); err != nil {
			return utils.Error(c, fiber.StatusServiceUnavailable, "Database unavailable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Mutating routes require a TEACHER token when auth is enabled
	guard := func(h fiber.Handler) []fiber.Handler {
		return append(middleware.Mutating(cfg), h)
	}

	// Auth routes
	authService := services.NewAuthService(store, cfg, logger)
	authController := controllers.NewAuthController(authService)
	api.Post("/auth/register", authController.Register)
	api.Post("/auth/login", authController.Login)

	// User routes
	userController := controllers.NewUserController(authService)
	api.Get("/user/profile", middleware.Protected(cfg), userController.GetProfile)

	// Category routes
	categoryController := controllers.NewCategoryController(services.NewCategoryService(store, logger))
	categories := api.Group("/categories")
	categories.Get("/", categoryController.ListCategories)
	categories.Get("/:id", categoryController.GetCategory)
	categories.Get("/:id/quizzes", categoryController.GetCategoryQuizzes)
	categories.Post("/", guard(categoryController.CreateCategory)...)
	categories.Put("/:id", guard(categoryController.UpdateCategory)...)
	categories.Delete("/:id", guard(categoryController.DeleteCategory)...)

	// Quiz routes
	quizController := controllers.NewQuizController(services.NewQuizService(store, logger))
	questionController := controllers.NewQuestionController(services.NewQuestionService(store, logger))
	answerController := controllers.NewAnswerController(services.NewAnswerService(store, cfg, logger))
	reviewController := controllers.NewReviewController(services.NewReviewService(store, logger))

	quizzes := api.Group("/quizzes")
	quizzes.Get("/", quizController.ListQuizzes)
	quizzes.Get("/published", quizController.ListPublishedQuizzes)
	quizzes.Get("/:id", quizController.GetQuiz)
	quizzes.Get("/:id/details", quizController.GetQuizDetails)
	quizzes.Post("/", guard(quizController.CreateQuiz)...)
	quizzes.Put("/:id", guard(quizController.UpdateQuiz)...)
	quizzes.Delete("/:id", guard(quizController.DeleteQuiz)...)

	quizzes.Get("/:id/questions", questionController.ListQuizQuestions)
	quizzes.Post("/:id/questions", guard(questionController.CreateQuestion)...)
	quizzes.Post("/:id/submit", answerController.SubmitQuiz)
	quizzes.Get("/:id/results", answerController.GetQuizResults)

	quizzes.Get("/:quizId/reviews", reviewController.GetQuizReviews)
	quizzes.Post("/:quizId/reviews", reviewController.CreateReview)

	// Question and option routes
	questions := api.Group("/questions")
	questions.Get("/:id", questionController.GetQuestion)
	questions.Put("/:id", guard(questionController.UpdateQuestion)...)
	questions.Delete("/:id", guard(questionController.DeleteQuestion)...)
	questions.Post("/:id/options", guard(questionController.AddOption)...)
	api.Delete("/options/:id", guard(questionController.DeleteOption)...)

	// Answer routes
	api.Post("/answers", answerController.SubmitAnswer)
	api.Get("/answers/quiz/:quizId", answerController.ListQuizAnswers)

	// Review routes
	api.Put("/reviews/:id", reviewController.UpdateReview)
	api.Delete("/reviews/:id", reviewController.DeleteReview)
}
