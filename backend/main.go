package main

import (
	"log"
	"os"

	"quizzer/backend/config"
	"quizzer/backend/routes"
	"quizzer/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{
		Format:       cfg.LogFormat,
		Output:       os.Stdout,
		EnableColors: cfg.LogColors,
	})

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}

	app := routes.NewApp(cfg, logger)
	routes.SetupRoutes(app, db, cfg, logger)

	logger.Printf("Starting server on :%s (answer mode: %s, auth: %t)", cfg.ServerPort, cfg.AnswerRecordMode, cfg.AuthEnabled)
	logger.Fatal(app.Listen(":" + cfg.ServerPort))
}
