package main

import (
	"context"
	"log"

	"github.com/Consistent-coder/QuizMaster/config"
	"github.com/Consistent-coder/QuizMaster/database"
	authRoutes "github.com/Consistent-coder/QuizMaster/routers/authRoutes"
	quizRoutes "github.com/Consistent-coder/QuizMaster/routers/quizRoutes"
	"github.com/Consistent-coder/QuizMaster/services"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}

	gemini, err := services.NewGemini(context.Background(), config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to set up Gemini client: %v", err)
	}
	defer gemini.Close()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.ClientURL,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: config.AppConfig.ClientURL != "*",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "Welcome to Quiz App."})
	})

	authRoutes.SetupAuthRoutes(app, db)
	quizRoutes.SetupQuizRoutes(app, db, gemini)

	reminder := utils.InitializeReminderScheduler(db)
	defer reminder.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
