package authRoutes

import (
	authControllers "github.com/Consistent-coder/QuizMaster/controllers/auth"
	authValidators "github.com/Consistent-coder/QuizMaster/validators/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup(db))
	authGroup.Post("/signin", authValidators.Signin(), authControllers.Signin(db))
}
