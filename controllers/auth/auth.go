package authController

import (
	"errors"
	"log"

	"github.com/Consistent-coder/QuizMaster/config"
	"github.com/Consistent-coder/QuizMaster/middleware"
	"github.com/Consistent-coder/QuizMaster/models"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Signup creates a user and returns it with a signed token.
func Signup(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(signupRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		// Check if email already exists
		var existing models.User
		if err := db.Where("email = ?", reqData.Email).First(&existing).Error; err == nil {
			return middleware.ErrorResponse(c, utils.Unauthorized("User already exists with this email!"))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking existing user: %v", err)
			return middleware.ErrorResponse(c, utils.Internal(""))
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.ErrorResponse(c, utils.Internal("Failed to process your request!"))
		}

		role := reqData.Role
		if role != models.RoleAdmin {
			role = models.RoleUser
		}

		newUser := models.User{
			Name:     reqData.Name,
			Email:    reqData.Email,
			Password: string(hashedPassword),
			Role:     role,
		}

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("Error saving user to database: %v", err)
			return middleware.ErrorResponse(c, utils.Internal("Failed to signup user!"))
		}

		token, err := middleware.GenerateJWT(newUser.ID)
		if err != nil {
			log.Printf("Error generating token: %v", err)
			return middleware.ErrorResponse(c, utils.Internal(""))
		}

		go utils.SendWelcomeEmail(newUser.Email, newUser.Name)

		newUser.Password = ""

		return middleware.JsonResponse(c, fiber.StatusCreated, "User signup successful!", fiber.Map{
			"user":  newUser,
			"token": token,
		})
	}
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signin authenticates by email and password and returns the user with a
// fresh token.
func Signin(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(signinRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		var user models.User
		if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
			return middleware.ErrorResponse(c, utils.Unauthorized("Invalid credentials"))
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
			return middleware.ErrorResponse(c, utils.Unauthorized("Invalid credentials"))
		}

		token, err := middleware.GenerateJWT(user.ID)
		if err != nil {
			log.Printf("Error generating token: %v", err)
			return middleware.ErrorResponse(c, utils.Internal(""))
		}

		user.Password = ""

		return middleware.JsonResponse(c, fiber.StatusOK, "User signin successful!", fiber.Map{
			"user":  user,
			"token": token,
		})
	}
}
