package quizController

import (
	"github.com/Consistent-coder/QuizMaster/middleware"
	"github.com/Consistent-coder/QuizMaster/services"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateQuiz persists a new quiz owned by the authenticated admin.
func CreateQuiz(quizzes *services.QuizService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.ErrorResponse(c, utils.Unauthorized("Unauthorized Access."))
		}

		reqData := new(services.QuizInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		quiz, err := quizzes.Create(adminID, *reqData)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, "Quiz created successfully", fiber.Map{
			"quiz": quiz,
		})
	}
}

// GetAllQuizzes lists or searches the public catalog.
func GetAllQuizzes(quizzes *services.QuizService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		searchTerm := c.Query("searchTerm")

		summaries, err := quizzes.List(searchTerm)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Quizzes fetched successfully!", fiber.Map{
			"quizzes": summaries,
		})
	}
}

// GetQuizzesByAdmin lists the quizzes created by the caller.
func GetQuizzesByAdmin(quizzes *services.QuizService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.ErrorResponse(c, utils.Unauthorized("Unauthorized Access."))
		}

		summaries, err := quizzes.ListByAdmin(adminID)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Quizzes fetched successfully!", fiber.Map{
			"quizzes": summaries,
		})
	}
}
