package quizController

import (
	"github.com/Consistent-coder/QuizMaster/middleware"
	"github.com/Consistent-coder/QuizMaster/services"

	"github.com/gofiber/fiber/v2"
)

// GetUserInProgressQuizzes lists the caller's unfinished attempts.
func GetUserInProgressQuizzes(attempts *services.AttemptService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		quizzes, err := attempts.InProgress(userID)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "In-progress quizzes fetched!", fiber.Map{
			"quizzes": quizzes,
		})
	}
}

// GetUserCompletedQuizzes lists the caller's graded attempts.
func GetUserCompletedQuizzes(attempts *services.AttemptService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		quizzes, err := attempts.Completed(userID)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Completed quizzes fetched!", fiber.Map{
			"quizzes": quizzes,
		})
	}
}

// GetUserQuizStats aggregates the caller's dashboard numbers.
func GetUserQuizStats(attempts *services.AttemptService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		stats, err := attempts.Stats(userID)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Stats fetched!", fiber.Map{
			"stats": stats,
		})
	}
}
