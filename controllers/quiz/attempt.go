package quizController

import (
	"github.com/Consistent-coder/QuizMaster/middleware"
	"github.com/Consistent-coder/QuizMaster/services"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/gofiber/fiber/v2"
)

func quizIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("quizId")
	if err != nil || id <= 0 {
		return 0, utils.BadRequest("Quiz id is required!")
	}
	return uint(id), nil
}

func currentUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return 0, utils.Unauthorized("Unauthorized Access.")
	}
	return userID, nil
}

type answersRequest struct {
	Answers []services.AnswerInput `json:"answers"`
}

// StartQuizAttempt creates or resumes the caller's attempt and returns the
// quiz with a resume map of previously selected options.
func StartQuizAttempt(attempts *services.AttemptService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		quizID, err := quizIDParam(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		result, err := attempts.Start(userID, quizID)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Quiz attempt started!", fiber.Map{
			"quiz":            result.Quiz,
			"attempt":         result.Attempt,
			"selectedAnswers": result.SelectedAnswers,
		})
	}
}

// SaveProgress checkpoints the caller's in-progress answers.
func SaveProgress(attempts *services.AttemptService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		quizID, err := quizIDParam(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		reqData := new(answersRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		if err := attempts.SaveProgress(userID, quizID, reqData.Answers); err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Progress saved!", nil)
	}
}

// SubmitQuizAttempt grades the submitted answers and closes the attempt.
func SubmitQuizAttempt(attempts *services.AttemptService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		quizID, err := quizIDParam(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		reqData := new(answersRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		score, err := attempts.Submit(userID, quizID, reqData.Answers)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Quiz submitted successfully", fiber.Map{
			"score": score,
		})
	}
}

// GetQuizAttemptDetails returns the graded per-question review.
func GetQuizAttemptDetails(attempts *services.AttemptService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		quizID, err := quizIDParam(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		review, err := attempts.Review(userID, quizID)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Attempt details fetched!", fiber.Map{
			"quiz":             review.Quiz,
			"totalScore":       review.TotalScore,
			"percentage":       review.Percentage,
			"evaluatedAnswers": review.EvaluatedAnswers,
		})
	}
}
