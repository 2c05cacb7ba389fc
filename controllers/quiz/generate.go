package quizController

import (
	"github.com/Consistent-coder/QuizMaster/middleware"
	"github.com/Consistent-coder/QuizMaster/services"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/gofiber/fiber/v2"
)

type generateRequest struct {
	Topic             string `json:"topic"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}

// GenerateAiQuestions asks the AI provider for question drafts on a topic.
// Parse failures surface as a generation error; there is no retry, the
// admin simply re-invokes.
func GenerateAiQuestions(ai *services.Gemini) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(generateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		questions, err := ai.GenerateQuestions(c.UserContext(), reqData.Topic, reqData.NumberOfQuestions)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Questions generated!", fiber.Map{
			"questions": questions,
		})
	}
}
