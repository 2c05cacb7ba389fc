package quizValidator

import (
	"github.com/Consistent-coder/QuizMaster/middleware"
	"github.com/Consistent-coder/QuizMaster/services"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateQuiz checks the quiz payload shape before the handler runs: name
// and topic present, at least one question, and for every question at
// least 2 options with exactly 1 marked correct.
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.QuizInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		if reqData.Name == "" || reqData.Topic == "" {
			return middleware.ErrorResponse(c, utils.BadRequest("All fields are required!"))
		}

		if len(reqData.Questions) == 0 {
			return middleware.ErrorResponse(c, utils.BadRequest("Quiz must have at least one question."))
		}

		for _, question := range reqData.Questions {
			correct := 0
			for _, option := range question.Options {
				if option.IsCorrect {
					correct++
				}
			}
			if len(question.Options) < 2 || correct != 1 {
				return middleware.ErrorResponse(c, utils.BadRequest(
					"Each question must have at least 2 options and exactly 1 correct answer."))
			}
		}

		return c.Next()
	}
}

type generateRequest struct {
	Topic             string `json:"topic" validate:"required"`
	NumberOfQuestions int    `json:"numberOfQuestions" validate:"required,min=1,max=20"`
}

// Generate validates the AI generation request
func Generate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(generateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest(
				"Topic and a question count between 1 and 20 are required!"))
		}

		return c.Next()
	}
}

type answersRequest struct {
	Answers []services.AnswerInput `json:"answers"`
}

// SubmitAttempt requires a non-empty answer list.
func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(answersRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		if len(reqData.Answers) == 0 {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid quiz submission!"))
		}

		return c.Next()
	}
}

// SaveProgress accepts any answer list, empty included; a checkpoint may
// legitimately clear every choice.
func SaveProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(answersRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		return c.Next()
	}
}
