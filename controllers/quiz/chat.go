package quizController

import (
	"github.com/Consistent-coder/QuizMaster/middleware"
	"github.com/Consistent-coder/QuizMaster/models"
	"github.com/Consistent-coder/QuizMaster/services"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type chatRequest struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// AskReviewBot forwards a user message plus the attempt context to the AI
// assistant. The route sits outside the auth middleware: the bearer
// credential may arrive in the body, header or cookie.
func AskReviewBot(db *gorm.DB, chats *services.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(chatRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, utils.BadRequest("Invalid request body!"))
		}

		tokenString := reqData.Token
		if tokenString == "" {
			tokenString = middleware.ExtractToken(c)
		}
		if tokenString == "" {
			return middleware.ErrorResponse(c, utils.Unauthorized("Unauthorized Access."))
		}

		userID, err := middleware.VerifyToken(tokenString)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return middleware.ErrorResponse(c, utils.Unauthorized("Unauthorized Access."))
		}

		quizID, err := quizIDParam(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		reply, err := chats.Ask(c.UserContext(), user.ID, quizID, reqData.Message)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Reply generated!", fiber.Map{
			"reply": reply,
		})
	}
}

// GetChatHistory returns the caller's chat log for a quiz in
// chronological order.
func GetChatHistory(chats *services.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		quizID, err := quizIDParam(c)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		messages, err := chats.History(userID, quizID)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, "Chat history fetched!", fiber.Map{
			"messages": messages,
		})
	}
}
