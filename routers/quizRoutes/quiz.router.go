package quizRoutes

import (
	quizControllers "github.com/Consistent-coder/QuizMaster/controllers/quiz"
	"github.com/Consistent-coder/QuizMaster/middleware"
	"github.com/Consistent-coder/QuizMaster/services"
	quizValidators "github.com/Consistent-coder/QuizMaster/validators/quiz"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupQuizRoutes wires the catalog, attempt, generation and review-chat
// routes. Fixed paths are registered before the :quizId routes so /all,
// /admin, /generate and /u/... are not swallowed by the parameter.
func SetupQuizRoutes(app *fiber.App, db *gorm.DB, ai *services.Gemini) {
	quizzes := services.NewQuizService(db)
	attempts := services.NewAttemptService(db)
	chats := services.NewChatService(db, ai)

	quizGroup := app.Group("/quiz")

	quizGroup.Post("/create", middleware.Protected(db), middleware.AdminOnly, quizValidators.CreateQuiz(), quizControllers.CreateQuiz(quizzes))
	quizGroup.Post("/generate", middleware.Protected(db), middleware.AdminOnly, quizValidators.Generate(), quizControllers.GenerateAiQuestions(ai))
	quizGroup.Get("/all", quizControllers.GetAllQuizzes(quizzes))
	quizGroup.Get("/admin", middleware.Protected(db), middleware.AdminOnly, quizControllers.GetQuizzesByAdmin(quizzes))

	quizGroup.Get("/u/in-progress", middleware.Protected(db), quizControllers.GetUserInProgressQuizzes(attempts))
	quizGroup.Get("/u/completed", middleware.Protected(db), quizControllers.GetUserCompletedQuizzes(attempts))
	quizGroup.Get("/u/stats", middleware.Protected(db), quizControllers.GetUserQuizStats(attempts))

	quizGroup.Get("/:quizId/start", middleware.Protected(db), quizControllers.StartQuizAttempt(attempts))
	quizGroup.Post("/:quizId/save-progress", middleware.Protected(db), quizValidators.SaveProgress(), quizControllers.SaveProgress(attempts))
	quizGroup.Post("/:quizId/submit", middleware.Protected(db), quizValidators.SubmitAttempt(), quizControllers.SubmitQuizAttempt(attempts))
	quizGroup.Get("/:quizId/attempt", middleware.Protected(db), quizControllers.GetQuizAttemptDetails(attempts))

	// Review chat: POST carries its own token (body, header or cookie)
	quizGroup.Post("/:quizId/chat", quizControllers.AskReviewBot(db, chats))
	quizGroup.Get("/:quizId/chat", middleware.Protected(db), quizControllers.GetChatHistory(chats))
}
