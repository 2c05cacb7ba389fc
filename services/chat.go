package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Consistent-coder/QuizMaster/models"
	"github.com/Consistent-coder/QuizMaster/utils"

	"gorm.io/gorm"
)

// ChatService answers questions about a user's quiz attempt using the
// attempt's own context, and keeps an append-only log of the exchange.
type ChatService struct {
	db *gorm.DB
	ai *Gemini
}

func NewChatService(db *gorm.DB, ai *Gemini) *ChatService {
	return &ChatService{db: db, ai: ai}
}

// Ask builds a transcript of the user's attempt, forwards it with the new
// message to the provider and logs both sides of the exchange.
func (s *ChatService) Ask(ctx context.Context, userID, quizID uint, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", utils.BadRequest("Message is required!")
	}

	var attempt models.QuizAttempt
	err := s.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NotFound("No attempt found for this quiz!")
		}
		log.Printf("Error fetching attempt: %v", err)
		return "", utils.Internal("")
	}

	var quiz models.Quiz
	if err := s.db.Preload("Questions.Options").First(&quiz, quizID).Error; err != nil {
		log.Printf("Error fetching quiz %d: %v", quizID, err)
		return "", utils.Internal("")
	}

	selected, err := s.attemptSelections(attempt.ID)
	if err != nil {
		return "", err
	}

	history, err := s.History(userID, quizID)
	if err != nil {
		return "", err
	}

	prompt := buildChatPrompt(quiz, selected, history, message)

	reply, err := s.ai.Ask(ctx, prompt)
	if err != nil {
		return "", err
	}

	rows := []models.ChatMessage{
		{UserID: userID, QuizID: quizID, Role: models.ChatRoleUser, Content: message},
		{UserID: userID, QuizID: quizID, Role: models.ChatRoleAssistant, Content: reply},
	}
	if err := s.db.Create(&rows).Error; err != nil {
		log.Printf("Error logging chat messages: %v", err)
		return "", utils.Internal("Failed to save chat message!")
	}

	return reply, nil
}

// History returns all chat messages for (user, quiz) in chronological order.
func (s *ChatService) History(userID, quizID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		log.Printf("Error fetching chat history: %v", err)
		return nil, utils.Internal("")
	}
	return messages, nil
}

func (s *ChatService) attemptSelections(attemptID uint) (map[uint]uint, error) {
	var answers []models.Answer
	if err := s.db.Where("attempt_id = ?", attemptID).Find(&answers).Error; err != nil {
		log.Printf("Error fetching answers: %v", err)
		return nil, utils.Internal("")
	}

	selected := make(map[uint]uint, len(answers))
	for _, ans := range answers {
		selected[ans.QuestionID] = ans.SelectedOptionID
	}
	return selected, nil
}

// buildChatPrompt renders the attempt as plain text: per question the
// user's answer, the correct answer and the review explanation, followed
// by the running conversation.
func buildChatPrompt(quiz models.Quiz, selected map[uint]uint, history []models.ChatMessage, message string) string {
	var b strings.Builder

	b.WriteString("You are a helpful quiz review assistant for the QuizMaster app. ")
	b.WriteString("Answer the user's question using only the quiz attempt context below. ")
	b.WriteString("Be concise and encouraging.\n\n")

	fmt.Fprintf(&b, "Quiz: %s (topic: %s)\n\n", quiz.Name, quiz.Topic)

	for i, question := range quiz.Questions {
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, question.Text)

		userAnswer := "Not attempted"
		correctAnswer := ""
		if selectedID, ok := selected[question.ID]; ok {
			for _, opt := range question.Options {
				if opt.ID == selectedID {
					userAnswer = opt.Text
				}
			}
		}
		for _, opt := range question.Options {
			if opt.IsCorrect {
				correctAnswer = opt.Text
			}
		}

		fmt.Fprintf(&b, "User's answer: %s\n", userAnswer)
		fmt.Fprintf(&b, "Correct answer: %s\n", correctAnswer)
		if question.Review != "" {
			fmt.Fprintf(&b, "Review: %s\n", question.Review)
		}
		b.WriteString("\n")
	}

	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, msg := range history {
			fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "user: %s\n", message)

	return b.String()
}
