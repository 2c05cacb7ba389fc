package models

import "gorm.io/gorm"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is an append-only log of the review-chat conversation,
// scoped per (user, quiz), independent of attempt status.
type ChatMessage struct {
	gorm.Model
	UserID  uint   `json:"userId" gorm:"index:idx_chat_user_quiz;not null"`
	QuizID  uint   `json:"quizId" gorm:"index:idx_chat_user_quiz;not null"`
	Role    string `json:"role" gorm:"not null"` // user or assistant
	Content string `json:"content" gorm:"not null"`
}
