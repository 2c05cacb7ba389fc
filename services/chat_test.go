package services

import (
	"context"
	"testing"

	"github.com/Consistent-coder/QuizMaster/models"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatAskRejectsEmptyMessage(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taker@example.com", models.RoleUser)
	svc := NewChatService(db, nil)

	_, err := svc.Ask(context.Background(), user.ID, 1, "   ")
	require.Error(t, err)
	status, _ := utils.StatusOf(err)
	assert.Equal(t, 400, status)
}

func TestChatAskRequiresAttempt(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taker@example.com", models.RoleUser)
	quiz := seedQuiz(t, db, user.ID, "Go Basics", 1)
	svc := NewChatService(db, nil)

	_, err := svc.Ask(context.Background(), user.ID, quiz.ID, "why was I wrong?")
	require.Error(t, err)
	status, _ := utils.StatusOf(err)
	assert.Equal(t, 404, status)
}

func TestChatHistoryIsChronologicalAndScoped(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taker@example.com", models.RoleUser)
	other := seedUser(t, db, "other@example.com", models.RoleUser)
	svc := NewChatService(db, nil)

	rows := []models.ChatMessage{
		{UserID: user.ID, QuizID: 1, Role: models.ChatRoleUser, Content: "first"},
		{UserID: user.ID, QuizID: 1, Role: models.ChatRoleAssistant, Content: "second"},
		{UserID: user.ID, QuizID: 2, Role: models.ChatRoleUser, Content: "other quiz"},
		{UserID: other.ID, QuizID: 1, Role: models.ChatRoleUser, Content: "other user"},
	}
	require.NoError(t, db.Create(&rows).Error)

	messages, err := svc.History(user.ID, 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
}

func TestBuildChatPromptRendersAttemptContext(t *testing.T) {
	quiz := models.Quiz{
		Name:  "Go Basics",
		Topic: "golang",
		Questions: []models.Question{
			{
				Model:  modelWithID(1),
				Text:   "What is a goroutine?",
				Review: "Goroutines are lightweight threads.",
				Options: []models.Option{
					{Model: modelWithID(10), Text: "A lightweight thread", IsCorrect: true},
					{Model: modelWithID(11), Text: "An OS process", IsCorrect: false},
				},
			},
			{
				Model: modelWithID(2),
				Text:  "What does go vet do?",
				Options: []models.Option{
					{Model: modelWithID(20), Text: "Reports suspicious code", IsCorrect: true},
					{Model: modelWithID(21), Text: "Formats code", IsCorrect: false},
				},
			},
		},
	}
	selected := map[uint]uint{1: 11} // answered Q1 wrong, skipped Q2
	history := []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hello"},
		{Role: models.ChatRoleAssistant, Content: "hi there"},
	}

	prompt := buildChatPrompt(quiz, selected, history, "why was Q1 wrong?")

	assert.Contains(t, prompt, "Quiz: Go Basics (topic: golang)")
	assert.Contains(t, prompt, "User's answer: An OS process")
	assert.Contains(t, prompt, "Correct answer: A lightweight thread")
	assert.Contains(t, prompt, "Review: Goroutines are lightweight threads.")
	assert.Contains(t, prompt, "User's answer: Not attempted")
	assert.Contains(t, prompt, "user: hello")
	assert.Contains(t, prompt, "assistant: hi there")
	assert.Contains(t, prompt, "user: why was Q1 wrong?")
}
