package services

import (
	"testing"

	"github.com/Consistent-coder/QuizMaster/database"
	"github.com/Consistent-coder/QuizMaster/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedQuiz creates a quiz with the given number of questions, each with
// one correct and two incorrect options.
func seedQuiz(t *testing.T, db *gorm.DB, adminID uint, name string, questionCount int) *models.Quiz {
	t.Helper()

	quiz := models.Quiz{
		Name:        name,
		Description: "seeded quiz",
		Topic:       "testing",
		CreatedByID: adminID,
	}
	for i := 0; i < questionCount; i++ {
		quiz.Questions = append(quiz.Questions, models.Question{
			Text:   "question",
			Review: "because the correct option is correct",
			Options: []models.Option{
				{Text: "right", IsCorrect: true},
				{Text: "wrong", IsCorrect: false},
				{Text: "also wrong", IsCorrect: false},
			},
		})
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

// correctOption returns the correct option of the i-th question and
// wrongOption an incorrect one.
func correctOption(q models.Question) models.Option {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt
		}
	}
	return models.Option{}
}

func wrongOption(q models.Question) models.Option {
	for _, opt := range q.Options {
		if !opt.IsCorrect {
			return opt
		}
	}
	return models.Option{}
}

func modelWithID(id uint) gorm.Model {
	return gorm.Model{ID: id}
}
