package services

import (
	"testing"

	"github.com/Consistent-coder/QuizMaster/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardListsSplitByStatus(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taker@example.com", models.RoleUser)
	finished := seedQuiz(t, db, user.ID, "Finished Quiz", 2)
	open := seedQuiz(t, db, user.ID, "Open Quiz", 3)
	svc := NewAttemptService(db)

	_, err := svc.Start(user.ID, finished.ID)
	require.NoError(t, err)
	_, err = svc.Submit(user.ID, finished.ID, []AnswerInput{
		{QuestionID: finished.Questions[0].ID, SelectedOptionID: correctOption(finished.Questions[0]).ID},
		{QuestionID: finished.Questions[1].ID, SelectedOptionID: correctOption(finished.Questions[1]).ID},
	})
	require.NoError(t, err)

	_, err = svc.Start(user.ID, open.ID)
	require.NoError(t, err)
	require.NoError(t, svc.SaveProgress(user.ID, open.ID, []AnswerInput{
		{QuestionID: open.Questions[0].ID, SelectedOptionID: wrongOption(open.Questions[0]).ID},
	}))

	inProgress, err := svc.InProgress(user.ID)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, "Open Quiz", inProgress[0].Name)
	assert.Equal(t, 3, inProgress[0].QuestionCount)
	assert.Equal(t, 1, inProgress[0].AnsweredCount)

	completed, err := svc.Completed(user.ID)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Finished Quiz", completed[0].Name)
	assert.Equal(t, 20, completed[0].Score)
	assert.InDelta(t, 100.0, completed[0].Percentage, 0.001)
}

func TestStatsAggregates(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taker@example.com", models.RoleUser)
	quizA := seedQuiz(t, db, user.ID, "Quiz A", 1)
	quizB := seedQuiz(t, db, user.ID, "Quiz B", 1)
	quizC := seedQuiz(t, db, user.ID, "Quiz C", 1)
	svc := NewAttemptService(db)

	for _, quiz := range []*models.Quiz{quizA, quizB} {
		_, err := svc.Start(user.ID, quiz.ID)
		require.NoError(t, err)
	}
	_, err := svc.Submit(user.ID, quizA.ID, []AnswerInput{
		{QuestionID: quizA.Questions[0].ID, SelectedOptionID: correctOption(quizA.Questions[0]).ID},
	})
	require.NoError(t, err)
	_, err = svc.Submit(user.ID, quizB.ID, []AnswerInput{
		{QuestionID: quizB.Questions[0].ID, SelectedOptionID: wrongOption(quizB.Questions[0]).ID},
	})
	require.NoError(t, err)

	_, err = svc.Start(user.ID, quizC.ID)
	require.NoError(t, err)

	stats, err := svc.Stats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalAttempts)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 10, stats.BestScore)
	assert.InDelta(t, 3.0, stats.AverageScore, 0.001) // (10 + -4) / 2
}

func TestStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taker@example.com", models.RoleUser)
	svc := NewAttemptService(db)

	stats, err := svc.Stats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalAttempts)
	assert.Equal(t, 0.0, stats.AverageScore)
	assert.Equal(t, 0, stats.BestScore)
}
