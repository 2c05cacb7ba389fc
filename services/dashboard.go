package services

import (
	"log"
	"time"

	"github.com/Consistent-coder/QuizMaster/models"
	"github.com/Consistent-coder/QuizMaster/utils"
)

type InProgressQuiz struct {
	AttemptID     uint      `json:"attemptId"`
	QuizID        uint      `json:"quizId"`
	Name          string    `json:"name"`
	Topic         string    `json:"topic"`
	QuestionCount int       `json:"questionCount"`
	AnsweredCount int       `json:"answeredCount"`
	LastSavedAt   time.Time `json:"lastSavedAt"`
}

type CompletedQuiz struct {
	AttemptID     uint      `json:"attemptId"`
	QuizID        uint      `json:"quizId"`
	Name          string    `json:"name"`
	Topic         string    `json:"topic"`
	QuestionCount int       `json:"questionCount"`
	Score         int       `json:"score"`
	Percentage    float64   `json:"percentage"`
	CompletedAt   time.Time `json:"completedAt"`
}

type UserStats struct {
	TotalAttempts int     `json:"totalAttempts"`
	InProgress    int     `json:"inProgress"`
	Completed     int     `json:"completed"`
	AverageScore  float64 `json:"averageScore"`
	BestScore     int     `json:"bestScore"`
}

// InProgress lists the caller's unfinished attempts with how far each one
// has gotten.
func (s *AttemptService) InProgress(userID uint) ([]InProgressQuiz, error) {
	attempts, err := s.userAttempts(userID, models.AttemptInProgress)
	if err != nil {
		return nil, err
	}

	out := make([]InProgressQuiz, 0, len(attempts))
	for _, attempt := range attempts {
		var answered int64
		if err := s.db.Model(&models.Answer{}).Where("attempt_id = ?", attempt.ID).Count(&answered).Error; err != nil {
			log.Printf("Error counting answers: %v", err)
			return nil, utils.Internal("")
		}

		quiz, count, err := s.quizWithCount(attempt.QuizID)
		if err != nil {
			return nil, err
		}

		out = append(out, InProgressQuiz{
			AttemptID:     attempt.ID,
			QuizID:        attempt.QuizID,
			Name:          quiz.Name,
			Topic:         quiz.Topic,
			QuestionCount: count,
			AnsweredCount: int(answered),
			LastSavedAt:   attempt.UpdatedAt,
		})
	}
	return out, nil
}

// Completed lists the caller's graded attempts with score and percentage.
func (s *AttemptService) Completed(userID uint) ([]CompletedQuiz, error) {
	attempts, err := s.userAttempts(userID, models.AttemptCompleted)
	if err != nil {
		return nil, err
	}

	out := make([]CompletedQuiz, 0, len(attempts))
	for _, attempt := range attempts {
		quiz, count, err := s.quizWithCount(attempt.QuizID)
		if err != nil {
			return nil, err
		}

		out = append(out, CompletedQuiz{
			AttemptID:     attempt.ID,
			QuizID:        attempt.QuizID,
			Name:          quiz.Name,
			Topic:         quiz.Topic,
			QuestionCount: count,
			Score:         attempt.Score,
			Percentage:    percentage(attempt.Score, count),
			CompletedAt:   attempt.UpdatedAt,
		})
	}
	return out, nil
}

// Stats aggregates the caller's attempt counts and scores. Averages cover
// completed attempts only.
func (s *AttemptService) Stats(userID uint) (*UserStats, error) {
	var attempts []models.QuizAttempt
	if err := s.db.Where("user_id = ?", userID).Find(&attempts).Error; err != nil {
		log.Printf("Error fetching attempts: %v", err)
		return nil, utils.Internal("")
	}

	stats := UserStats{TotalAttempts: len(attempts)}
	scoreSum := 0
	first := true

	for _, attempt := range attempts {
		if attempt.Status != models.AttemptCompleted {
			stats.InProgress++
			continue
		}
		stats.Completed++
		scoreSum += attempt.Score
		if first || attempt.Score > stats.BestScore {
			stats.BestScore = attempt.Score
			first = false
		}
	}

	if stats.Completed > 0 {
		stats.AverageScore = round2(float64(scoreSum) / float64(stats.Completed))
	}
	return &stats, nil
}

func (s *AttemptService) userAttempts(userID uint, status string) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := s.db.Where("user_id = ? AND status = ?", userID, status).
		Order("updated_at desc").
		Find(&attempts).Error
	if err != nil {
		log.Printf("Error fetching attempts: %v", err)
		return nil, utils.Internal("")
	}
	return attempts, nil
}

func (s *AttemptService) quizWithCount(quizID uint) (*models.Quiz, int, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		log.Printf("Error fetching quiz %d: %v", quizID, err)
		return nil, 0, utils.Internal("")
	}

	var count int64
	if err := s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error; err != nil {
		log.Printf("Error counting questions: %v", err)
		return nil, 0, utils.Internal("")
	}

	return &quiz, int(count), nil
}
