package services

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/Consistent-coder/QuizMaster/models"
	"github.com/Consistent-coder/QuizMaster/utils"

	"gorm.io/gorm"
)

// Scoring: each submitted answer contributes +10 when the selected option
// is correct and -4 otherwise. Totals may be negative.
const (
	ScoreCorrect   = 10
	ScoreIncorrect = -4
)

// AttemptService manages the attempt lifecycle:
// NONE -> IN_PROGRESS -> COMPLETED (terminal).
type AttemptService struct {
	db *gorm.DB
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return &AttemptService{db: db}
}

type AnswerInput struct {
	QuestionID       uint `json:"questionId"`
	SelectedOptionID uint `json:"selectedOptionId"`
}

// AttemptOption withholds correctness from a quiz being taken.
type AttemptOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type AttemptQuestion struct {
	ID      uint            `json:"id"`
	Text    string          `json:"text"`
	Options []AttemptOption `json:"options"`
}

type AttemptQuiz struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	Topic     string            `json:"topic"`
	Tags      []models.Tag      `json:"tags"`
	Questions []AttemptQuestion `json:"questions"`
}

type StartResult struct {
	Quiz    AttemptQuiz        `json:"quiz"`
	Attempt models.QuizAttempt `json:"attempt"`
	// SelectedAnswers maps questionId to the previously selected optionId
	// so the client can resume mid-quiz.
	SelectedAnswers map[uint]uint `json:"selectedAnswers"`
}

// Start fetches the quiz with option correctness withheld and creates or
// resumes the caller's attempt. A completed attempt cannot be restarted.
func (s *AttemptService) Start(userID, quizID uint) (*StartResult, error) {
	var quiz models.Quiz
	err := s.db.Preload("Questions.Options").Preload("Tags").First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Quiz not found!")
		}
		log.Printf("Error fetching quiz %d: %v", quizID, err)
		return nil, utils.Internal("")
	}

	var attempt models.QuizAttempt
	err = s.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&attempt).Error
	switch {
	case err == nil:
		if attempt.Status == models.AttemptCompleted {
			return nil, utils.Forbidden("You have already completed this quiz.")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		attempt = models.QuizAttempt{
			UserID: userID,
			QuizID: quizID,
			Status: models.AttemptInProgress,
			Score:  0,
		}
		if err := s.db.Create(&attempt).Error; err != nil {
			log.Printf("Error creating attempt: %v", err)
			return nil, utils.Internal("Failed to start quiz attempt!")
		}
	default:
		log.Printf("Error fetching attempt: %v", err)
		return nil, utils.Internal("")
	}

	selected, err := s.selectedAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}

	return &StartResult{
		Quiz:            sanitizeQuiz(quiz),
		Attempt:         attempt,
		SelectedAnswers: selected,
	}, nil
}

// SaveProgress replaces the attempt's entire answer set with the supplied
// checkpoint. No scoring happens here; repeating the same payload yields
// the same stored state.
func (s *AttemptService) SaveProgress(userID, quizID uint, answers []AnswerInput) error {
	attempt, err := s.inProgressAttempt(userID, quizID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := replaceAnswers(tx, attempt.ID, quizID, answers, nil); err != nil {
			return err
		}
		// Touch the attempt so updated_at tracks the latest checkpoint;
		// the dashboard and the stale-attempt reminder both read it.
		return tx.Model(&models.QuizAttempt{}).
			Where("id = ?", attempt.ID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		log.Printf("Error saving progress: %v", err)
		return utils.Internal("Failed to save progress!")
	}

	return nil
}

// Submit replaces the answer set, grades it and closes the attempt. The
// IN_PROGRESS -> COMPLETED transition is one-way; a second submit is
// rejected.
func (s *AttemptService) Submit(userID, quizID uint, answers []AnswerInput) (int, error) {
	if len(answers) == 0 {
		return 0, utils.BadRequest("Invalid quiz submission!")
	}

	attempt, err := s.inProgressAttempt(userID, quizID)
	if err != nil {
		return 0, err
	}

	score := 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := replaceAnswers(tx, attempt.ID, quizID, answers, &score); err != nil {
			return err
		}
		return tx.Model(&models.QuizAttempt{}).
			Where("id = ?", attempt.ID).
			Updates(map[string]interface{}{
				"status": models.AttemptCompleted,
				"score":  score,
			}).Error
	})
	if err != nil {
		log.Printf("Error submitting attempt: %v", err)
		return 0, utils.Internal("Failed to submit quiz!")
	}

	return score, nil
}

// replaceAnswers deletes the attempt's stored answers and inserts the
// supplied ones. Answers whose selected option does not belong to the
// named question of this quiz are skipped; when score is non-nil the kept
// answers are graded as they are inserted.
func replaceAnswers(tx *gorm.DB, attemptID, quizID uint, answers []AnswerInput, score *int) error {
	if err := tx.Where("attempt_id = ?", attemptID).Delete(&models.Answer{}).Error; err != nil {
		return err
	}

	options, err := quizOptionIndex(tx, quizID)
	if err != nil {
		return err
	}

	var rows []models.Answer
	for _, ans := range answers {
		isCorrect, ok := options[ans.QuestionID][ans.SelectedOptionID]
		if !ok {
			continue
		}
		rows = append(rows, models.Answer{
			AttemptID:        attemptID,
			QuestionID:       ans.QuestionID,
			SelectedOptionID: ans.SelectedOptionID,
		})
		if score != nil {
			if isCorrect {
				*score += ScoreCorrect
			} else {
				*score += ScoreIncorrect
			}
		}
	}

	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// quizOptionIndex maps questionId -> optionId -> isCorrect for one quiz.
func quizOptionIndex(tx *gorm.DB, quizID uint) (map[uint]map[uint]bool, error) {
	var questions []models.Question
	if err := tx.Preload("Options").Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return nil, err
	}

	index := make(map[uint]map[uint]bool, len(questions))
	for _, q := range questions {
		opts := make(map[uint]bool, len(q.Options))
		for _, opt := range q.Options {
			opts[opt.ID] = opt.IsCorrect
		}
		index[q.ID] = opts
	}
	return index, nil
}

func (s *AttemptService) inProgressAttempt(userID, quizID uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := s.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Quiz attempt not found")
		}
		log.Printf("Error fetching attempt: %v", err)
		return nil, utils.Internal("")
	}

	if attempt.Status == models.AttemptCompleted {
		return nil, utils.Forbidden("Quiz already submitted")
	}

	return &attempt, nil
}

func (s *AttemptService) selectedAnswers(attemptID uint) (map[uint]uint, error) {
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

func sanitizeQuiz(quiz models.Quiz) AttemptQuiz {
	out := AttemptQuiz{
		ID:    quiz.ID,
		Name:  quiz.Name,
		Topic: quiz.Topic,
		Tags:  quiz.Tags,
	}
	if out.Tags == nil {
		out.Tags = []models.Tag{}
	}
	for _, q := range quiz.Questions {
		question := AttemptQuestion{ID: q.ID, Text: q.Text}
		for _, opt := range q.Options {
			question.Options = append(question.Options, AttemptOption{ID: opt.ID, Text: opt.Text})
		}
		out.Questions = append(out.Questions, question)
	}
	return out
}

// EvaluatedAnswer is the per-question verdict on the review screen. The
// full option list is included so the UI can highlight every choice.
type EvaluatedAnswer struct {
	QuestionID     uint            `json:"questionId"`
	QuestionText   string          `json:"questionText"`
	Review         string          `json:"review"`
	SelectedOption *string         `json:"selectedOption"` // nil when unattempted
	CorrectAnswer  string          `json:"correctAnswer"`
	IsCorrect      bool            `json:"isCorrect"`
	ScoreImpact    int             `json:"scoreImpact"`
	Options        []models.Option `json:"options"`
}

type ReviewQuiz struct {
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

type ReviewResult struct {
	Quiz             ReviewQuiz        `json:"quiz"`
	TotalScore       int               `json:"totalScore"`
	Percentage       float64           `json:"percentage"`
	EvaluatedAnswers []EvaluatedAnswer `json:"evaluatedAnswers"`
}

// Review grades every question of the quiz against the attempt's stored
// answers, unattempted ones included. It does not require the attempt to
// be completed.
func (s *AttemptService) Review(userID, quizID uint) (*ReviewResult, error) {
	var attempt models.QuizAttempt
	err := s.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("No attempt found for this quiz!")
		}
		log.Printf("Error fetching attempt: %v", err)
		return nil, utils.Internal("")
	}

	var quiz models.Quiz
	if err := s.db.Preload("Questions.Options").First(&quiz, quizID).Error; err != nil {
		log.Printf("Error fetching quiz %d: %v", quizID, err)
		return nil, utils.Internal("")
	}

	selected, err := s.selectedAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}

	evaluated := make([]EvaluatedAnswer, 0, len(quiz.Questions))
	totalScore := 0

	for _, question := range quiz.Questions {
		verdict := EvaluatedAnswer{
			QuestionID:   question.ID,
			QuestionText: question.Text,
			Review:       question.Review,
			Options:      question.Options,
		}

		selectedID, attempted := selected[question.ID]
		for _, opt := range question.Options {
			if opt.IsCorrect {
				verdict.CorrectAnswer = opt.Text
			}
			if attempted && opt.ID == selectedID {
				text := opt.Text
				verdict.SelectedOption = &text
				verdict.IsCorrect = opt.IsCorrect
			}
		}

		if verdict.SelectedOption != nil {
			if verdict.IsCorrect {
				verdict.ScoreImpact = ScoreCorrect
			} else {
				verdict.ScoreImpact = ScoreIncorrect
			}
		}

		totalScore += verdict.ScoreImpact
		evaluated = append(evaluated, verdict)
	}

	return &ReviewResult{
		Quiz:             ReviewQuiz{Name: quiz.Name, Topic: quiz.Topic},
		TotalScore:       totalScore,
		Percentage:       percentage(totalScore, len(quiz.Questions)),
		EvaluatedAnswers: evaluated,
	}, nil
}

// percentage is totalScore over the maximum attainable score, rounded to
// 2 decimals. It is deliberately not clamped and can be negative.
func percentage(totalScore, questionCount int) float64 {
	if questionCount == 0 {
		return 0
	}
	return round2(float64(totalScore) / float64(questionCount*ScoreCorrect) * 100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
