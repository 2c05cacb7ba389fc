package services

import (
	"log"
	"strings"

	"github.com/Consistent-coder/QuizMaster/models"
	"github.com/Consistent-coder/QuizMaster/utils"

	"gorm.io/gorm"
)

// QuizService is the quiz catalog: creation and keyword search. Quizzes are
// immutable once created.
type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type OptionInput struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionInput struct {
	Text    string        `json:"text" validate:"required"`
	Review  string        `json:"review"`
	Options []OptionInput `json:"options"`
}

type QuizInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Topic       string          `json:"topic" validate:"required"`
	Tags        []string        `json:"tags"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1"`
}

// QuizSummary is the catalog listing shape. Option correctness is never
// exposed here.
type QuizSummary struct {
	ID            uint         `json:"id"`
	Name          string       `json:"name"`
	Topic         string       `json:"topic"`
	Tags          []models.Tag `json:"tags"`
	CreatedBy     string       `json:"createdBy"`
	QuestionCount int          `json:"questionCount"`
}

// Create persists a quiz with its questions, options and tags atomically.
// Tags are reused by unique name and created if absent.
func (s *QuizService) Create(adminID uint, in QuizInput) (*models.Quiz, error) {
	for _, q := range in.Questions {
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if len(q.Options) < 2 || correct != 1 {
			return nil, utils.BadRequest("Each question must have at least 2 options and exactly 1 correct answer.")
		}
	}

	quiz := models.Quiz{
		Name:        in.Name,
		Description: in.Description,
		Topic:       in.Topic,
		CreatedByID: adminID,
	}

	for _, q := range in.Questions {
		question := models.Question{
			Text:   q.Text,
			Review: q.Review,
		}
		for _, opt := range q.Options {
			question.Options = append(question.Options, models.Option{
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range in.Tags {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			var tag models.Tag
			if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
				return err
			}
			quiz.Tags = append(quiz.Tags, tag)
		}

		return tx.Create(&quiz).Error
	})
	if err != nil {
		log.Printf("Error creating quiz: %v", err)
		return nil, utils.Internal("Quiz creation failed")
	}

	return &quiz, nil
}

// List returns quiz summaries, filtered by a case-insensitive substring
// match over name, description or tag name when a search term is given.
func (s *QuizService) List(searchTerm string) ([]QuizSummary, error) {
	query := s.db.Model(&models.Quiz{}).
		Preload("Tags").
		Preload("CreatedBy").
		Preload("Questions")

	if searchTerm != "" {
		pattern := "%" + strings.ToLower(searchTerm) + "%"
		query = query.
			Distinct("quizzes.*").
			Joins("LEFT JOIN quiz_tags ON quiz_tags.quiz_id = quizzes.id").
			Joins("LEFT JOIN tags ON tags.id = quiz_tags.tag_id").
			Where("LOWER(quizzes.name) LIKE ? OR LOWER(quizzes.description) LIKE ? OR LOWER(tags.name) LIKE ?",
				pattern, pattern, pattern)
	}

	var quizzes []models.Quiz
	if err := query.Find(&quizzes).Error; err != nil {
		log.Printf("Error listing quizzes: %v", err)
		return nil, utils.Internal("Failed to fetch quizzes!")
	}

	return summarize(quizzes), nil
}

// ListByAdmin returns the quizzes created by the caller.
func (s *QuizService) ListByAdmin(adminID uint) ([]QuizSummary, error) {
	var quizzes []models.Quiz
	err := s.db.Where("created_by_id = ?", adminID).
		Preload("Tags").
		Preload("CreatedBy").
		Preload("Questions").
		Find(&quizzes).Error
	if err != nil {
		log.Printf("Error listing admin quizzes: %v", err)
		return nil, utils.Internal("Failed to fetch admin quizzes.")
	}

	return summarize(quizzes), nil
}

func summarize(quizzes []models.Quiz) []QuizSummary {
	summaries := make([]QuizSummary, len(quizzes))
	for i, quiz := range quizzes {
		tags := quiz.Tags
		if tags == nil {
			tags = []models.Tag{}
		}
		summaries[i] = QuizSummary{
			ID:            quiz.ID,
			Name:          quiz.Name,
			Topic:         quiz.Topic,
			Tags:          tags,
			CreatedBy:     quiz.CreatedBy.Name,
			QuestionCount: len(quiz.Questions),
		}
	}
	return summaries
}
