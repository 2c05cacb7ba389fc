package models

import "gorm.io/gorm"

// Quiz is created atomically with its questions, options and tags.
// There are no edit or delete operations once it exists.
type Quiz struct {
	gorm.Model
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description" gorm:"default:''"`
	Topic       string     `json:"topic" gorm:"not null"`
	CreatedByID uint       `json:"createdById" gorm:"index;not null"`
	CreatedBy   User       `json:"createdBy" gorm:"foreignKey:CreatedByID"`
	Questions   []Question `json:"questions" gorm:"constraint:OnDelete:CASCADE"`
	Tags        []Tag      `json:"tags" gorm:"many2many:quiz_tags"`
}

type Question struct {
	gorm.Model
	QuizID  uint     `json:"quizId" gorm:"index;not null"`
	Text    string   `json:"text" gorm:"not null"`
	Review  string   `json:"review" gorm:"default:''"` // explanation shown on the review screen
	Options []Option `json:"options" gorm:"constraint:OnDelete:CASCADE"`
}

// Option invariant: every question carries at least 2 options and exactly
// one with IsCorrect set, enforced at quiz-creation time.
type Option struct {
	gorm.Model
	QuestionID uint   `json:"questionId" gorm:"index;not null"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"isCorrect" gorm:"default:false"`
}

// Tag is created-or-reused by unique name on quiz creation.
type Tag struct {
	gorm.Model
	Name string `json:"name" gorm:"unique;not null"`
}
