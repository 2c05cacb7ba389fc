package models

import "gorm.io/gorm"

const (
	AttemptInProgress = "IN_PROGRESS"
	AttemptCompleted  = "COMPLETED"
)

// QuizAttempt is one user's single pass at a quiz. The composite unique
// index keeps two racing start calls from creating duplicate rows for the
// same (user, quiz) pair.
type QuizAttempt struct {
	gorm.Model
	UserID uint     `json:"userId" gorm:"not null;uniqueIndex:idx_attempt_user_quiz"`
	QuizID uint     `json:"quizId" gorm:"not null;uniqueIndex:idx_attempt_user_quiz"`
	Status string   `json:"status" gorm:"default:'IN_PROGRESS'"` // IN_PROGRESS or COMPLETED
	Score  int      `json:"score" gorm:"default:0"`              // may be negative
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE"`
}

// Answer holds the user's current choice for one question within one
// attempt. The whole set is replaced on every save or submit.
type Answer struct {
	gorm.Model
	AttemptID        uint `json:"attemptId" gorm:"index;not null"`
	QuestionID       uint `json:"questionId" gorm:"not null"`
	SelectedOptionID uint `json:"selectedOptionId" gorm:"not null"`
}
