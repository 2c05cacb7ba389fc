package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/Consistent-coder/QuizMaster/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func logScheduler(message string) {
	log.Printf("[REMINDER-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendStaleAttemptReminders emails every user holding an IN_PROGRESS
// attempt that has not been touched for over 24 hours.
func sendStaleAttemptReminders(db *gorm.DB) {
	cutoff := time.Now().Add(-24 * time.Hour)

	var attempts []models.QuizAttempt
	if err := db.Where("status = ? AND updated_at < ?", models.AttemptInProgress, cutoff).
		Find(&attempts).Error; err != nil {
		logScheduler("Error fetching stale attempts: " + err.Error())
		return
	}

	for _, attempt := range attempts {
		var user models.User
		if err := db.First(&user, attempt.UserID).Error; err != nil {
			continue
		}

		var quiz models.Quiz
		if err := db.First(&quiz, attempt.QuizID).Error; err != nil {
			continue
		}

		SendAttemptReminderEmail(user.Email, user.Name, quiz.Name)
	}

	if len(attempts) > 0 {
		logScheduler(fmt.Sprintf("Sent reminders for %d stale attempts", len(attempts)))
	}
}

// InitializeReminderScheduler runs the stale-attempt reminder once a day.
func InitializeReminderScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		sendStaleAttemptReminders(db)
	})
	if err != nil {
		logScheduler("Failed to register reminder job: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Reminder scheduler started")
	return c
}
