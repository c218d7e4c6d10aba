package models

import "time"

// Activity types recorded in user_activity
const (
	ActivityStarted   = "started"
	ActivityCompleted = "completed"
)

// UserActivity is one row per practice attempt: created when the question
// set loads, updated with the graded result on submission
type UserActivity struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	PracticeContentID string     `json:"practice_content_id"`
	ActivityType      string     `json:"activity_type"`
	Score             int        `json:"score"`
	TotalQuestions    int        `json:"total_questions"`
	CorrectAnswers    int        `json:"correct_answers"`
	TimeSpentSeconds  int        `json:"time_spent_seconds"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// IsCompleted reports whether the attempt has already been submitted
func (a *UserActivity) IsCompleted() bool {
	return a.CompletedAt != nil
}

// UserStats is the per-user aggregate row backing the progress views
type UserStats struct {
	UserID                string `json:"user_id"`
	TotalPracticeSessions int    `json:"total_practice_sessions"`
	TotalQuestions        int    `json:"total_questions_answered"`
	TotalCorrectAnswers   int    `json:"total_correct_answers"`
	TotalTimeSpentSeconds int    `json:"total_time_spent_seconds"`
	CurrentStreakDays     int    `json:"current_streak_days"`
	LongestStreakDays     int    `json:"longest_streak_days"`
	LastPracticeDate      string `json:"last_practice_date,omitempty"`
}
