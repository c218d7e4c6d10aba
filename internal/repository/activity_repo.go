package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"literacylab/internal/database"
	"literacylab/internal/models"
)

// ActivityRepository handles database operations for attempts and user stats
type ActivityRepository struct {
	db *database.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// CreateActivity inserts a "started" row for a new practice attempt
func (r *ActivityRepository) CreateActivity(userID, contentID string, totalQuestions int) (*models.UserActivity, error) {
	activity := &models.UserActivity{
		ID:                uuid.NewString(),
		UserID:            userID,
		PracticeContentID: contentID,
		ActivityType:      models.ActivityStarted,
		TotalQuestions:    totalQuestions,
		StartedAt:         time.Now(),
		CreatedAt:         time.Now(),
	}

	query := `
		INSERT INTO user_activity
			(id, user_id, practice_content_id, activity_type, total_questions, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		activity.ID, activity.UserID, activity.PracticeContentID,
		activity.ActivityType, activity.TotalQuestions, activity.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity, nil
}

// GetActivityByID retrieves an attempt row; returns nil if not found
func (r *ActivityRepository) GetActivityByID(id string) (*models.UserActivity, error) {
	query := `
		SELECT id, user_id, practice_content_id, activity_type, score,
		       total_questions, correct_answers, time_spent_seconds,
		       started_at, completed_at, created_at
		FROM user_activity
		WHERE id = ?
	`
	activity := &models.UserActivity{}
	var contentID sql.NullString
	var completedAt sql.NullTime

	err := r.db.QueryRow(query, id).Scan(
		&activity.ID, &activity.UserID, &contentID, &activity.ActivityType,
		&activity.Score, &activity.TotalQuestions, &activity.CorrectAnswers,
		&activity.TimeSpentSeconds, &activity.StartedAt, &completedAt, &activity.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity: %w", err)
	}
	activity.PracticeContentID = contentID.String
	if completedAt.Valid {
		activity.CompletedAt = &completedAt.Time
	}
	return activity, nil
}

// CompleteActivity updates an attempt with its graded result
func (r *ActivityRepository) CompleteActivity(id string, score, totalQuestions, correctAnswers, timeSpentSeconds int) error {
	query := `
		UPDATE user_activity
		SET activity_type = ?, score = ?, total_questions = ?, correct_answers = ?,
		    time_spent_seconds = ?, completed_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		models.ActivityCompleted, score, totalQuestions, correctAnswers,
		timeSpentSeconds, time.Now(), id,
	)
	return err
}

// GetRecentActivity retrieves a user's most recent attempts
func (r *ActivityRepository) GetRecentActivity(userID string, limit int) ([]models.UserActivity, error) {
	query := `
		SELECT id, user_id, practice_content_id, activity_type, score,
		       total_questions, correct_answers, time_spent_seconds,
		       started_at, completed_at, created_at
		FROM user_activity
		WHERE user_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var activities []models.UserActivity
	for rows.Next() {
		var activity models.UserActivity
		var contentID sql.NullString
		var completedAt sql.NullTime

		err := rows.Scan(
			&activity.ID, &activity.UserID, &contentID, &activity.ActivityType,
			&activity.Score, &activity.TotalQuestions, &activity.CorrectAnswers,
			&activity.TimeSpentSeconds, &activity.StartedAt, &completedAt, &activity.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.PracticeContentID = contentID.String
		if completedAt.Valid {
			activity.CompletedAt = &completedAt.Time
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

// GetStats retrieves a user's aggregate stats row; returns a zero row if none exists yet
func (r *ActivityRepository) GetStats(userID string) (*models.UserStats, error) {
	query := `
		SELECT user_id, total_practice_sessions, total_questions_answered,
		       total_correct_answers, total_time_spent_seconds,
		       current_streak_days, longest_streak_days, last_practice_date
		FROM user_stats
		WHERE user_id = ?
	`
	stats := &models.UserStats{}
	var lastDate sql.NullString

	err := r.db.QueryRow(query, userID).Scan(
		&stats.UserID, &stats.TotalPracticeSessions, &stats.TotalQuestions,
		&stats.TotalCorrectAnswers, &stats.TotalTimeSpentSeconds,
		&stats.CurrentStreakDays, &stats.LongestStreakDays, &lastDate,
	)
	if err == sql.ErrNoRows {
		return &models.UserStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan stats: %w", err)
	}
	stats.LastPracticeDate = lastDate.String
	return stats, nil
}

// UpsertStats writes a user's aggregate stats row
func (r *ActivityRepository) UpsertStats(stats *models.UserStats) error {
	// Existence check instead of dialect-specific upsert syntax
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM user_stats WHERE user_id = ?", stats.UserID).Scan(&count); err != nil {
		return fmt.Errorf("failed to check stats row: %w", err)
	}

	if count == 0 {
		query := `
			INSERT INTO user_stats
				(user_id, total_practice_sessions, total_questions_answered,
				 total_correct_answers, total_time_spent_seconds,
				 current_streak_days, longest_streak_days, last_practice_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := r.db.Exec(query,
			stats.UserID, stats.TotalPracticeSessions, stats.TotalQuestions,
			stats.TotalCorrectAnswers, stats.TotalTimeSpentSeconds,
			stats.CurrentStreakDays, stats.LongestStreakDays, nullable(stats.LastPracticeDate),
		)
		return err
	}

	query := `
		UPDATE user_stats
		SET total_practice_sessions = ?, total_questions_answered = ?,
		    total_correct_answers = ?, total_time_spent_seconds = ?,
		    current_streak_days = ?, longest_streak_days = ?,
		    last_practice_date = ?, updated_at = ?
		WHERE user_id = ?
	`
	_, err := r.db.Exec(query,
		stats.TotalPracticeSessions, stats.TotalQuestions,
		stats.TotalCorrectAnswers, stats.TotalTimeSpentSeconds,
		stats.CurrentStreakDays, stats.LongestStreakDays,
		nullable(stats.LastPracticeDate), time.Now(), stats.UserID,
	)
	return err
}
